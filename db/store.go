package db

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"logistics-advisor/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation PostgreSQL unique_violation 错误码
const uniqueViolation = "23505"

var (
	// ErrUserExists 用户名已被注册
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
)

// UserStore 用户存储
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindUserByName(ctx context.Context, username string) (*model.User, error)
}

// TripStore 行程记录存储
type TripStore interface {
	SaveTrip(ctx context.Context, t *model.Trip) error
	ListTrips(ctx context.Context, userID uint, limit int) ([]model.Trip, error)
}

// GormStore 基于 gorm 的存储实现
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 gorm 存储
func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{db: conn}
}

// CreateUser 依赖 username 上的唯一索引判重
func (s *GormStore) CreateUser(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("create user %q: %w", u.Username, ErrUserExists)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) FindUserByName(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user %q: %w", username, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *GormStore) SaveTrip(ctx context.Context, t *model.Trip) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("save trip: %w", err)
	}
	return nil
}

func (s *GormStore) ListTrips(ctx context.Context, userID uint, limit int) ([]model.Trip, error) {
	var trips []model.Trip
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// isDuplicateKey 判断是否违反唯一约束
// 开启 TranslateError 时 gorm 返回 ErrDuplicatedKey，否则是 PostgreSQL 的 23505 错误
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// MemoryStore 内存存储，未启用数据库时使用
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]*model.User
	trips  []model.Trip
	nextID uint
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*model.User)}
}

func (s *MemoryStore) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return fmt.Errorf("create user %q: %w", u.Username, ErrUserExists)
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	s.users[u.Username] = &stored
	return nil
}

func (s *MemoryStore) FindUserByName(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("find user %q: %w", username, ErrUserNotFound)
	}
	found := *u
	return &found, nil
}

func (s *MemoryStore) SaveTrip(_ context.Context, t *model.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	stored := *t
	stored.Path = slices.Clone(t.Path)
	s.trips = append(s.trips, stored)
	return nil
}

// ListTrips 按时间倒序返回用户的行程，limit <= 0 表示不限制
func (s *MemoryStore) ListTrips(_ context.Context, userID uint, limit int) ([]model.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trips := make([]model.Trip, 0)
	for i := len(s.trips) - 1; i >= 0; i-- {
		if s.trips[i].UserID != userID {
			continue
		}
		t := s.trips[i]
		t.Path = slices.Clone(t.Path)
		trips = append(trips, t)
		if limit > 0 && len(trips) == limit {
			break
		}
	}
	return trips, nil
}
