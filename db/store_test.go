package db

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"logistics-advisor/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	_ UserStore = (*MemoryStore)(nil)
	_ TripStore = (*MemoryStore)(nil)
	_ UserStore = (*GormStore)(nil)
	_ TripStore = (*GormStore)(nil)
)

func TestMemoryStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := &model.User{Username: "dispatcher", Password: "hash", Email: "d@example.com"}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	err := s.CreateUser(ctx, &model.User{Username: "dispatcher"})
	assert.ErrorIs(t, err, ErrUserExists)

	found, err := s.FindUserByName(ctx, "dispatcher")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "hash", found.Password)

	_, err = s.FindUserByName(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStoreTrips(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i, end := range []string{"Worli", "Dadar", "CST"} {
		require.NoError(t, s.SaveTrip(ctx, &model.Trip{UserID: 1, EndID: end, Found: true, Path: pq.StringArray{"BKC", end}, Cost: float64(i)}))
	}
	require.NoError(t, s.SaveTrip(ctx, &model.Trip{UserID: 2, EndID: "Andheri"}))

	trips, err := s.ListTrips(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, trips, 3)
	assert.Equal(t, "CST", trips[0].EndID)
	assert.Equal(t, "Worli", trips[2].EndID)

	trips, err = s.ListTrips(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, trips, 2)

	// 返回的是副本
	trips[0].Path[0] = "changed"
	again, _ := s.ListTrips(ctx, 1, 1)
	assert.Equal(t, "BKC", again[0].Path[0])

	none, err := s.ListTrips(ctx, 99, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.SaveTrip(ctx, &model.Trip{UserID: 7})
		}()
	}
	wg.Wait()

	trips, err := s.ListTrips(ctx, 7, 0)
	require.NoError(t, err)
	assert.Len(t, trips, 50)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, isDuplicateKey(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "idx_users_username"}))
	assert.True(t, isDuplicateKey(fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation})))

	assert.False(t, isDuplicateKey(nil))
	assert.False(t, isDuplicateKey(gorm.ErrRecordNotFound))
	// not_null_violation
	assert.False(t, isDuplicateKey(&pgconn.PgError{Code: "23502"}))
}
