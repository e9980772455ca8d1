package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"logistics-advisor/db"
	"logistics-advisor/logging"
	"logistics-advisor/model"
	"logistics-advisor/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "logistics-advisor"
	userIDKey   = "user_id"
	usernameKey = "username"
)

// Claims JWT 载荷
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email"`
}

// Login 处理用户登录
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	// 查找用户
	user, err := h.users.FindUserByName(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, db.ErrUserNotFound) {
			logging.FromGin(c).Error(ctx, "find user failed", logging.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户名或密码错误"})
		return
	}

	// 验证密码
	if !utils.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户名或密码错误"})
		return
	}

	token, expires, err := h.issueToken(user)
	if err != nil {
		logging.FromGin(c).Error(ctx, "sign token failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 Token 失败"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: expires,
		Message:   "登录成功",
	})
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	// 加密密码
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "密码加密失败"})
		return
	}

	newUser := &model.User{
		Username: req.Username,
		Password: hashedPassword,
		Email:    req.Email,
	}
	if err := h.users.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, db.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "用户名已存在"})
			return
		}
		logging.FromGin(c).Error(ctx, "create user failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "注册成功",
		"username": newUser.Username,
	})
}

// issueToken 为用户签发 JWT
func (h *Handler) issueToken(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(h.jwtTTL)
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// parseToken 从 Authorization 头解析 JWT
func (h *Handler) parseToken(header string) (*Claims, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" {
		return nil, errors.New("empty token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return h.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthMiddleware JWT 认证中间件
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未提供 Token"})
			c.Abort()
			return
		}

		claims, err := h.parseToken(header)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 Token"})
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set(userIDKey, claims.UserID)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// OptionalAuth 有合法 Token 时记录用户信息，没有 Token 也放行
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			claims, err := h.parseToken(header)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 Token"})
				c.Abort()
				return
			}
			c.Set(userIDKey, claims.UserID)
			c.Set(usernameKey, claims.Username)
		}
		c.Next()
	}
}

// currentUserID 取出已认证用户的 ID
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
