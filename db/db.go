package db

import (
	"context"
	"fmt"
	"time"

	"logistics-advisor/config"
	"logistics-advisor/logging"
	"logistics-advisor/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 连接重试参数 (Docker 启动时数据库可能还没准备好)
const (
	maxRetries    = 30
	retryInterval = 2 * time.Second
)

// InitDB 连接 PostgreSQL 并自动迁移用户和行程表
func InitDB(ctx context.Context, cfg config.Config, log logging.Logger) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)
	for i := 0; i < maxRetries; i++ {
		conn, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		log.Warn(ctx, "等待数据库就绪", logging.Int("attempt", i+1), logging.Int("max", maxRetries), logging.Err(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&model.User{}, &model.Trip{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Info(ctx, "数据库连接并初始化成功", logging.String("host", cfg.DBHost), logging.String("db", cfg.DBName))
	return conn, nil
}
