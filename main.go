package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logistics-advisor/algo"
	"logistics-advisor/config"
	"logistics-advisor/db"
	"logistics-advisor/handler"
	"logistics-advisor/logging"
	"logistics-advisor/observability"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, envLoaded, err := config.Load()
	if err != nil {
		logging.New(logging.Config{}).Error(ctx, "配置错误", logging.Err(err))
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if !envLoaded {
		log.Info(ctx, "未找到 .env 文件，使用环境变量")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "服务异常退出", logging.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logging.Logger) error {
	// 1. 构建内置路网 (进程内只构建一次)
	if _, ok := algo.BaseGraph(cfg.DefaultNetwork); !ok {
		return errors.New("默认路网不存在: " + cfg.DefaultNetwork)
	}
	for _, name := range algo.Networks() {
		g, _ := algo.BaseGraph(name)
		log.Info(ctx, "路网加载成功", logging.String("network", name), logging.Int("nodes", g.NodeCount()), logging.Int("edges", g.EdgeCount()))
	}

	// 2. 用户和行程存储: 启用数据库时使用 PostgreSQL，否则使用内存
	opts := handler.Options{
		Logger:         log,
		Costs:          algo.NewCostModel(),
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTTTL,
		DefaultNetwork: cfg.DefaultNetwork,
	}
	if cfg.DBEnabled {
		conn, err := db.InitDB(ctx, cfg, log)
		if err != nil {
			return err
		}
		store := db.NewGormStore(conn)
		opts.Users, opts.Trips = store, store
	} else {
		log.Warn(ctx, "未启用数据库，用户和行程只保存在内存中")
		mem := db.NewMemoryStore()
		opts.Users, opts.Trips = mem, mem
	}

	// 3. 指标
	metrics, err := observability.NewRouteCollector(nil)
	if err != nil {
		return err
	}
	opts.Metrics = metrics

	// 4. 初始化 Gin 引擎
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(log), cors.New(corsConfig()))
	handler.New(opts).RegisterRoutes(r)

	// 5. 启动服务器
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "服务器启动", logging.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "正在关闭服务器")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// corsConfig 允许任意来源访问 API
func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	c.ExposeHeaders = []string{"X-Request-ID"}
	return c
}
