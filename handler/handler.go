package handler

import (
	"net/http"
	"time"

	"logistics-advisor/algo"
	"logistics-advisor/db"
	"logistics-advisor/logging"
	"logistics-advisor/observability"

	"github.com/gin-gonic/gin"
)

// Options 处理器依赖
type Options struct {
	Users          db.UserStore
	Trips          db.TripStore
	Metrics        *observability.RouteCollector
	Logger         logging.Logger
	Costs          algo.CostModel
	JWTSecret      string
	JWTTTL         time.Duration
	DefaultNetwork string
}

// Handler 所有 HTTP 接口的实现
type Handler struct {
	users          db.UserStore
	trips          db.TripStore
	metrics        *observability.RouteCollector
	log            logging.Logger
	costs          algo.CostModel
	jwtSecret      []byte
	jwtTTL         time.Duration
	defaultNetwork string
}

// New 创建处理器，未提供的依赖使用默认值
func New(opts Options) *Handler {
	h := &Handler{
		users:          opts.Users,
		trips:          opts.Trips,
		metrics:        opts.Metrics,
		log:            opts.Logger,
		costs:          opts.Costs,
		jwtSecret:      []byte(opts.JWTSecret),
		jwtTTL:         opts.JWTTTL,
		defaultNetwork: opts.DefaultNetwork,
	}
	if h.users == nil || h.trips == nil {
		mem := db.NewMemoryStore()
		if h.users == nil {
			h.users = mem
		}
		if h.trips == nil {
			h.trips = mem
		}
	}
	if h.log == nil {
		h.log = logging.Noop()
	}
	if h.costs.Rates == nil {
		h.costs = algo.NewCostModel()
	}
	if h.jwtTTL <= 0 {
		h.jwtTTL = 24 * time.Hour
	}
	if h.defaultNetwork == "" {
		h.defaultNetwork = algo.NetworkMumbai
	}
	return h
}

// RegisterRoutes 配置路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// 公开接口 (无需认证)
		api.POST("/login", h.Login)
		api.POST("/register", h.Register)

		// 地图相关接口
		api.GET("/networks", h.GetNetworks)
		api.GET("/vehicles", h.GetVehicles)
		api.GET("/nodes", h.GetNodes)
		api.GET("/nodes/search", h.SearchNodes)
		api.GET("/nodes/:id", h.GetNodeByID)
		api.GET("/edges", h.GetEdges)

		// 登录用户的查询会记入行程历史
		api.POST("/route/find", h.OptionalAuth(), h.FindPath)

		authorized := api.Group("/")
		authorized.Use(h.AuthMiddleware())
		{
			authorized.GET("/trips", h.ListTrips)
		}
	}
}

// network 根据名称取基础图，名称为空时使用默认路网
func (h *Handler) network(name string) (string, *algo.Graph, bool) {
	if name == "" {
		name = h.defaultNetwork
	}
	g, ok := algo.BaseGraph(name)
	return name, g, ok
}

// networkFromQuery 读取 ?network= 参数，路网不存在时直接返回 404
func (h *Handler) networkFromQuery(c *gin.Context) (string, *algo.Graph, bool) {
	name, g, ok := h.network(c.Query("network"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "路网不存在: " + name})
		return "", nil, false
	}
	return name, g, true
}
