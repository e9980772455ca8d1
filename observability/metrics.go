package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 查询结果标签
const (
	OutcomeFound   = "found"
	OutcomeNoPath  = "no_path"
	OutcomeInvalid = "invalid"
)

// LabelUnknown 无法解析的车型或优化目标统一记为该值，标签取值必须是有限集合
const LabelUnknown = "unknown"

// RouteCollector 路线规划相关的 Prometheus 指标
type RouteCollector struct {
	gatherer prometheus.Gatherer

	Queries       *prometheus.CounterVec
	ExpandedNodes *prometheus.HistogramVec
	TripCost      *prometheus.HistogramVec
}

// NewRouteCollector 注册指标，reg 为空时使用全局注册表
func NewRouteCollector(reg prometheus.Registerer) (*RouteCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	queries, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_queries_total",
		Help: "Route queries handled, labeled by network, vehicle mode, criterion and outcome.",
	}, []string{"network", "mode", "criterion", "outcome"}), "route_queries_total")
	if err != nil {
		return nil, err
	}

	expanded, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_expanded_nodes",
		Help:    "Nodes expanded per search, labeled by algorithm.",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	}, []string{"algorithm"}), "route_expanded_nodes")
	if err != nil {
		return nil, err
	}

	cost, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_trip_cost",
		Help:    "Estimated trip cost of found routes, labeled by vehicle mode.",
		Buckets: prometheus.ExponentialBuckets(50, 2, 8),
	}, []string{"mode"}), "route_trip_cost")
	if err != nil {
		return nil, err
	}

	return &RouteCollector{
		gatherer:      gatherer,
		Queries:       queries,
		ExpandedNodes: expanded,
		TripCost:      cost,
	}, nil
}

// ObserveQuery 记录一次查询
func (c *RouteCollector) ObserveQuery(network, mode, criterion, outcome string) {
	if c == nil {
		return
	}
	c.Queries.WithLabelValues(network, mode, criterion, outcome).Inc()
}

// ObserveSearch 记录 A* 与 Dijkstra 的扩展节点数以及行程费用
func (c *RouteCollector) ObserveSearch(mode string, astarExpanded, dijkstraExpanded int, cost float64) {
	if c == nil {
		return
	}
	c.ExpandedNodes.WithLabelValues("astar").Observe(float64(astarExpanded))
	c.ExpandedNodes.WithLabelValues("dijkstra").Observe(float64(dijkstraExpanded))
	c.TripCost.WithLabelValues(mode).Observe(cost)
}

// Handler 返回 /metrics 处理器
func (c *RouteCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
