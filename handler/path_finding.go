package handler

import (
	"errors"
	"net/http"
	"strings"

	"logistics-advisor/algo"
	"logistics-advisor/logging"
	"logistics-advisor/model"
	"logistics-advisor/observability"

	"github.com/gin-gonic/gin"
)

// PathRequest 路径规划请求
type PathRequest struct {
	Network    string         `json:"network"`               // 路网名称，为空时使用默认路网
	StartID    string         `json:"start_id"`              // 起点节点 ID
	EndID      string         `json:"end_id"`                // 终点节点 ID
	StartPoint *model.PointXY `json:"start_point,omitempty"` // 起点坐标 (可选，吸附到最近节点)
	EndPoint   *model.PointXY `json:"end_point,omitempty"`   // 终点坐标 (可选)
	Mode       string         `json:"mode" binding:"required"`
	Optimize   string         `json:"optimize"` // time 或 distance，默认 time
	RushHour   bool           `json:"rush_hour"`
	ClosedEdge *model.EdgeRef `json:"closed_edge,omitempty"`
}

// PathResponse 路径规划响应
type PathResponse struct {
	Found          bool            `json:"found"`
	Network        string          `json:"network"`
	Path           []PathNode      `json:"path,omitempty"`
	Legs           []algo.Leg      `json:"legs,omitempty"`
	TotalWeight    float64         `json:"total_weight"`
	WeightKey      model.WeightKey `json:"weight_key,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	DistanceKm     float64         `json:"distance_km"`
	TimeMinutes    float64         `json:"time_minutes"`
	Cost           float64         `json:"cost"`
	Summary        string          `json:"summary,omitempty"`
	Comparison     *Comparison     `json:"comparison,omitempty"`
	RemainingEdges int             `json:"remaining_edges,omitempty"` // 未找到路径时工作图剩余的道路数
	Message        string          `json:"message,omitempty"`
}

// Comparison A* 与 Dijkstra 的搜索对比
type Comparison struct {
	AStar    SearchStats `json:"astar"`
	Dijkstra SearchStats `json:"dijkstra"`
	Explored []string    `json:"explored"` // 起点出发可达的全部节点
}

// SearchStats 一次搜索的统计
type SearchStats struct {
	Expanded int      `json:"expanded"`
	Touched  []string `json:"touched"`
}

// PathNode 路径节点信息
type PathNode struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}

func toPathNode(n *model.Node) PathNode {
	return PathNode{ID: n.ID, X: n.X, Y: n.Y, Type: n.Type}
}

// FindPath 路径规划接口
func (h *Handler) FindPath(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromGin(c)

	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	network, graph, ok := h.network(req.Network)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "路网不存在: " + network})
		return
	}

	mode, err := model.ParseVehicleMode(req.Mode)
	if err != nil {
		h.metrics.ObserveQuery(network, observability.LabelUnknown, observability.LabelUnknown, observability.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的车辆类型: " + req.Mode})
		return
	}
	optimize := req.Optimize
	if optimize == "" {
		optimize = string(model.CriterionTime)
	}
	criterion, err := model.ParseCriterion(optimize)
	if err != nil {
		h.metrics.ObserveQuery(network, string(mode), observability.LabelUnknown, observability.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的优化目标: " + optimize})
		return
	}

	// 如果提供了坐标，找到最近的节点
	startID, endID := req.StartID, req.EndID
	if startID == "" && req.StartPoint != nil {
		if n := graph.FindNearestNode(req.StartPoint.X, req.StartPoint.Y); n != nil {
			startID = n.ID
		}
	}
	if endID == "" && req.EndPoint != nil {
		if n := graph.FindNearestNode(req.EndPoint.X, req.EndPoint.Y); n != nil {
			endID = n.ID
		}
	}
	if startID == "" || endID == "" {
		h.metrics.ObserveQuery(network, string(mode), string(criterion), observability.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"error": "起点或终点未指定"})
		return
	}

	query := algo.Query{
		Start:      startID,
		End:        endID,
		Mode:       mode,
		Criterion:  criterion,
		RushHour:   req.RushHour,
		ClosedEdge: req.ClosedEdge,
	}
	trip := newTrip(network, query)

	result, err := algo.PlanRoute(graph, query, h.costs)
	switch {
	case err == nil:
	case errors.Is(err, algo.ErrNoPathFound):
		h.metrics.ObserveQuery(network, string(mode), string(criterion), observability.OutcomeNoPath)
		resp := PathResponse{
			Found:   false,
			Network: network,
			Message: "未找到符合条件的路径",
		}
		if result != nil && result.Work != nil {
			resp.RemainingEdges = result.Work.EdgeCount()
		}
		log.Info(ctx, "no route", logging.String("network", network), logging.String("start", startID), logging.String("end", endID))
		h.recordTrip(c, trip)
		c.JSON(http.StatusOK, resp)
		return
	case errors.Is(err, algo.ErrInvalidScenario), errors.Is(err, algo.ErrUnknownNode):
		h.metrics.ObserveQuery(network, string(mode), string(criterion), observability.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		log.Error(ctx, "route planning failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "路径规划失败"})
		return
	}

	h.metrics.ObserveQuery(network, string(mode), string(criterion), observability.OutcomeFound)
	h.metrics.ObserveSearch(string(mode), result.AStar.Expanded, result.Dijkstra.Expanded, result.Cost.Amount)

	pathNodes := make([]PathNode, 0, len(result.Path))
	for _, id := range result.Path {
		if n, ok := graph.Node(id); ok {
			pathNodes = append(pathNodes, toPathNode(n))
		}
	}

	message := "路径规划成功"
	if result.Degenerate {
		message = "起点与终点相同"
	}

	trip.Found = true
	trip.Path = result.Path
	trip.TotalWeight = result.Weight
	trip.Cost = result.Cost.Amount
	h.recordTrip(c, trip)

	log.Debug(ctx, "route planned",
		logging.String("network", network),
		logging.String("key", string(result.Key)),
		logging.Int("astar_expanded", result.AStar.Expanded),
		logging.Int("dijkstra_expanded", result.Dijkstra.Expanded),
	)

	c.JSON(http.StatusOK, PathResponse{
		Found:       true,
		Network:     network,
		Path:        pathNodes,
		Legs:        result.Legs,
		TotalWeight: result.Weight,
		WeightKey:   result.Key,
		Unit:        result.Key.Unit(),
		DistanceKm:  result.Cost.DistanceKm,
		TimeMinutes: result.Cost.TimeMinutes,
		Cost:        result.Cost.Amount,
		Summary:     algo.FormatPath(result.AStar),
		Comparison: &Comparison{
			AStar:    SearchStats{Expanded: result.AStar.Expanded, Touched: result.AStar.Touched},
			Dijkstra: SearchStats{Expanded: result.Dijkstra.Expanded, Touched: result.Dijkstra.Touched},
			Explored: result.Explored,
		},
		Message: message,
	})
}

// GetNetworks 获取所有内置路网
func (h *Handler) GetNetworks(c *gin.Context) {
	type networkInfo struct {
		Name    string `json:"name"`
		Nodes   int    `json:"nodes"`
		Edges   int    `json:"edges"`
		Default bool   `json:"default"`
	}

	names := algo.Networks()
	networks := make([]networkInfo, 0, len(names))
	for _, name := range names {
		g, _ := algo.BaseGraph(name)
		networks = append(networks, networkInfo{
			Name:    name,
			Nodes:   g.NodeCount(),
			Edges:   g.EdgeCount(),
			Default: name == h.defaultNetwork,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(networks),
		"networks": networks,
	})
}

// GetNodes 获取所有节点信息
func (h *Handler) GetNodes(c *gin.Context) {
	network, graph, ok := h.networkFromQuery(c)
	if !ok {
		return
	}

	nodes := make([]PathNode, 0, graph.NodeCount())
	for i := range graph.NodeList {
		nodes = append(nodes, toPathNode(&graph.NodeList[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"network": network,
		"count":   len(nodes),
		"nodes":   nodes,
	})
}

// GetNodeByID 根据 ID 获取节点信息及其相邻道路
func (h *Handler) GetNodeByID(c *gin.Context) {
	_, graph, ok := h.networkFromQuery(c)
	if !ok {
		return
	}

	node, exists := graph.Node(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "节点不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"node":  toPathNode(node),
		"roads": graph.Neighbors(node.ID),
	})
}

// SearchNodes 搜索节点 (按 ID 模糊匹配，不区分大小写)
func (h *Handler) SearchNodes(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少搜索关键词"})
		return
	}

	_, graph, ok := h.networkFromQuery(c)
	if !ok {
		return
	}

	needle := strings.ToLower(query)
	results := make([]PathNode, 0)
	for i := range graph.NodeList {
		if strings.Contains(strings.ToLower(graph.NodeList[i].ID), needle) {
			results = append(results, toPathNode(&graph.NodeList[i]))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// GetEdges 获取路网中的所有道路 (即可以封闭的道路)
func (h *Handler) GetEdges(c *gin.Context) {
	network, graph, ok := h.networkFromQuery(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"network": network,
		"count":   graph.EdgeCount(),
		"edges":   graph.Edges(),
	})
}

// GetVehicles 获取车辆类型、高峰系数、禁行道路与费率
func (h *Handler) GetVehicles(c *gin.Context) {
	type vehicleInfo struct {
		Mode           model.VehicleMode `json:"mode"`
		RushHourFactor float64           `json:"rush_hour_factor"`
		ForbiddenRoads []string          `json:"forbidden_roads"`
		model.Rate
	}

	vehicles := make([]vehicleInfo, 0, len(model.VehicleModes))
	for _, mode := range model.VehicleModes {
		profile, _ := mode.Profile()
		forbidden := make([]string, 0)
		for _, road := range []string{model.RoadHighway, model.RoadMain, model.RoadNarrowLane} {
			if !profile.CanUse(road) {
				forbidden = append(forbidden, road)
			}
		}
		vehicles = append(vehicles, vehicleInfo{
			Mode:           mode,
			RushHourFactor: profile.RushHourFactor,
			ForbiddenRoads: forbidden,
			Rate:           h.costs.Rates[mode],
		})
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}
