package algo

import (
	"errors"
	"fmt"

	"logistics-advisor/model"
)

// Query 一次路线规划请求 (已经过外层校验)
type Query struct {
	Start      string
	End        string
	Mode       model.VehicleMode
	Criterion  model.Criterion
	RushHour   bool
	ClosedEdge *model.EdgeRef
}

// Leg 路线中的一段
type Leg struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
	Minutes  float64 `json:"minutes"`
	Weight   float64 `json:"weight"` // 按优化目标计算的该段代价
	RoadType string  `json:"road_type"`
}

// RouteResult 路线规划结果
type RouteResult struct {
	Path       []string
	Legs       []Leg
	Key        model.WeightKey
	Weight     float64
	Cost       TripCost
	AStar      SearchResult // 实际采用的路线
	Dijkstra   SearchResult // 对照组
	Explored   []string     // Dijkstra 完整最短路径树触及的节点
	Work       *Graph       // 应用场景后的工作图
	Degenerate bool         // 起点即终点
}

// WeightKeyFor 根据优化目标选择边属性
func WeightKeyFor(g *Graph, mode model.VehicleMode, criterion model.Criterion) (model.WeightKey, error) {
	switch criterion {
	case model.CriterionDistance:
		return model.WeightDistance, nil
	case model.CriterionTime:
		return g.TimeKey(mode)
	}
	return "", fmt.Errorf("%w: unknown criterion %q", ErrInvalidScenario, criterion)
}

// PlanRoute 在基础图上规划一次路线
// 流程: 应用场景得到工作图 -> A* 求路线 -> Dijkstra 对照 -> 计算费用
// 起点等于终点时返回只有一个节点、代价为 0 的路线
// 不可达时返回 ErrNoPathFound，同时返回只含 Key 和 Work 的结果供调用方展示工作图
func PlanRoute(base *Graph, q Query, costs CostModel) (*RouteResult, error) {
	if base.Nodes[q.Start] == nil {
		return nil, fmt.Errorf("plan route: %w: %w %q", ErrInvalidScenario, ErrUnknownNode, q.Start)
	}
	if base.Nodes[q.End] == nil {
		return nil, fmt.Errorf("plan route: %w: %w %q", ErrInvalidScenario, ErrUnknownNode, q.End)
	}

	work, err := base.ApplyScenario(Scenario{Mode: q.Mode, RushHour: q.RushHour, ClosedEdge: q.ClosedEdge})
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	key, err := WeightKeyFor(work, q.Mode, q.Criterion)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	astar, err := work.AStar(q.Start, q.End, key)
	if errors.Is(err, ErrNoPathFound) {
		return &RouteResult{Key: key, Work: work}, fmt.Errorf("plan route: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}
	dijkstra, err := work.Dijkstra(q.Start, q.End, key)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}
	explored, err := work.ExploredNodes(q.Start, key)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	cost, err := costs.Estimate(astar.Path, work, q.Mode)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	legs, err := buildLegs(work, astar.Path, q.Mode, key)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	return &RouteResult{
		Path:       astar.Path,
		Legs:       legs,
		Key:        key,
		Weight:     astar.Weight,
		Cost:       cost,
		AStar:      astar,
		Dijkstra:   dijkstra,
		Explored:   explored,
		Work:       work,
		Degenerate: q.Start == q.End,
	}, nil
}

// buildLegs 构建逐段行程
func buildLegs(g *Graph, path []string, mode model.VehicleMode, key model.WeightKey) ([]Leg, error) {
	timeKey, err := g.TimeKey(mode)
	if err != nil {
		return nil, err
	}

	legs := make([]Leg, 0, len(path))
	for i := 0; i < len(path)-1; i++ {
		edge, ok := g.Edge(path[i], path[i+1])
		if !ok {
			return nil, fmt.Errorf("%w: no road between %q and %q", ErrInvalidPath, path[i], path[i+1])
		}
		w, _ := edge.Weight(key)
		minutes, _ := edge.Weight(timeKey)
		legs = append(legs, Leg{
			From:     path[i],
			To:       path[i+1],
			Distance: edge.Dist,
			Minutes:  minutes,
			Weight:   w,
			RoadType: edge.RoadType,
		})
	}
	return legs, nil
}
