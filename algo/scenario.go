package algo

import (
	"fmt"
	"math"

	"logistics-advisor/model"
)

// Scenario 一次查询的路况场景
type Scenario struct {
	Mode       model.VehicleMode // 车辆类型
	RushHour   bool              // 是否模拟晚高峰
	ClosedEdge *model.EdgeRef    // 封闭的道路 (可选)
}

// ApplyScenario 在基础图的副本上应用场景，返回新的工作图
// 顺序固定为: 车辆限行 -> 高峰倍率 -> 封路
// 原图 g 不会被修改
func (g *Graph) ApplyScenario(s Scenario) (*Graph, error) {
	profile, ok := s.Mode.Profile()
	if !ok {
		return nil, fmt.Errorf("apply scenario: %w: %q", ErrUnknownVehicleMode, s.Mode)
	}
	timeKey, err := g.TimeKey(s.Mode)
	if err != nil {
		return nil, fmt.Errorf("apply scenario: %w", err)
	}

	// 封闭的道路必须是基础图里真实存在的道路
	if s.ClosedEdge != nil && !g.HasEdge(s.ClosedEdge.From, s.ClosedEdge.To) {
		return nil, fmt.Errorf("apply scenario: %w: %s is not a road", ErrInvalidScenario, s.ClosedEdge)
	}

	work := g.Clone()

	// 1. 车辆限行: 例如卡车不能走小巷
	if profile.ForbiddenRoads != model.RoadMaskNone {
		var restricted []*model.Edge
		for _, e := range work.EdgeList {
			if !profile.CanUse(e.RoadType) {
				restricted = append(restricted, e)
			}
		}
		for _, e := range restricted {
			work.RemoveEdge(e.From, e.To)
		}
	}

	// 2. 晚高峰: 只放大当前车型的时间，按分钟截断取整
	if s.RushHour {
		for _, e := range work.EdgeList {
			if t, ok := e.Times[timeKey]; ok {
				e.Times[timeKey] = math.Trunc(t * profile.RushHourFactor)
			}
		}
	}

	// 3. 封路: 如果已经被限行规则移除，则什么也不做
	if s.ClosedEdge != nil {
		work.RemoveEdge(s.ClosedEdge.From, s.ClosedEdge.To)
	}

	return work, nil
}
