package algo

import (
	"fmt"

	"logistics-advisor/model"
)

// TripCost 一次行程的费用估算
type TripCost struct {
	DistanceKm  float64 `json:"distance_km"`
	TimeMinutes float64 `json:"time_minutes"`
	Amount      float64 `json:"amount"`
}

// CostModel 按车型费率计算行程费用
type CostModel struct {
	Rates map[model.VehicleMode]model.Rate
}

// NewCostModel 使用默认费率表创建费用模型
func NewCostModel() CostModel {
	return CostModel{Rates: model.DefaultRates}
}

// Estimate 计算路径的费用
// 费用 = 总距离 * 每公里费用 + (总分钟数 / 60) * 每小时费用
// 车型不在费率表中时返回 ErrUnknownVehicleMode，不会使用默认值
func (c CostModel) Estimate(path []string, g *Graph, mode model.VehicleMode) (TripCost, error) {
	rate, ok := c.Rates[mode]
	if !ok {
		return TripCost{}, fmt.Errorf("estimate cost: %w: %q", ErrUnknownVehicleMode, mode)
	}
	timeKey, err := g.TimeKey(mode)
	if err != nil {
		return TripCost{}, fmt.Errorf("estimate cost: %w", err)
	}

	distance, err := g.PathWeight(path, model.WeightDistance)
	if err != nil {
		return TripCost{}, fmt.Errorf("estimate cost: %w", err)
	}
	minutes, err := g.PathWeight(path, timeKey)
	if err != nil {
		return TripCost{}, fmt.Errorf("estimate cost: %w", err)
	}

	return TripCost{
		DistanceKm:  distance,
		TimeMinutes: minutes,
		Amount:      distance*rate.PerKm + (minutes/60)*rate.PerHour,
	}, nil
}

// Cost 使用默认费率表计算路径费用
func Cost(path []string, g *Graph, mode model.VehicleMode) (float64, error) {
	tc, err := NewCostModel().Estimate(path, g, mode)
	if err != nil {
		return 0, err
	}
	return tc.Amount, nil
}
