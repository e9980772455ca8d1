package model

import (
	"fmt"
	"strings"
)

// VehicleMode 车辆类型
type VehicleMode string

const (
	Truck     VehicleMode = "Truck"
	Car       VehicleMode = "Car"
	Motorbike VehicleMode = "Motorbike"
)

// VehicleModes 所有支持的车辆类型 (用于遍历和展示)
var VehicleModes = []VehicleMode{Truck, Car, Motorbike}

// VehicleProfile 车辆在路网上的通行规则
type VehicleProfile struct {
	RushHourFactor float64 // 晚高峰时间倍率
	ForbiddenRoads int     // 禁止通行的道路类型位掩码
}

// vehicleProfiles 车辆类型 -> 通行规则
var vehicleProfiles = map[VehicleMode]VehicleProfile{
	Truck:     {RushHourFactor: 2.0, ForbiddenRoads: RoadMaskNarrow}, // 卡车不能走小巷
	Car:       {RushHourFactor: 1.75},
	Motorbike: {RushHourFactor: 1.25},
}

// Profile 获取车辆的通行规则
func (m VehicleMode) Profile() (VehicleProfile, bool) {
	p, ok := vehicleProfiles[m]
	return p, ok
}

// CanUse 判断车辆能否通行某种道路
func (p VehicleProfile) CanUse(roadType string) bool {
	return ParseRoadType(roadType)&p.ForbiddenRoads == 0
}

// ParseVehicleMode 将字符串解析为车辆类型 (不区分大小写)
func ParseVehicleMode(s string) (VehicleMode, error) {
	for _, m := range VehicleModes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown vehicle mode %q", s)
}

// Rate 车辆的费用标准
type Rate struct {
	PerKm   float64 `json:"cost_per_km"`   // 每公里费用
	PerHour float64 `json:"cost_per_hour"` // 每小时费用
}

// DefaultRates 默认费率表 (卢比)
var DefaultRates = map[VehicleMode]Rate{
	Truck:     {PerKm: 25, PerHour: 300},
	Car:       {PerKm: 12, PerHour: 200},
	Motorbike: {PerKm: 5, PerHour: 150},
}

// Criterion 优化目标
type Criterion string

const (
	CriterionTime     Criterion = "time"     // 最快
	CriterionDistance Criterion = "distance" // 最短 (最省钱)
)

// ParseCriterion 解析优化目标
func ParseCriterion(s string) (Criterion, error) {
	switch Criterion(strings.ToLower(strings.TrimSpace(s))) {
	case CriterionTime:
		return CriterionTime, nil
	case CriterionDistance:
		return CriterionDistance, nil
	}
	return "", fmt.Errorf("unknown optimization criterion %q", s)
}
