package algo

import "errors"

var (
	// ErrNoPathFound 终点从起点不可达 (车辆限制或封路导致)，属于正常结果
	ErrNoPathFound = errors.New("no path found")

	// ErrUnknownVehicleMode 车辆类型不在费率表或时间属性表中
	ErrUnknownVehicleMode = errors.New("unknown vehicle mode")

	// ErrInvalidScenario 场景参数不合法，例如封闭一条不存在的道路
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrUnknownNode 节点不存在
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidPath 路径为空，或相邻节点之间没有道路
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidGraph 静态地图数据不满足约束
	ErrInvalidGraph = errors.New("invalid graph")
)
