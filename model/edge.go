package model

import "fmt"

// WeightKey 边上可用作优化目标的属性名
type WeightKey string

const (
	WeightDistance  WeightKey = "distance"   // 距离 (公里)
	WeightTimeTruck WeightKey = "time_truck" // 卡车通行时间 (分钟)
	WeightTimeCar   WeightKey = "time_car"   // 小汽车通行时间 (分钟)
	WeightTimeBike  WeightKey = "time_bike"  // 摩托车通行时间 (分钟)
	WeightTime      WeightKey = "time"       // 通用通行时间 (分钟)，简化版地图使用
)

// IsTime 判断该属性是否为时间类属性
func (k WeightKey) IsTime() bool {
	switch k {
	case WeightTimeTruck, WeightTimeCar, WeightTimeBike, WeightTime:
		return true
	}
	return false
}

// Unit 返回属性的单位，用于展示
func (k WeightKey) Unit() string {
	if k.IsTime() {
		return "mins"
	}
	return "km"
}

// 道路类型
const (
	RoadHighway    = "highway"
	RoadMain       = "main"
	RoadNarrowLane = "narrow_lane"
)

// 道路类型的二进制位 (Bitmask)
// 判断某种车辆能不能走某条路，只需要做一次位与运算 (&)
const (
	RoadMaskNone   = 0
	RoadMaskHigh   = 1 << 0 // 1 highway
	RoadMaskMain   = 1 << 1 // 2 main
	RoadMaskNarrow = 1 << 2 // 4 narrow_lane
)

// ParseRoadType 将道路类型字符串转换为位掩码，未知类型返回 0
func ParseRoadType(roadType string) int {
	switch roadType {
	case RoadHighway:
		return RoadMaskHigh
	case RoadMain:
		return RoadMaskMain
	case RoadNarrowLane:
		return RoadMaskNarrow
	default:
		return RoadMaskNone
	}
}

// Edge 对应两个地点之间的一条双向道路
type Edge struct {
	From     string                `json:"from"`
	To       string                `json:"to"`
	Dist     float64               `json:"distance"`  // 距离 (公里)
	Times    map[WeightKey]float64 `json:"times"`     // 各车辆的通行时间 (分钟)
	RoadType string                `json:"road_type"` // highway / main / narrow_lane
}

// Weight 按属性名读取边的权重，第二个返回值表示边上是否有该属性
func (e *Edge) Weight(key WeightKey) (float64, bool) {
	if key == WeightDistance {
		return e.Dist, true
	}
	w, ok := e.Times[key]
	return w, ok
}

// Other 返回边的另一个端点
func (e *Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Connects 判断边是否连接给定的两个地点 (不分方向)
func (e *Edge) Connects(u, v string) bool {
	return (e.From == u && e.To == v) || (e.From == v && e.To == u)
}

// Clone 深拷贝一条边，时间表也会复制
func (e *Edge) Clone() *Edge {
	c := *e
	c.Times = make(map[WeightKey]float64, len(e.Times))
	for k, v := range e.Times {
		c.Times[k] = v
	}
	return &c
}

// EdgeRef 用两个端点指代一条道路 (例如封路请求)
type EdgeRef struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

func (r EdgeRef) String() string {
	return fmt.Sprintf("%s - %s", r.From, r.To)
}
