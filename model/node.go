package model

// PointXY 代表平面坐标系中的一个点
// 坐标只用于启发式函数和绘图，与真实距离无关
type PointXY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// 节点类型
const (
	NodeTypeHub      = "hub"      // 仓库/枢纽
	NodeTypeArterial = "arterial" // 主干道上的普通地点
)

// Node 对应地图上的一个地点 (仓库、街区、路口)
type Node struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"` // 如: "hub", "arterial"，搜索算法不使用
}

// Pos 返回节点的平面坐标
func (n Node) Pos() PointXY {
	return PointXY{X: n.X, Y: n.Y}
}
