package algo

import (
	"fmt"
	"slices"

	"logistics-advisor/model"
	"logistics-advisor/utils"
)

// Graph 无向路网图，用于路径规划
// 基础图在进程启动时构建一次，之后只读；每次查询都在 Clone 出来的副本上修改
type Graph struct {
	Name     string                                // 路网名称
	Nodes    map[string]*model.Node                // 节点字典 (ID -> Node)
	AdjList  map[string][]*model.Edge              // 邻接表 (ID -> 边列表)，一条边同时挂在两个端点下
	NodeList []model.Node                          // 节点列表 (保持插入顺序，用于遍历)
	EdgeList []*model.Edge                         // 边列表 (每条无向边只出现一次)
	TimeKeys map[model.VehicleMode]model.WeightKey // 车辆类型 -> 该路网上的时间属性
}

// NewGraph 创建一个空的图
func NewGraph(name string) *Graph {
	return &Graph{
		Name:     name,
		Nodes:    make(map[string]*model.Node),
		AdjList:  make(map[string][]*model.Edge),
		TimeKeys: make(map[model.VehicleMode]model.WeightKey),
	}
}

// AddNode 添加节点，ID 不能为空也不能重复
func (g *Graph) AddNode(node model.Node) error {
	if node.ID == "" {
		return fmt.Errorf("%w: empty node id", ErrInvalidGraph)
	}
	if _, exists := g.Nodes[node.ID]; exists {
		return fmt.Errorf("%w: duplicate node %q", ErrInvalidGraph, node.ID)
	}
	g.NodeList = append(g.NodeList, node)
	n := node
	g.Nodes[node.ID] = &n
	return nil
}

// AddEdge 添加一条无向边
// 两个端点必须已存在且不同，同一对节点之间最多一条边，权重不能为负
func (g *Graph) AddEdge(edge model.Edge) error {
	if edge.From == edge.To {
		return fmt.Errorf("%w: self loop at %q", ErrInvalidGraph, edge.From)
	}
	if g.Nodes[edge.From] == nil || g.Nodes[edge.To] == nil {
		return fmt.Errorf("%w: edge %s - %s references unknown node", ErrInvalidGraph, edge.From, edge.To)
	}
	if g.HasEdge(edge.From, edge.To) {
		return fmt.Errorf("%w: duplicate edge %s - %s", ErrInvalidGraph, edge.From, edge.To)
	}
	if edge.Dist < 0 {
		return fmt.Errorf("%w: negative distance on %s - %s", ErrInvalidGraph, edge.From, edge.To)
	}
	for key, w := range edge.Times {
		if w < 0 {
			return fmt.Errorf("%w: negative %s on %s - %s", ErrInvalidGraph, key, edge.From, edge.To)
		}
	}

	e := edge.Clone()
	g.EdgeList = append(g.EdgeList, e)
	g.AdjList[e.From] = append(g.AdjList[e.From], e)
	g.AdjList[e.To] = append(g.AdjList[e.To], e)
	return nil
}

// Node 根据 ID 查找节点
func (g *Graph) Node(id string) (*model.Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// Edge 根据两个端点查找边 (不分方向)
func (g *Graph) Edge(u, v string) (*model.Edge, bool) {
	for _, e := range g.AdjList[u] {
		if e.Connects(u, v) {
			return e, true
		}
	}
	return nil, false
}

// HasEdge 判断两个地点之间是否有直达道路
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.Edge(u, v)
	return ok
}

// Neighbors 获取指定节点的所有邻接边
func (g *Graph) Neighbors(nodeID string) []*model.Edge {
	return g.AdjList[nodeID]
}

// Edges 返回所有边 (插入顺序)
func (g *Graph) Edges() []*model.Edge {
	return g.EdgeList
}

// NodeIDs 返回所有节点 ID (插入顺序)
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.NodeList))
	for _, n := range g.NodeList {
		ids = append(ids, n.ID)
	}
	return ids
}

// NodeCount 节点数
func (g *Graph) NodeCount() int { return len(g.NodeList) }

// EdgeCount 边数
func (g *Graph) EdgeCount() int { return len(g.EdgeList) }

// TimeKey 查找车辆类型在该路网上对应的时间属性
func (g *Graph) TimeKey(mode model.VehicleMode) (model.WeightKey, error) {
	key, ok := g.TimeKeys[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q on network %q", ErrUnknownVehicleMode, mode, g.Name)
	}
	return key, nil
}

// RemoveEdge 删除一条边，返回是否真的删除了
// 只允许在 Clone 出来的工作图上调用
func (g *Graph) RemoveEdge(u, v string) bool {
	e, ok := g.Edge(u, v)
	if !ok {
		return false
	}
	g.EdgeList = slices.DeleteFunc(g.EdgeList, func(x *model.Edge) bool { return x == e })
	g.AdjList[e.From] = slices.DeleteFunc(g.AdjList[e.From], func(x *model.Edge) bool { return x == e })
	g.AdjList[e.To] = slices.DeleteFunc(g.AdjList[e.To], func(x *model.Edge) bool { return x == e })
	return true
}

// Clone 深拷贝整个图，副本上的任何修改都不会影响原图
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Name:     g.Name,
		Nodes:    make(map[string]*model.Node, len(g.Nodes)),
		AdjList:  make(map[string][]*model.Edge, len(g.AdjList)),
		NodeList: slices.Clone(g.NodeList),
		EdgeList: make([]*model.Edge, 0, len(g.EdgeList)),
		TimeKeys: make(map[model.VehicleMode]model.WeightKey, len(g.TimeKeys)),
	}
	for i := range c.NodeList {
		n := c.NodeList[i]
		c.Nodes[n.ID] = &n
	}
	for _, e := range g.EdgeList {
		ec := e.Clone()
		c.EdgeList = append(c.EdgeList, ec)
		c.AdjList[ec.From] = append(c.AdjList[ec.From], ec)
		c.AdjList[ec.To] = append(c.AdjList[ec.To], ec)
	}
	for mode, key := range g.TimeKeys {
		c.TimeKeys[mode] = key
	}
	return c
}

// FindNearestNode 找到离给定平面坐标最近的节点
func (g *Graph) FindNearestNode(x, y float64) *model.Node {
	var nearest *model.Node
	minDist := -1.0

	target := model.PointXY{X: x, Y: y}
	for _, n := range g.NodeList {
		dist := utils.EuclideanDistance(target, n.Pos())
		if minDist < 0 || dist < minDist {
			minDist = dist
			nearest = g.Nodes[n.ID]
		}
	}

	return nearest
}
