package algo

import (
	"math"

	"logistics-advisor/model"
	"logistics-advisor/utils"
)

// HeuristicScale 计算启发式函数的缩放系数
//
// 启发值 = 系数 * 到终点的直线距离。系数取所有边上 (权重 / 端点直线距离) 的最小值，
// 所以对任意一条边都有 系数*直线距离 <= 权重，再结合三角不等式，启发值既不会高估
// 剩余代价 (可采纳)，也满足一致性。
// 坐标和距离同比例时 distance 的系数为 1，即普通的欧氏距离；
// 按时间优化时系数由路网数据标定，而不是直接拿坐标距离当时间用。
// 端点重合的边不参与计算；没有可用边时返回 0，A* 退化为 Dijkstra。
func (g *Graph) HeuristicScale(key model.WeightKey) float64 {
	scale := math.Inf(1)
	for _, e := range g.EdgeList {
		w, ok := e.Weight(key)
		if !ok {
			continue
		}
		span := utils.EuclideanDistance(g.Nodes[e.From].Pos(), g.Nodes[e.To].Pos())
		if span == 0 {
			continue
		}
		scale = math.Min(scale, w/span)
	}
	if math.IsInf(scale, 1) {
		return 0
	}
	return scale
}

// AStar 使用 A* 算法寻找按 key 计算的最短路径
// 启发式函数为缩放后的欧氏距离，见 HeuristicScale
func (g *Graph) AStar(startID, endID string, key model.WeightKey) (SearchResult, error) {
	if err := g.checkEndpoints(startID, endID); err != nil {
		return SearchResult{}, err
	}

	scale := g.HeuristicScale(key)
	goal := g.Nodes[endID].Pos()
	heuristic := func(nodeID string) float64 {
		return scale * utils.EuclideanDistance(g.Nodes[nodeID].Pos(), goal)
	}

	return g.run(startID, endID, key, heuristic).result(startID, endID, key)
}
