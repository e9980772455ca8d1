package algo

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"logistics-advisor/model"
)

// SearchResult 一次最短路径搜索的结果
type SearchResult struct {
	Path     []string        // 节点 ID 序列
	Weight   float64         // 路径总权重 (按 Key 计算)
	Key      model.WeightKey // 优化的属性
	Expanded int             // 出队并确定最短距离的节点数
	Touched  []string        // 搜索过程中得到有限暂定距离的节点 (已排序)
}

// heuristicFunc 估计某节点到终点的剩余代价
type heuristicFunc func(nodeID string) float64

func zeroHeuristic(string) float64 { return 0 }

// searchState 单次搜索的可变状态
type searchState struct {
	dist     map[string]float64
	prev     map[string]string
	visited  map[string]bool
	expanded int
}

// run 通用的最短路径主循环，Dijkstra 与 A* 共用
// endID 为空时不提前退出，得到完整的最短路径树
func (g *Graph) run(startID, endID string, key model.WeightKey, h heuristicFunc) *searchState {
	st := &searchState{
		dist:    make(map[string]float64, len(g.Nodes)),
		prev:    make(map[string]string, len(g.Nodes)),
		visited: make(map[string]bool, len(g.Nodes)),
	}
	st.dist[startID] = 0

	pq := &PriorityQueue{}
	pq.PushNode(startID, h(startID))

	for pq.Len() > 0 {
		currentID := pq.PopNode().NodeID

		// 如果已访问过，跳过 (堆里可能有过期的重复元素)
		if st.visited[currentID] {
			continue
		}
		st.visited[currentID] = true
		st.expanded++

		// 如果到达终点，提前退出
		if currentID == endID {
			break
		}

		for _, edge := range g.Neighbors(currentID) {
			w, ok := edge.Weight(key)
			if !ok {
				continue // 该边没有此属性，按不可通行处理
			}
			neighborID := edge.Other(currentID)
			if st.visited[neighborID] {
				continue
			}

			newCost := st.dist[currentID] + w
			if old, seen := st.dist[neighborID]; !seen || newCost < old {
				st.dist[neighborID] = newCost
				st.prev[neighborID] = currentID
				pq.PushNode(neighborID, newCost+h(neighborID))
			}
		}
	}

	return st
}

// result 从搜索状态中回溯路径
func (st *searchState) result(startID, endID string, key model.WeightKey) (SearchResult, error) {
	weight, ok := st.dist[endID]
	if !ok {
		return SearchResult{}, fmt.Errorf("%w: from %q to %q", ErrNoPathFound, startID, endID)
	}

	path := []string{}
	for at := endID; ; at = st.prev[at] {
		path = append(path, at)
		if at == startID {
			break
		}
	}
	slices.Reverse(path)

	return SearchResult{
		Path:     path,
		Weight:   weight,
		Key:      key,
		Expanded: st.expanded,
		Touched:  st.touched(),
	}, nil
}

func (st *searchState) touched() []string {
	ids := make([]string, 0, len(st.dist))
	for id := range st.dist {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Graph) checkEndpoints(startID, endID string) error {
	if g.Nodes[startID] == nil {
		return fmt.Errorf("%w: %q", ErrUnknownNode, startID)
	}
	if g.Nodes[endID] == nil {
		return fmt.Errorf("%w: %q", ErrUnknownNode, endID)
	}
	return nil
}

// Dijkstra 使用 Dijkstra 算法寻找按 key 计算的最短路径 (不使用启发式)
func (g *Graph) Dijkstra(startID, endID string, key model.WeightKey) (SearchResult, error) {
	if err := g.checkEndpoints(startID, endID); err != nil {
		return SearchResult{}, err
	}
	return g.run(startID, endID, key, zeroHeuristic).result(startID, endID, key)
}

// ShortestPathTree 计算从起点出发到所有可达节点的最短距离
func (g *Graph) ShortestPathTree(startID string, key model.WeightKey) (map[string]float64, error) {
	if g.Nodes[startID] == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, startID)
	}
	return g.run(startID, "", key, zeroHeuristic).dist, nil
}

// ExploredNodes 返回 Dijkstra 从起点构建完整最短路径树时触及的节点
// 仅用于展示 Dijkstra 的"盲目"搜索范围，不参与选路
func (g *Graph) ExploredNodes(startID string, key model.WeightKey) ([]string, error) {
	tree, err := g.ShortestPathTree(startID, key)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tree))
	for id := range tree {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// PathWeight 沿路径累加 key 对应的边属性
func (g *Graph) PathWeight(path []string, key model.WeightKey) (float64, error) {
	if len(path) == 0 {
		return 0, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if g.Nodes[path[0]] == nil {
		return 0, fmt.Errorf("%w: unknown node %q", ErrInvalidPath, path[0])
	}

	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		edge, ok := g.Edge(path[i], path[i+1])
		if !ok {
			return 0, fmt.Errorf("%w: no road between %q and %q", ErrInvalidPath, path[i], path[i+1])
		}
		w, ok := edge.Weight(key)
		if !ok {
			return 0, fmt.Errorf("%w: road %q - %q has no %s", ErrInvalidPath, path[i], path[i+1], key)
		}
		total += w
	}
	return total, nil
}

// FormatPath 格式化路径结果为可读字符串
func FormatPath(result SearchResult) string {
	if len(result.Path) == 0 {
		return "未找到路径"
	}
	return fmt.Sprintf("%s (%g %s)", strings.Join(result.Path, " → "), result.Weight, result.Key.Unit())
}
