package algo

import "container/heap"

// PriorityQueueItem 优先队列中的元素
type PriorityQueueItem struct {
	NodeID string
	Cost   float64 // 优先级: Dijkstra 为已知代价，A* 为已知代价 + 启发值
	Seq    int     // 入队序号，代价相同时先入先出
	Index  int     // 在堆中的索引
}

// PriorityQueue 实现 heap.Interface 接口的优先队列
type PriorityQueue struct {
	items []*PriorityQueueItem
	seq   int
}

func (pq *PriorityQueue) Len() int { return len(pq.items) }

func (pq *PriorityQueue) Less(i, j int) bool {
	if pq.items[i].Cost != pq.items[j].Cost {
		return pq.items[i].Cost < pq.items[j].Cost
	}
	return pq.items[i].Seq < pq.items[j].Seq
}

func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].Index = i
	pq.items[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	item := x.(*PriorityQueueItem)
	item.Index = len(pq.items)
	pq.items = append(pq.items, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // 避免内存泄漏
	item.Index = -1 // 标记为已移除
	pq.items = old[0 : n-1]
	return item
}

// PushNode 按代价入队，自动分配入队序号
func (pq *PriorityQueue) PushNode(nodeID string, cost float64) {
	pq.seq++
	heap.Push(pq, &PriorityQueueItem{NodeID: nodeID, Cost: cost, Seq: pq.seq})
}

// PopNode 弹出代价最小的元素
func (pq *PriorityQueue) PopNode() *PriorityQueueItem {
	return heap.Pop(pq).(*PriorityQueueItem)
}
