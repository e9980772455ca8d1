package algo

import (
	"fmt"
	"sort"
	"sync"

	"logistics-advisor/model"
)

// 路网名称
const (
	NetworkMumbai = "mumbai" // 孟买物流路网 (分车型通行时间)
	NetworkDemo   = "demo"   // 简化演示路网 (通用通行时间)
)

// Dataset 静态路网数据表
type Dataset struct {
	Name     string
	Nodes    []model.Node
	Edges    []model.Edge
	TimeKeys map[model.VehicleMode]model.WeightKey
}

// mumbaiTimes 构造分车型的通行时间表
func mumbaiTimes(truck, car, bike float64) map[model.WeightKey]float64 {
	return map[model.WeightKey]float64{
		model.WeightTimeTruck: truck,
		model.WeightTimeCar:   car,
		model.WeightTimeBike:  bike,
	}
}

// demoTime 构造通用通行时间表
func demoTime(minutes float64) map[model.WeightKey]float64 {
	return map[model.WeightKey]float64{model.WeightTime: minutes}
}

// MumbaiDataset 孟买物流路网
// 仓库位于 Bhiwandi，其余为市区主要地点
var MumbaiDataset = Dataset{
	Name: NetworkMumbai,
	Nodes: []model.Node{
		{ID: "Bhiwandi (Warehouse)", X: 10, Y: 10, Type: model.NodeTypeHub},
		{ID: "Borivali", X: 2, Y: 9, Type: model.NodeTypeArterial},
		{ID: "Andheri", X: 1, Y: 6, Type: model.NodeTypeArterial},
		{ID: "Powai", X: 4, Y: 7, Type: model.NodeTypeArterial},
		{ID: "Bandra", X: 3, Y: 4, Type: model.NodeTypeArterial},
		{ID: "BKC", X: 5, Y: 5, Type: model.NodeTypeArterial},
		{ID: "Ghatkopar", X: 7, Y: 3, Type: model.NodeTypeArterial},
		{ID: "Dadar", X: 5, Y: 2, Type: model.NodeTypeArterial},
		{ID: "Worli", X: 4, Y: 0, Type: model.NodeTypeArterial},
		{ID: "CST", X: 6, Y: -2, Type: model.NodeTypeArterial},
	},
	Edges: []model.Edge{
		{From: "Bhiwandi (Warehouse)", To: "Borivali", Dist: 30, Times: mumbaiTimes(80, 75, 65), RoadType: model.RoadHighway},
		{From: "Bhiwandi (Warehouse)", To: "Powai", Dist: 25, Times: mumbaiTimes(65, 60, 50), RoadType: model.RoadHighway},
		{From: "Borivali", To: "Andheri", Dist: 14, Times: mumbaiTimes(45, 40, 30), RoadType: model.RoadMain},
		{From: "Borivali", To: "Powai", Dist: 20, Times: mumbaiTimes(55, 50, 40), RoadType: model.RoadMain},
		{From: "Andheri", To: "Bandra", Dist: 8, Times: mumbaiTimes(30, 25, 15), RoadType: model.RoadMain},
		{From: "Andheri", To: "Powai", Dist: 6, Times: mumbaiTimes(25, 20, 15), RoadType: model.RoadNarrowLane},
		{From: "Powai", To: "BKC", Dist: 10, Times: mumbaiTimes(35, 30, 20), RoadType: model.RoadMain},
		{From: "Powai", To: "Ghatkopar", Dist: 5, Times: mumbaiTimes(20, 15, 10), RoadType: model.RoadMain},
		{From: "Bandra", To: "BKC", Dist: 3, Times: mumbaiTimes(15, 10, 7), RoadType: model.RoadMain},
		{From: "Bandra", To: "Dadar", Dist: 7, Times: mumbaiTimes(25, 20, 15), RoadType: model.RoadMain},
		{From: "BKC", To: "Ghatkopar", Dist: 8, Times: mumbaiTimes(30, 25, 20), RoadType: model.RoadNarrowLane},
		{From: "BKC", To: "Worli", Dist: 10, Times: mumbaiTimes(40, 35, 25), RoadType: model.RoadMain},
		{From: "Ghatkopar", To: "Dadar", Dist: 9, Times: mumbaiTimes(35, 30, 25), RoadType: model.RoadMain},
		{From: "Dadar", To: "Worli", Dist: 5, Times: mumbaiTimes(20, 15, 10), RoadType: model.RoadMain},
		{From: "Worli", To: "CST", Dist: 10, Times: mumbaiTimes(30, 25, 20), RoadType: model.RoadMain},
	},
	TimeKeys: map[model.VehicleMode]model.WeightKey{
		model.Truck:     model.WeightTimeTruck,
		model.Car:       model.WeightTimeCar,
		model.Motorbike: model.WeightTimeBike,
	},
}

// DemoDataset 简化演示路网
// 距离和时间不成比例：短路可能因为拥堵而耗时更长
var DemoDataset = Dataset{
	Name: NetworkDemo,
	Nodes: []model.Node{
		{ID: "Warehouse", X: 0, Y: 5, Type: model.NodeTypeHub},
		{ID: "A", X: 2, Y: 8, Type: model.NodeTypeArterial},
		{ID: "B", X: 5, Y: 9, Type: model.NodeTypeArterial},
		{ID: "C", X: 8, Y: 7, Type: model.NodeTypeArterial},
		{ID: "D", X: 1, Y: 2, Type: model.NodeTypeArterial},
		{ID: "E", X: 4, Y: 4, Type: model.NodeTypeArterial},
		{ID: "F", X: 6, Y: 5, Type: model.NodeTypeArterial},
		{ID: "G", X: 9, Y: 3, Type: model.NodeTypeArterial},
		{ID: "H", X: 3, Y: 0, Type: model.NodeTypeArterial},
		{ID: "I", X: 7, Y: 1, Type: model.NodeTypeArterial},
	},
	Edges: []model.Edge{
		{From: "Warehouse", To: "A", Dist: 4, Times: demoTime(8), RoadType: model.RoadMain},
		{From: "Warehouse", To: "D", Dist: 3, Times: demoTime(5), RoadType: model.RoadMain},
		{From: "A", To: "B", Dist: 5, Times: demoTime(6), RoadType: model.RoadMain},
		{From: "A", To: "E", Dist: 6, Times: demoTime(12), RoadType: model.RoadMain},
		{From: "B", To: "C", Dist: 4, Times: demoTime(5), RoadType: model.RoadMain},
		{From: "C", To: "F", Dist: 3, Times: demoTime(8), RoadType: model.RoadMain},
		{From: "C", To: "G", Dist: 7, Times: demoTime(7), RoadType: model.RoadMain},
		{From: "D", To: "E", Dist: 5, Times: demoTime(5), RoadType: model.RoadMain},
		{From: "D", To: "H", Dist: 6, Times: demoTime(10), RoadType: model.RoadMain},
		{From: "E", To: "F", Dist: 4, Times: demoTime(4), RoadType: model.RoadMain},
		{From: "E", To: "H", Dist: 8, Times: demoTime(9), RoadType: model.RoadMain},
		{From: "F", To: "G", Dist: 6, Times: demoTime(7), RoadType: model.RoadMain},
		{From: "F", To: "I", Dist: 5, Times: demoTime(9), RoadType: model.RoadMain},
		{From: "G", To: "I", Dist: 4, Times: demoTime(4), RoadType: model.RoadMain},
		{From: "H", To: "I", Dist: 9, Times: demoTime(15), RoadType: model.RoadMain},
	},
	// 演示路网只有一种通用时间，所有车型共用
	TimeKeys: map[model.VehicleMode]model.WeightKey{
		model.Truck:     model.WeightTime,
		model.Car:       model.WeightTime,
		model.Motorbike: model.WeightTime,
	},
}

// BuildGraph 从静态数据表构建图
func BuildGraph(ds Dataset) (*Graph, error) {
	g := NewGraph(ds.Name)
	for _, n := range ds.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("build graph %q: %w", ds.Name, err)
		}
	}
	for _, e := range ds.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("build graph %q: %w", ds.Name, err)
		}
	}
	for mode, key := range ds.TimeKeys {
		g.TimeKeys[mode] = key
	}
	return g, nil
}

// MustBuildGraph 同 BuildGraph，数据有误时直接 panic (静态数据错误属于编码缺陷)
func MustBuildGraph(ds Dataset) *Graph {
	g, err := BuildGraph(ds)
	if err != nil {
		panic(err)
	}
	return g
}

var (
	baseOnce   sync.Once
	baseGraphs map[string]*Graph
)

// datasets 所有内置路网
var datasets = []Dataset{MumbaiDataset, DemoDataset}

// BaseGraph 获取内置路网的基础图 (进程内只构建一次，只读)
func BaseGraph(name string) (*Graph, bool) {
	baseOnce.Do(func() {
		baseGraphs = make(map[string]*Graph, len(datasets))
		for _, ds := range datasets {
			baseGraphs[ds.Name] = MustBuildGraph(ds)
		}
	})
	g, ok := baseGraphs[name]
	return g, ok
}

// Networks 返回所有内置路网名称
func Networks() []string {
	names := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		names = append(names, ds.Name)
	}
	sort.Strings(names)
	return names
}
