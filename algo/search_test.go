package algo_test

import (
	"testing"

	"logistics-advisor/algo"
	"logistics-advisor/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weightKeys 返回工作图上该车型可以优化的属性
func weightKeys(t *testing.T, g *algo.Graph, mode model.VehicleMode) []model.WeightKey {
	t.Helper()
	timeKey, err := g.TimeKey(mode)
	require.NoError(t, err)
	return []model.WeightKey{model.WeightDistance, timeKey}
}

func TestAStarMatchesDijkstraEverywhere(t *testing.T) {
	for _, name := range algo.Networks() {
		base, _ := algo.BaseGraph(name)
		for _, s := range allScenarios(base) {
			work, err := base.ApplyScenario(s)
			require.NoError(t, err)

			for _, key := range weightKeys(t, work, s.Mode) {
				for _, src := range work.NodeIDs() {
					for _, dst := range work.NodeIDs() {
						a, aErr := work.AStar(src, dst, key)
						d, dErr := work.Dijkstra(src, dst, key)
						if dErr != nil {
							require.ErrorIs(t, dErr, algo.ErrNoPathFound)
							require.ErrorIs(t, aErr, algo.ErrNoPathFound)
							continue
						}
						require.NoError(t, aErr)
						require.Equal(t, d.Weight, a.Weight, "%s %s->%s by %s", name, src, dst, key)
						assert.LessOrEqual(t, a.Expanded, d.Expanded)

						// 独立累加得到的权重必须与算法报告的一致
						aw, err := work.PathWeight(a.Path, key)
						require.NoError(t, err)
						assert.Equal(t, a.Weight, aw)
						dw, err := work.PathWeight(d.Path, key)
						require.NoError(t, err)
						assert.Equal(t, d.Weight, dw)

						assert.Equal(t, src, a.Path[0])
						assert.Equal(t, dst, a.Path[len(a.Path)-1])
					}
				}
			}
		}
	}
}

func TestWarehouseToCST(t *testing.T) {
	base := mumbai(t)

	cases := []struct {
		name     string
		scenario algo.Scenario
		key      model.WeightKey
		weight   float64
		path     []string // 存在多条最优路线时为 nil
	}{
		{"car distance", algo.Scenario{Mode: model.Car}, model.WeightDistance, 54,
			[]string{warehouse, "Powai", "Ghatkopar", "Dadar", "Worli", "CST"}},
		{"car time", algo.Scenario{Mode: model.Car}, model.WeightTimeCar, 145,
			[]string{warehouse, "Powai", "Ghatkopar", "Dadar", "Worli", "CST"}},
		{"car time rush hour", algo.Scenario{Mode: model.Car, RushHour: true}, model.WeightTimeCar, 252,
			[]string{warehouse, "Powai", "Ghatkopar", "Dadar", "Worli", "CST"}},
		{"truck time", algo.Scenario{Mode: model.Truck}, model.WeightTimeTruck, 170, nil},
		{"truck time rush hour", algo.Scenario{Mode: model.Truck, RushHour: true}, model.WeightTimeTruck, 340, nil},
		{"motorbike time", algo.Scenario{Mode: model.Motorbike}, model.WeightTimeBike, 115, nil},
		{"motorbike time rush hour", algo.Scenario{Mode: model.Motorbike, RushHour: true}, model.WeightTimeBike, 142,
			[]string{warehouse, "Powai", "Ghatkopar", "Dadar", "Worli", "CST"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			work, err := base.ApplyScenario(tc.scenario)
			require.NoError(t, err)

			res, err := work.AStar(warehouse, "CST", tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.weight, res.Weight)
			assert.Equal(t, tc.key, res.Key)
			if tc.path != nil {
				assert.Equal(t, tc.path, res.Path)
			}
		})
	}
}

func TestTruckRouteAvoidsNarrowLanes(t *testing.T) {
	base := mumbai(t)
	work, err := base.ApplyScenario(algo.Scenario{Mode: model.Truck})
	require.NoError(t, err)

	for _, key := range weightKeys(t, work, model.Truck) {
		for _, src := range work.NodeIDs() {
			for _, dst := range work.NodeIDs() {
				res, err := work.AStar(src, dst, key)
				require.NoError(t, err)
				for i := 0; i < len(res.Path)-1; i++ {
					e, ok := base.Edge(res.Path[i], res.Path[i+1])
					require.True(t, ok)
					assert.NotEqual(t, model.RoadNarrowLane, e.RoadType)
				}
			}
		}
	}
}

func TestClosingCutEdgeYieldsNoPath(t *testing.T) {
	base := mumbai(t)
	// Worli - CST 是到达 CST 的唯一道路
	work, err := base.ApplyScenario(algo.Scenario{Mode: model.Car, ClosedEdge: &model.EdgeRef{From: "Worli", To: "CST"}})
	require.NoError(t, err)

	_, err = work.AStar(warehouse, "CST", model.WeightDistance)
	assert.ErrorIs(t, err, algo.ErrNoPathFound)
	_, err = work.Dijkstra(warehouse, "CST", model.WeightTimeCar)
	assert.ErrorIs(t, err, algo.ErrNoPathFound)

	explored, err := work.ExploredNodes("CST", model.WeightDistance)
	require.NoError(t, err)
	assert.Equal(t, []string{"CST"}, explored)
}

func TestSmallNetworkEndToEnd(t *testing.T) {
	g := algo.NewGraph("small")
	require.NoError(t, g.AddNode(model.Node{ID: "Warehouse", X: 0, Y: 5}))
	require.NoError(t, g.AddNode(model.Node{ID: "A", X: 2, Y: 8}))
	require.NoError(t, g.AddNode(model.Node{ID: "G", X: 9, Y: 3}))
	require.NoError(t, g.AddEdge(model.Edge{From: "Warehouse", To: "A", Dist: 4, Times: map[model.WeightKey]float64{model.WeightTime: 8}}))
	require.NoError(t, g.AddEdge(model.Edge{From: "A", To: "G", Dist: 7, Times: map[model.WeightKey]float64{model.WeightTime: 7}}))

	res, err := g.AStar("Warehouse", "G", model.WeightDistance)
	require.NoError(t, err)
	assert.Equal(t, []string{"Warehouse", "A", "G"}, res.Path)
	assert.Equal(t, 11.0, res.Weight)

	res, err = g.AStar("Warehouse", "G", model.WeightTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"Warehouse", "A", "G"}, res.Path)
	w, err := g.PathWeight(res.Path, model.WeightTime)
	require.NoError(t, err)
	assert.Equal(t, 15.0, w)
	assert.Equal(t, w, res.Weight)
}

func TestDemoNetworkTimeVersusDistance(t *testing.T) {
	demo, _ := algo.BaseGraph(algo.NetworkDemo)

	byDist, err := demo.AStar("Warehouse", "G", model.WeightDistance)
	require.NoError(t, err)
	byTime, err := demo.AStar("Warehouse", "G", model.WeightTime)
	require.NoError(t, err)

	ref, err := demo.Dijkstra("Warehouse", "G", model.WeightDistance)
	require.NoError(t, err)
	assert.Equal(t, ref.Weight, byDist.Weight)
	ref, err = demo.Dijkstra("Warehouse", "G", model.WeightTime)
	require.NoError(t, err)
	assert.Equal(t, ref.Weight, byTime.Weight)

	tw, err := demo.PathWeight(byTime.Path, model.WeightTime)
	require.NoError(t, err)
	dw, err := demo.PathWeight(byDist.Path, model.WeightTime)
	require.NoError(t, err)
	assert.LessOrEqual(t, tw, dw)
}

func TestSameStartAndEnd(t *testing.T) {
	base := mumbai(t)
	for _, search := range []func(string, string, model.WeightKey) (algo.SearchResult, error){base.AStar, base.Dijkstra} {
		res, err := search("Dadar", "Dadar", model.WeightDistance)
		require.NoError(t, err)
		assert.Equal(t, []string{"Dadar"}, res.Path)
		assert.Zero(t, res.Weight)
		assert.Equal(t, 1, res.Expanded)
	}
}

func TestSearchUnknownNode(t *testing.T) {
	base := mumbai(t)
	_, err := base.AStar("Atlantis", "CST", model.WeightDistance)
	assert.ErrorIs(t, err, algo.ErrUnknownNode)
	_, err = base.Dijkstra(warehouse, "Atlantis", model.WeightDistance)
	assert.ErrorIs(t, err, algo.ErrUnknownNode)
	_, err = base.ExploredNodes("Atlantis", model.WeightDistance)
	assert.ErrorIs(t, err, algo.ErrUnknownNode)
}

func TestMissingAttributeIsNotTraversable(t *testing.T) {
	demo, _ := algo.BaseGraph(algo.NetworkDemo)
	// 演示路网没有分车型时间
	_, err := demo.Dijkstra("Warehouse", "G", model.WeightTimeCar)
	assert.ErrorIs(t, err, algo.ErrNoPathFound)
}

func TestAStarExpandsFewerNodes(t *testing.T) {
	base := mumbai(t)
	a, err := base.AStar("BKC", "Andheri", model.WeightDistance)
	require.NoError(t, err)
	d, err := base.Dijkstra("BKC", "Andheri", model.WeightDistance)
	require.NoError(t, err)

	assert.Equal(t, []string{"BKC", "Bandra", "Andheri"}, a.Path)
	assert.Equal(t, 11.0, a.Weight)
	assert.Less(t, a.Expanded, d.Expanded)
	assert.Subset(t, d.Touched, a.Touched)
}

func TestHeuristicScale(t *testing.T) {
	base := mumbai(t)
	assert.Equal(t, 1.0, base.HeuristicScale(model.WeightDistance))
	assert.Equal(t, 3.0, base.HeuristicScale(model.WeightTimeCar))

	// 演示路网中 Warehouse - D 比直线距离还短，系数小于 1
	demo, _ := algo.BaseGraph(algo.NetworkDemo)
	assert.Less(t, demo.HeuristicScale(model.WeightDistance), 1.0)
	assert.Zero(t, demo.HeuristicScale(model.WeightTimeTruck))
}

func TestExploredNodes(t *testing.T) {
	base := mumbai(t)
	explored, err := base.ExploredNodes(warehouse, model.WeightDistance)
	require.NoError(t, err)
	assert.Len(t, explored, 10)
	assert.IsIncreasing(t, explored)
}

func TestPathWeight(t *testing.T) {
	base := mumbai(t)

	w, err := base.PathWeight([]string{"Worli", "CST"}, model.WeightTimeBike)
	require.NoError(t, err)
	assert.Equal(t, 20.0, w)

	w, err = base.PathWeight([]string{"CST"}, model.WeightDistance)
	require.NoError(t, err)
	assert.Zero(t, w)

	_, err = base.PathWeight(nil, model.WeightDistance)
	assert.ErrorIs(t, err, algo.ErrInvalidPath)
	_, err = base.PathWeight([]string{"CST", "Borivali"}, model.WeightDistance)
	assert.ErrorIs(t, err, algo.ErrInvalidPath)
	_, err = base.PathWeight([]string{"Nowhere"}, model.WeightDistance)
	assert.ErrorIs(t, err, algo.ErrInvalidPath)
	_, err = base.PathWeight([]string{"Worli", "CST"}, model.WeightTime)
	assert.ErrorIs(t, err, algo.ErrInvalidPath)
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "未找到路径", algo.FormatPath(algo.SearchResult{}))
	assert.Equal(t, "A → B (3 km)", algo.FormatPath(algo.SearchResult{Path: []string{"A", "B"}, Weight: 3, Key: model.WeightDistance}))
	assert.Equal(t, "A → B (7 mins)", algo.FormatPath(algo.SearchResult{Path: []string{"A", "B"}, Weight: 7, Key: model.WeightTimeCar}))
}
