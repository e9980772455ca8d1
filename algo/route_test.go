package algo_test

import (
	"testing"

	"logistics-advisor/algo"
	"logistics-advisor/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRouteCarFastest(t *testing.T) {
	res, err := algo.PlanRoute(mumbai(t), algo.Query{
		Start:     warehouse,
		End:       "CST",
		Mode:      model.Car,
		Criterion: model.CriterionTime,
	}, algo.NewCostModel())
	require.NoError(t, err)

	assert.Equal(t, []string{warehouse, "Powai", "Ghatkopar", "Dadar", "Worli", "CST"}, res.Path)
	assert.Equal(t, model.WeightTimeCar, res.Key)
	assert.Equal(t, 145.0, res.Weight)
	assert.Equal(t, res.Weight, res.Dijkstra.Weight)
	assert.Equal(t, 54.0, res.Cost.DistanceKm)
	assert.Equal(t, 145.0, res.Cost.TimeMinutes)
	assert.InDelta(t, 54*12+145.0/60*200, res.Cost.Amount, 1e-9)
	assert.Len(t, res.Explored, 10)
	assert.False(t, res.Degenerate)

	require.Len(t, res.Legs, 5)
	assert.Equal(t, algo.Leg{From: warehouse, To: "Powai", Distance: 25, Minutes: 60, Weight: 60, RoadType: model.RoadHighway}, res.Legs[0])
	total := 0.0
	for _, leg := range res.Legs {
		total += leg.Weight
	}
	assert.Equal(t, res.Weight, total)
}

func TestPlanRouteTruckCheapest(t *testing.T) {
	res, err := algo.PlanRoute(mumbai(t), algo.Query{
		Start:     warehouse,
		End:       "CST",
		Mode:      model.Truck,
		Criterion: model.CriterionDistance,
	}, algo.NewCostModel())
	require.NoError(t, err)

	assert.Equal(t, model.WeightDistance, res.Key)
	assert.Equal(t, 54.0, res.Weight)
	assert.Equal(t, 170.0, res.Cost.TimeMinutes)
	assert.InDelta(t, 54*25+170.0/60*300, res.Cost.Amount, 1e-9)
	assert.Equal(t, 13, res.Work.EdgeCount())
}

func TestPlanRouteRushHourCostsMore(t *testing.T) {
	q := algo.Query{Start: warehouse, End: "CST", Mode: model.Car, Criterion: model.CriterionTime}
	calm, err := algo.PlanRoute(mumbai(t), q, algo.NewCostModel())
	require.NoError(t, err)

	q.RushHour = true
	rush, err := algo.PlanRoute(mumbai(t), q, algo.NewCostModel())
	require.NoError(t, err)

	assert.Equal(t, 252.0, rush.Weight)
	assert.Greater(t, rush.Cost.Amount, calm.Cost.Amount)
}

func TestPlanRouteNoPath(t *testing.T) {
	res, err := algo.PlanRoute(mumbai(t), algo.Query{
		Start:      warehouse,
		End:        "CST",
		Mode:       model.Motorbike,
		Criterion:  model.CriterionTime,
		ClosedEdge: &model.EdgeRef{From: "Worli", To: "CST"},
	}, algo.NewCostModel())
	require.ErrorIs(t, err, algo.ErrNoPathFound)

	// 不可达时仍返回工作图
	require.NotNil(t, res)
	require.NotNil(t, res.Work)
	assert.Equal(t, 14, res.Work.EdgeCount())
	assert.False(t, res.Work.HasEdge("Worli", "CST"))
	assert.Equal(t, model.WeightTimeBike, res.Key)
	assert.Empty(t, res.Path)
}

func TestPlanRouteNoPathAfterTruckFilter(t *testing.T) {
	// 卡车先去掉 2 条小巷，再封闭 Worli - CST
	res, err := algo.PlanRoute(mumbai(t), algo.Query{
		Start:      "BKC",
		End:        "CST",
		Mode:       model.Truck,
		Criterion:  model.CriterionDistance,
		RushHour:   true,
		ClosedEdge: &model.EdgeRef{From: "CST", To: "Worli"},
	}, algo.NewCostModel())
	require.ErrorIs(t, err, algo.ErrNoPathFound)
	require.NotNil(t, res)
	assert.Equal(t, 12, res.Work.EdgeCount())
}

func TestPlanRouteSameStartAndEnd(t *testing.T) {
	res, err := algo.PlanRoute(mumbai(t), algo.Query{
		Start:     "Bandra",
		End:       "Bandra",
		Mode:      model.Car,
		Criterion: model.CriterionDistance,
	}, algo.NewCostModel())
	require.NoError(t, err)

	assert.True(t, res.Degenerate)
	assert.Equal(t, []string{"Bandra"}, res.Path)
	assert.Zero(t, res.Weight)
	assert.Zero(t, res.Cost.Amount)
	assert.Empty(t, res.Legs)
}

func TestPlanRouteInvalidQuery(t *testing.T) {
	base := mumbai(t)
	costs := algo.NewCostModel()

	_, err := algo.PlanRoute(base, algo.Query{Start: "Atlantis", End: "CST", Mode: model.Car, Criterion: model.CriterionTime}, costs)
	assert.ErrorIs(t, err, algo.ErrInvalidScenario)
	assert.ErrorIs(t, err, algo.ErrUnknownNode)

	_, err = algo.PlanRoute(base, algo.Query{Start: warehouse, End: "CST", Mode: model.Car, Criterion: "cheapest"}, costs)
	assert.ErrorIs(t, err, algo.ErrInvalidScenario)

	_, err = algo.PlanRoute(base, algo.Query{
		Start: warehouse, End: "CST", Mode: model.Car, Criterion: model.CriterionTime,
		ClosedEdge: &model.EdgeRef{From: "CST", To: "Borivali"},
	}, costs)
	assert.ErrorIs(t, err, algo.ErrInvalidScenario)

	_, err = algo.PlanRoute(base, algo.Query{Start: warehouse, End: "CST", Mode: "Tram", Criterion: model.CriterionTime}, costs)
	assert.ErrorIs(t, err, algo.ErrUnknownVehicleMode)
}

func TestPlanRouteDemoNetwork(t *testing.T) {
	demo, _ := algo.BaseGraph(algo.NetworkDemo)
	res, err := algo.PlanRoute(demo, algo.Query{Start: "Warehouse", End: "G", Mode: model.Car, Criterion: model.CriterionTime}, algo.NewCostModel())
	require.NoError(t, err)

	assert.Equal(t, model.WeightTime, res.Key)
	assert.Equal(t, 21.0, res.Weight)
	assert.Equal(t, 18.0, res.Cost.DistanceKm)
	assert.LessOrEqual(t, res.AStar.Expanded, res.Dijkstra.Expanded)
}
