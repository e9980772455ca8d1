package utils

import (
	"math"

	"logistics-advisor/model"
)

// EuclideanDistance 平面坐标系下两点间的直线距离
// 用于 A* 算法的启发式函数和最近节点查找
func EuclideanDistance(p1, p2 model.PointXY) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}
