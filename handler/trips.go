package handler

import (
	"net/http"
	"strconv"

	"logistics-advisor/algo"
	"logistics-advisor/logging"
	"logistics-advisor/model"

	"github.com/gin-gonic/gin"
)

// 行程列表默认和最大条数
const (
	defaultTripLimit = 20
	maxTripLimit     = 100
)

// newTrip 根据查询构造行程记录 (结果字段由调用方填写)
func newTrip(network string, q algo.Query) *model.Trip {
	t := &model.Trip{
		Network:   network,
		StartID:   q.Start,
		EndID:     q.End,
		Mode:      string(q.Mode),
		Criterion: string(q.Criterion),
		RushHour:  q.RushHour,
	}
	if q.ClosedEdge != nil {
		t.ClosedEdge = q.ClosedEdge.String()
	}
	return t
}

// recordTrip 登录用户的查询写入行程历史，写入失败只记录日志
func (h *Handler) recordTrip(c *gin.Context, trip *model.Trip) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trip.UserID = userID
	if err := h.trips.SaveTrip(c.Request.Context(), trip); err != nil {
		logging.FromGin(c).Warn(c.Request.Context(), "save trip failed", logging.Err(err))
	}
}

// ListTrips 获取当前用户的行程历史 (最新的在前)
func (h *Handler) ListTrips(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	limit := defaultTripLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit 必须是正整数"})
			return
		}
		limit = min(n, maxTripLimit)
	}

	trips, err := h.trips.ListTrips(c.Request.Context(), userID, limit)
	if err != nil {
		logging.FromGin(c).Error(c.Request.Context(), "list trips failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取行程失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(trips),
		"trips": trips,
	})
}
