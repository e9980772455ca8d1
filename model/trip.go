package model

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Trip 用户的一次路线规划记录
// 只记录查询结果，地图本身不入库
type Trip struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Network     string         `json:"network"`
	StartID     string         `json:"start_id"`
	EndID       string         `json:"end_id"`
	Mode        string         `json:"mode"`
	Criterion   string         `json:"criterion"`
	RushHour    bool           `json:"rush_hour"`
	ClosedEdge  string         `json:"closed_edge,omitempty"`
	Found       bool           `json:"found"`
	Path        pq.StringArray `json:"path" gorm:"type:text[]"`
	TotalWeight float64        `json:"total_weight"`
	Cost        float64        `json:"cost"`
}
