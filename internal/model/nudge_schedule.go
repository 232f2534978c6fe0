package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// 催促计划的重复频率
const (
	FreqDaily    = "DAILY"
	FreqWeekly   = "WEEKLY"
	FreqBiweekly = "BIWEEKLY"
	FreqMonthly  = "MONTHLY"
	FreqYearly   = "YEARLY"
)

// NudgeSchedule 每组至多一条；停用置 is_active=false 而非删除，
// 以便保留历史并支持重新激活
type NudgeSchedule struct {
	ID         uint64      `gorm:"primaryKey" json:"id"`
	GroupID    uint64      `gorm:"not null;uniqueIndex:uk_group_id" json:"group_id"`
	Frequency  string      `gorm:"type:varchar(16);not null" json:"frequency"`
	DaysOfWeek WeekdayList `gorm:"type:json" json:"days_of_week"`
	Day        *int        `json:"day"`
	Month      *int        `json:"month"`
	NudgeAt    string      `gorm:"type:varchar(5);not null" json:"nudge_at"` // HH:MM
	IsActive   bool        `gorm:"type:tinyint(1);not null;default:1" json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (NudgeSchedule) TableName() string {
	return "nudge_schedules"
}

// WeekdayList 周几集合: 0=周日 ... 6=周六
type WeekdayList []int

func (w WeekdayList) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

func (w *WeekdayList) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
	return json.Unmarshal(bytes, w)
}
