package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GenerateNU/dearly-sub000/internal/model"
)

// RecurrenceSpec 重复规则：频率 + 与频率匹配的最小字段集。
// 字段的出现与否随频率强约束，校验一次性收集全部问题后整体拒绝。
type RecurrenceSpec struct {
	Frequency  string
	DaysOfWeek []int
	Day        *int
	Month      *int
	NudgeAt    string // HH:MM
}

// 二月固定按 29 天校验：YEARLY 计划跨越多个年份，
// 按创建年份判闰会把四年里有三年合法的 2/29 拒之门外
var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ValidateRecurrence 校验重复规则，所有问题汇总为单个错误返回
func ValidateRecurrence(spec *RecurrenceSpec) error {
	var issues []string

	switch spec.Frequency {
	case model.FreqDaily:
		if len(spec.DaysOfWeek) > 0 {
			issues = append(issues, "DAILY 不允许 days_of_week")
		}
		if spec.Day != nil {
			issues = append(issues, "DAILY 不允许 day")
		}
		if spec.Month != nil {
			issues = append(issues, "DAILY 不允许 month")
		}
	case model.FreqWeekly, model.FreqBiweekly:
		if len(spec.DaysOfWeek) == 0 {
			issues = append(issues, spec.Frequency+" 需要非空 days_of_week")
		}
		for _, d := range spec.DaysOfWeek {
			if d < 0 || d > 6 {
				issues = append(issues, fmt.Sprintf("days_of_week 取值 %d 超出 0-6", d))
			}
		}
		if spec.Day != nil {
			issues = append(issues, spec.Frequency+" 不允许 day")
		}
		if spec.Month != nil {
			issues = append(issues, spec.Frequency+" 不允许 month")
		}
	case model.FreqMonthly:
		if spec.Day == nil {
			issues = append(issues, "MONTHLY 需要 day")
		} else if *spec.Day < 1 || *spec.Day > 31 {
			issues = append(issues, fmt.Sprintf("day 取值 %d 超出 1-31", *spec.Day))
		}
		if len(spec.DaysOfWeek) > 0 {
			issues = append(issues, "MONTHLY 不允许 days_of_week")
		}
		if spec.Month != nil {
			issues = append(issues, "MONTHLY 不允许 month")
		}
	case model.FreqYearly:
		if spec.Month == nil {
			issues = append(issues, "YEARLY 需要 month")
		} else if *spec.Month < 1 || *spec.Month > 12 {
			issues = append(issues, fmt.Sprintf("month 取值 %d 超出 1-12", *spec.Month))
		}
		if spec.Day == nil {
			issues = append(issues, "YEARLY 需要 day")
		} else if spec.Month != nil && *spec.Month >= 1 && *spec.Month <= 12 {
			if *spec.Day < 1 || *spec.Day > daysInMonth[*spec.Month] {
				issues = append(issues, fmt.Sprintf("day 取值 %d 超出 %d 月的天数", *spec.Day, *spec.Month))
			}
		} else if *spec.Day < 1 || *spec.Day > 31 {
			issues = append(issues, fmt.Sprintf("day 取值 %d 超出 1-31", *spec.Day))
		}
		if len(spec.DaysOfWeek) > 0 {
			issues = append(issues, "YEARLY 不允许 days_of_week")
		}
	default:
		issues = append(issues, "未知的 frequency: "+spec.Frequency)
	}

	if _, _, err := parseNudgeAt(spec.NudgeAt); err != nil {
		issues = append(issues, err.Error())
	}

	if len(issues) > 0 {
		return ErrWithDetail(ErrScheduleSpecInvalid, "%s", strings.Join(issues, "; "))
	}
	return nil
}

// BuildCronExpression 将重复规则转换为 5 段 cron 表达式。
// BIWEEKLY 按 WEEKLY 下发，隔周跳过由触发端按 ISO 周奇偶性判定，
// 因为外部调度服务只接受纯 cron 表达式。
func BuildCronExpression(spec *RecurrenceSpec) (string, error) {
	hour, minute, err := parseNudgeAt(spec.NudgeAt)
	if err != nil {
		return "", err
	}

	switch spec.Frequency {
	case model.FreqDaily:
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	case model.FreqWeekly, model.FreqBiweekly:
		days := make([]string, 0, len(spec.DaysOfWeek))
		for _, d := range spec.DaysOfWeek {
			days = append(days, strconv.Itoa(d))
		}
		return fmt.Sprintf("%d %d * * %s", minute, hour, strings.Join(days, ",")), nil
	case model.FreqMonthly:
		return fmt.Sprintf("%d %d %d * *", minute, hour, *spec.Day), nil
	case model.FreqYearly:
		return fmt.Sprintf("%d %d %d %d *", minute, hour, *spec.Day, *spec.Month), nil
	default:
		return "", ErrWithDetail(ErrScheduleSpecInvalid, "未知的 frequency: %s", spec.Frequency)
	}
}

func parseNudgeAt(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("nudge_at 格式应为 HH:MM: %q", value)
	}
	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("nudge_at 格式应为 HH:MM: %q", value)
	}
	return hour, minute, nil
}
