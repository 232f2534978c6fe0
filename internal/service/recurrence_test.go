package service

import (
	"testing"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestValidateRecurrenceDaily(t *testing.T) {
	err := ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqDaily, NudgeAt: "09:30"})
	assert.NoError(t, err)

	err = ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqDaily, Day: intPtr(5), NudgeAt: "09:30"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)
}

func TestValidateRecurrenceWeekly(t *testing.T) {
	err := ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqWeekly, DaysOfWeek: []int{0, 3, 6}, NudgeAt: "18:00"})
	assert.NoError(t, err)

	// 缺少 days_of_week
	err = ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqWeekly, NudgeAt: "18:00"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)

	// 取值越界
	err = ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqBiweekly, DaysOfWeek: []int{7}, NudgeAt: "18:00"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)
}

func TestValidateRecurrenceMonthly(t *testing.T) {
	err := ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqMonthly, Day: intPtr(31), NudgeAt: "08:00"})
	assert.NoError(t, err)

	err = ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqMonthly, Day: intPtr(32), NudgeAt: "08:00"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)

	err = ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqMonthly, NudgeAt: "08:00"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)
}

func TestValidateRecurrenceYearly(t *testing.T) {
	// 二月固定按 29 天校验
	err := ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqYearly, Month: intPtr(2), Day: intPtr(29), NudgeAt: "12:00"})
	assert.NoError(t, err)

	err = ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqYearly, Month: intPtr(2), Day: intPtr(30), NudgeAt: "12:00"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)

	err = ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqYearly, Month: intPtr(4), Day: intPtr(31), NudgeAt: "12:00"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)

	err = ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqYearly, Month: intPtr(13), Day: intPtr(1), NudgeAt: "12:00"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)
}

func TestValidateRecurrenceCollectsAllIssues(t *testing.T) {
	// 多个问题一次性汇总到同一个错误里
	err := ValidateRecurrence(&RecurrenceSpec{
		Frequency:  model.FreqDaily,
		DaysOfWeek: []int{1},
		Day:        intPtr(3),
		NudgeAt:    "25:00",
	})
	require.ErrorIs(t, err, ErrScheduleSpecInvalid)
	assert.Contains(t, err.Error(), "days_of_week")
	assert.Contains(t, err.Error(), "day")
	assert.Contains(t, err.Error(), "nudge_at")
}

func TestValidateRecurrenceNudgeAt(t *testing.T) {
	for _, bad := range []string{"", "9:3:0", "24:00", "12:60", "ab:cd"} {
		err := ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqDaily, NudgeAt: bad})
		assert.ErrorIs(t, err, ErrScheduleSpecInvalid, "nudge_at=%q", bad)
	}

	err := ValidateRecurrence(&RecurrenceSpec{Frequency: model.FreqDaily, NudgeAt: "00:00"})
	assert.NoError(t, err)
}

func TestBuildCronExpression(t *testing.T) {
	tests := []struct {
		name string
		spec *RecurrenceSpec
		want string
	}{
		{
			name: "daily",
			spec: &RecurrenceSpec{Frequency: model.FreqDaily, NudgeAt: "09:30"},
			want: "30 9 * * *",
		},
		{
			name: "weekly",
			spec: &RecurrenceSpec{Frequency: model.FreqWeekly, DaysOfWeek: []int{1, 5}, NudgeAt: "18:00"},
			want: "0 18 * * 1,5",
		},
		{
			name: "biweekly emits weekly cron",
			spec: &RecurrenceSpec{Frequency: model.FreqBiweekly, DaysOfWeek: []int{2}, NudgeAt: "07:15"},
			want: "15 7 * * 2",
		},
		{
			name: "monthly",
			spec: &RecurrenceSpec{Frequency: model.FreqMonthly, Day: intPtr(15), NudgeAt: "20:45"},
			want: "45 20 15 * *",
		},
		{
			name: "yearly",
			spec: &RecurrenceSpec{Frequency: model.FreqYearly, Month: intPtr(12), Day: intPtr(25), NudgeAt: "10:00"},
			want: "0 10 25 12 *",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildCronExpression(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
