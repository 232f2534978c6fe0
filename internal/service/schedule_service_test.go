package service

import (
	"context"
	"testing"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleFixture struct {
	groupRepo *fakeGroupRepo
	schedRepo *fakeScheduleRepo
	client    *fakeSchedulerClient
	svc       ScheduleService
}

func newScheduleFixture() *scheduleFixture {
	f := &scheduleFixture{
		groupRepo: &fakeGroupRepo{groups: map[uint64]*model.Group{
			7: {ID: 7, Name: "家庭相册", ManagerID: 10},
		}},
		schedRepo: &fakeScheduleRepo{schedules: map[uint64]*model.NudgeSchedule{}},
		client:    &fakeSchedulerClient{},
	}
	f.svc = NewScheduleService(
		config.SchedulerConfig{
			Timezone:  "America/New_York",
			TargetURL: "http://localhost:8080/api/internal/nudges/trigger",
		},
		f.groupRepo, f.schedRepo, f.client,
	)
	return f
}

func weeklySpec() *RecurrenceSpec {
	return &RecurrenceSpec{
		Frequency:  model.FreqWeekly,
		DaysOfWeek: []int{1, 4},
		NudgeAt:    "09:00",
	}
}

func TestUpsertScheduleCreate(t *testing.T) {
	f := newScheduleFixture()
	ctx := context.Background()

	schedule, err := f.svc.UpsertSchedule(ctx, 10, 7, weeklySpec())
	require.NoError(t, err)
	assert.True(t, schedule.IsActive)
	assert.Len(t, f.schedRepo.created, 1)
	assert.Empty(t, f.schedRepo.updated)

	require.Len(t, f.client.calls, 1)
	call := f.client.calls[0]
	assert.Equal(t, "create", call.op)
	assert.Equal(t, "dearly-nudge-group-7", call.name)
	assert.Equal(t, "0 9 * * 1,4", call.req.CronExpression)
	assert.Equal(t, "America/New_York", call.req.Timezone)
	assert.Equal(t, uint64(7), call.req.TargetInput["group_id"])
	assert.Equal(t, model.FreqWeekly, call.req.TargetInput["frequency"])
}

func TestUpsertScheduleUpdate(t *testing.T) {
	f := newScheduleFixture()
	f.schedRepo.schedules[7] = &model.NudgeSchedule{ID: 3, GroupID: 7, Frequency: model.FreqDaily, NudgeAt: "08:00", IsActive: true}
	ctx := context.Background()

	schedule, err := f.svc.UpsertSchedule(ctx, 10, 7, weeklySpec())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), schedule.ID)
	assert.Empty(t, f.schedRepo.created)
	assert.Len(t, f.schedRepo.updated, 1)

	require.Len(t, f.client.calls, 1)
	assert.Equal(t, "update", f.client.calls[0].op)
	assert.Equal(t, "dearly-nudge-group-7", f.client.calls[0].name)
}

func TestUpsertScheduleValidation(t *testing.T) {
	f := newScheduleFixture()
	ctx := context.Background()

	_, err := f.svc.UpsertSchedule(ctx, 10, 7, &RecurrenceSpec{Frequency: model.FreqWeekly, NudgeAt: "09:00"})
	assert.ErrorIs(t, err, ErrScheduleSpecInvalid)

	// 规则不合法时不触达任何存储或外部服务
	assert.Empty(t, f.schedRepo.created)
	assert.Empty(t, f.client.calls)
}

func TestUpsertSchedulePermissions(t *testing.T) {
	f := newScheduleFixture()
	ctx := context.Background()

	_, err := f.svc.UpsertSchedule(ctx, 10, 99, weeklySpec())
	assert.ErrorIs(t, err, ErrGroupNotFound)

	_, err = f.svc.UpsertSchedule(ctx, 11, 7, weeklySpec())
	assert.ErrorIs(t, err, ErrNotGroupManager)

	// 权限先于规则校验：非管理员带非法规则也只得到权限错误
	_, err = f.svc.UpsertSchedule(ctx, 11, 7, &RecurrenceSpec{Frequency: model.FreqWeekly, NudgeAt: "09:00"})
	assert.ErrorIs(t, err, ErrNotGroupManager)
}

func TestUpsertScheduleSchedulerFailure(t *testing.T) {
	f := newScheduleFixture()
	f.client.err = assert.AnError
	ctx := context.Background()

	_, err := f.svc.UpsertSchedule(ctx, 10, 7, weeklySpec())
	assert.ErrorIs(t, err, ErrSchedulerUnavailable)

	// 本地行已写入，下一次配置会以同名资源重新同步
	assert.Len(t, f.schedRepo.created, 1)
}

func TestGetSchedule(t *testing.T) {
	f := newScheduleFixture()
	ctx := context.Background()

	_, err := f.svc.GetSchedule(ctx, 10, 7)
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	f.schedRepo.schedules[7] = &model.NudgeSchedule{GroupID: 7, Frequency: model.FreqDaily, NudgeAt: "08:00", IsActive: true}
	schedule, err := f.svc.GetSchedule(ctx, 10, 7)
	require.NoError(t, err)
	assert.Equal(t, model.FreqDaily, schedule.Frequency)
}

func TestDeactivateSchedule(t *testing.T) {
	f := newScheduleFixture()
	ctx := context.Background()

	// 从未配置：区分于停用成功，且不触达外部调度服务
	deactivated, err := f.svc.DeactivateSchedule(ctx, 10, 7)
	require.NoError(t, err)
	assert.False(t, deactivated)
	assert.Empty(t, f.client.calls)

	f.schedRepo.schedules[7] = &model.NudgeSchedule{ID: 3, GroupID: 7, Frequency: model.FreqDaily, NudgeAt: "08:00", IsActive: true}
	deactivated, err = f.svc.DeactivateSchedule(ctx, 10, 7)
	require.NoError(t, err)
	assert.True(t, deactivated)
	require.Len(t, f.schedRepo.updated, 1)
	assert.False(t, f.schedRepo.updated[0].IsActive)
	require.Len(t, f.client.calls, 1)
	assert.Equal(t, "disable", f.client.calls[0].op)
	assert.Equal(t, "dearly-nudge-group-7", f.client.calls[0].name)
}

func TestDeactivateScheduleIdempotent(t *testing.T) {
	f := newScheduleFixture()
	f.schedRepo.schedules[7] = &model.NudgeSchedule{ID: 3, GroupID: 7, Frequency: model.FreqDaily, NudgeAt: "08:00", IsActive: false}
	ctx := context.Background()

	deactivated, err := f.svc.DeactivateSchedule(ctx, 10, 7)
	require.NoError(t, err)
	assert.True(t, deactivated)
	assert.Empty(t, f.schedRepo.updated)
	assert.Empty(t, f.client.calls)
}
