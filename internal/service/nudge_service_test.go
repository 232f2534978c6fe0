package service

import (
	"context"
	"testing"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nudgeFixture struct {
	userRepo   *fakeUserRepo
	groupRepo  *fakeGroupRepo
	memberRepo *fakeMemberRepo
	schedRepo  *fakeScheduleRepo
	tokenRepo  *fakeDeviceTokenRepo
	notifySvc  *fakeNotificationService
	pusher     *fakePusher
	svc        NudgeService
}

// 群组 1：管理员 10，成员 11/12/13。
// 13 关闭了催促开关，12 没有设备令牌。
func newNudgeFixture() *nudgeFixture {
	f := &nudgeFixture{
		userRepo: &fakeUserRepo{users: map[uint64]*model.User{
			10: {ID: 10, Nickname: "manager"},
			11: {ID: 11, Nickname: "alice"},
			12: {ID: 12, Nickname: "bob"},
			13: {ID: 13, Nickname: "carol"},
		}},
		groupRepo: &fakeGroupRepo{groups: map[uint64]*model.Group{
			1: {ID: 1, Name: "家庭相册", ManagerID: 10},
		}},
		memberRepo: &fakeMemberRepo{members: map[uint64][]*model.GroupMember{
			1: {
				{GroupID: 1, UserID: 10, NudgeNotify: true},
				{GroupID: 1, UserID: 11, NudgeNotify: true},
				{GroupID: 1, UserID: 12, NudgeNotify: true},
				{GroupID: 1, UserID: 13, NudgeNotify: false},
			},
		}},
		schedRepo: &fakeScheduleRepo{schedules: map[uint64]*model.NudgeSchedule{}},
		tokenRepo: &fakeDeviceTokenRepo{tokens: map[uint64][]string{
			10: {"tok-manager"},
			11: {"tok-alice-1", "tok-alice-2"},
			13: {"tok-carol"},
		}},
		notifySvc: &fakeNotificationService{},
		pusher:    &fakePusher{},
	}
	f.svc = NewNudgeService(
		config.NudgeConfig{CooldownHours: 24},
		f.userRepo, f.groupRepo, f.memberRepo, f.schedRepo, f.tokenRepo,
		f.notifySvc, f.pusher,
	)
	return f
}

func TestManualNudgeGroupChecks(t *testing.T) {
	f := newNudgeFixture()
	ctx := context.Background()

	err := f.svc.ManualNudge(ctx, 10, 99, []uint64{11})
	assert.ErrorIs(t, err, ErrGroupNotFound)

	err = f.svc.ManualNudge(ctx, 11, 1, []uint64{12})
	assert.ErrorIs(t, err, ErrNotGroupManager)

	err = f.svc.ManualNudge(ctx, 10, 1, nil)
	assert.ErrorIs(t, err, ErrEmptyNudgeTargets)
}

func TestManualNudgeTargetValidation(t *testing.T) {
	f := newNudgeFixture()
	ctx := context.Background()

	err := f.svc.ManualNudge(ctx, 10, 1, []uint64{11, 77})
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), "77")

	// 14 是存在的用户但不是成员
	f.userRepo.users[14] = &model.User{ID: 14, Nickname: "dave"}
	err = f.svc.ManualNudge(ctx, 10, 1, []uint64{11, 14})
	require.ErrorIs(t, err, ErrNotGroupMember)
	assert.Contains(t, err.Error(), "14")

	// 校验失败时不应有任何落库或推送
	assert.Empty(t, f.notifySvc.stored)
	assert.Empty(t, f.pusher.calls)
}

func TestManualNudgeDispatch(t *testing.T) {
	f := newNudgeFixture()
	ctx := context.Background()

	// 11 可达；12 无令牌、13 关开关，静默过滤
	err := f.svc.ManualNudge(ctx, 10, 1, []uint64{11, 12, 13})
	require.NoError(t, err)

	require.Len(t, f.notifySvc.stored, 1)
	row := f.notifySvc.stored[0]
	assert.Equal(t, uint64(11), row.ReceiverID)
	assert.Equal(t, model.RefTypeNudge, row.ReferenceType)
	assert.Equal(t, uint64(10), row.ActorID)
	assert.Equal(t, "家庭相册", row.Title)

	require.Len(t, f.pusher.calls, 1)
	call := f.pusher.calls[0]
	assert.ElementsMatch(t, []string{"tok-alice-1", "tok-alice-2"}, call.tokens)
	assert.Equal(t, "家庭相册", call.title)
	assert.Equal(t, model.RefTypeNudge, call.data["type"])

	// 冷却时间戳只盖给真正被催促的成员
	assert.Equal(t, []uint64{11}, f.memberRepo.claimedIDs)
}

func TestManualNudgeAllFiltered(t *testing.T) {
	f := newNudgeFixture()
	ctx := context.Background()

	// 仅剩无令牌与关开关的目标，请求成功但无任何动作
	err := f.svc.ManualNudge(ctx, 10, 1, []uint64{12, 13})
	require.NoError(t, err)
	assert.Empty(t, f.notifySvc.stored)
	assert.Empty(t, f.pusher.calls)
	assert.Empty(t, f.memberRepo.claimedIDs)
}

func TestManualNudgeCooldown(t *testing.T) {
	f := newNudgeFixture()
	f.memberRepo.claimBlocked = []uint64{11}
	ctx := context.Background()

	err := f.svc.ManualNudge(ctx, 10, 1, []uint64{11})
	require.ErrorIs(t, err, ErrNudgeCooldown)
	assert.Contains(t, err.Error(), "11")

	// 整体拒绝：不落库不推送
	assert.Empty(t, f.notifySvc.stored)
	assert.Empty(t, f.pusher.calls)
}

func TestManualNudgeExcludesManagerTarget(t *testing.T) {
	f := newNudgeFixture()
	ctx := context.Background()

	// 管理员自己出现在目标里时被静默剔除
	err := f.svc.ManualNudge(ctx, 10, 1, []uint64{10, 11})
	require.NoError(t, err)

	require.Len(t, f.notifySvc.stored, 1)
	assert.Equal(t, uint64(11), f.notifySvc.stored[0].ReceiverID)
}

func TestScheduledNudgeDispatch(t *testing.T) {
	f := newNudgeFixture()
	f.schedRepo.schedules[1] = &model.NudgeSchedule{
		GroupID:   1,
		Frequency: model.FreqDaily,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	ctx := context.Background()

	err := f.svc.ScheduledNudge(ctx, 1, model.FreqDaily)
	require.NoError(t, err)

	require.Len(t, f.notifySvc.stored, 1)
	assert.Equal(t, uint64(11), f.notifySvc.stored[0].ReceiverID)
	require.Len(t, f.pusher.calls, 1)

	// 定时路径不盖手动冷却时间戳
	assert.Empty(t, f.memberRepo.claimedIDs)
}

func TestScheduledNudgeSoftSkips(t *testing.T) {
	f := newNudgeFixture()
	ctx := context.Background()

	// 群组不存在：吞掉而不是报错，调度服务不应重试
	require.NoError(t, f.svc.ScheduledNudge(ctx, 99, model.FreqDaily))

	// 没有激活的计划
	require.NoError(t, f.svc.ScheduledNudge(ctx, 1, model.FreqDaily))
	f.schedRepo.schedules[1] = &model.NudgeSchedule{GroupID: 1, IsActive: false, CreatedAt: time.Now()}
	require.NoError(t, f.svc.ScheduledNudge(ctx, 1, model.FreqDaily))

	assert.Empty(t, f.notifySvc.stored)
	assert.Empty(t, f.pusher.calls)
}

func TestScheduledNudgeBiweeklyParity(t *testing.T) {
	f := newNudgeFixture()
	ctx := context.Background()

	// 创建于上周的 BIWEEKLY 计划，本周奇偶性不同，跳过
	f.schedRepo.schedules[1] = &model.NudgeSchedule{
		GroupID:   1,
		Frequency: model.FreqBiweekly,
		IsActive:  true,
		CreatedAt: time.Now().AddDate(0, 0, -7),
	}
	require.NoError(t, f.svc.ScheduledNudge(ctx, 1, model.FreqBiweekly))
	assert.Empty(t, f.pusher.calls)

	// 同一周创建的计划奇偶性一致，正常下发
	f.schedRepo.schedules[1].CreatedAt = time.Now()
	require.NoError(t, f.svc.ScheduledNudge(ctx, 1, model.FreqBiweekly))
	assert.Len(t, f.pusher.calls, 1)
}

func TestScheduledNudgeDuplicateSkipsPush(t *testing.T) {
	f := newNudgeFixture()
	f.schedRepo.schedules[1] = &model.NudgeSchedule{
		GroupID:   1,
		Frequency: model.FreqDaily,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	ctx := context.Background()

	// 同一分钟内的重试命中同一 reference_id，第二次落库为零行
	require.NoError(t, f.svc.ScheduledNudge(ctx, 1, model.FreqDaily))
	require.NoError(t, f.svc.ScheduledNudge(ctx, 1, model.FreqDaily))

	assert.Len(t, f.notifySvc.stored, 1)
	assert.Len(t, f.pusher.calls, 1)
}

func TestSameWeekParity(t *testing.T) {
	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) // ISO week 23
	assert.True(t, sameWeekParity(base, base))
	assert.False(t, sameWeekParity(base, base.AddDate(0, 0, 7)))
	assert.True(t, sameWeekParity(base, base.AddDate(0, 0, 14)))
}
