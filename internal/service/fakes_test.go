package service

import (
	"context"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/push"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/scheduler"
)

type fakeUserRepo struct {
	users map[uint64]*model.User
}

func (f *fakeUserRepo) GetUsersByIds(_ context.Context, ids []uint64) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	return f.users[id], nil
}

type fakeGroupRepo struct {
	groups map[uint64]*model.Group
}

func (f *fakeGroupRepo) GetGroupById(_ context.Context, id uint64) (*model.Group, error) {
	return f.groups[id], nil
}

type fakePostRepo struct {
	posts map[uint64]*model.Post
}

func (f *fakePostRepo) GetPostById(_ context.Context, id uint64) (*model.Post, error) {
	return f.posts[id], nil
}

type fakeMemberRepo struct {
	members map[uint64][]*model.GroupMember

	claimBlocked []uint64
	claimedIDs   []uint64
	updated      []*model.GroupMember
}

func (f *fakeMemberRepo) GetMembers(_ context.Context, groupID uint64) ([]*model.GroupMember, error) {
	return f.members[groupID], nil
}

func (f *fakeMemberRepo) GetMember(_ context.Context, groupID, userID uint64) (*model.GroupMember, error) {
	for _, m := range f.members[groupID] {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberRepo) GetMembersByUserIds(_ context.Context, groupID uint64, userIDs []uint64) ([]*model.GroupMember, error) {
	var out []*model.GroupMember
	for _, m := range f.members[groupID] {
		for _, id := range userIDs {
			if m.UserID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) UpdatePreferences(_ context.Context, member *model.GroupMember) error {
	f.updated = append(f.updated, member)
	return nil
}

func (f *fakeMemberRepo) ClaimNudge(_ context.Context, _ uint64, userIDs []uint64, _ time.Duration, _ time.Time) ([]uint64, error) {
	if len(f.claimBlocked) > 0 {
		return f.claimBlocked, nil
	}
	f.claimedIDs = append(f.claimedIDs, userIDs...)
	return nil, nil
}

type fakeDeviceTokenRepo struct {
	tokens map[uint64][]string

	created []*model.DeviceToken
	deleted []string
}

func (f *fakeDeviceTokenRepo) GetTokensByUserIds(_ context.Context, userIDs []uint64) ([]*model.DeviceToken, error) {
	var out []*model.DeviceToken
	for _, id := range userIDs {
		for _, t := range f.tokens[id] {
			out = append(out, &model.DeviceToken{UserID: id, Token: t})
		}
	}
	return out, nil
}

func (f *fakeDeviceTokenRepo) CreateToken(_ context.Context, token *model.DeviceToken) error {
	f.created = append(f.created, token)
	return nil
}

func (f *fakeDeviceTokenRepo) DeleteToken(_ context.Context, _ uint64, _ string) error {
	return nil
}

func (f *fakeDeviceTokenRepo) DeleteTokens(_ context.Context, tokens []string) error {
	f.deleted = append(f.deleted, tokens...)
	return nil
}

type fakeScheduleRepo struct {
	schedules map[uint64]*model.NudgeSchedule

	created []*model.NudgeSchedule
	updated []*model.NudgeSchedule
}

func (f *fakeScheduleRepo) GetByGroupId(_ context.Context, groupID uint64) (*model.NudgeSchedule, error) {
	return f.schedules[groupID], nil
}

func (f *fakeScheduleRepo) CreateSchedule(_ context.Context, schedule *model.NudgeSchedule) error {
	f.created = append(f.created, schedule)
	return nil
}

func (f *fakeScheduleRepo) UpdateSchedule(_ context.Context, schedule *model.NudgeSchedule) error {
	f.updated = append(f.updated, schedule)
	return nil
}

// fakeNotificationRepo 只落在内存里，重复的 (receiver, ref_type, ref_id) 跳过
type fakeNotificationRepo struct {
	rows       []*model.Notification
	countCalls int
}

func (f *fakeNotificationRepo) InsertNotifications(_ context.Context, rows []*model.Notification) ([]*model.Notification, error) {
	var inserted []*model.Notification
	for _, row := range rows {
		dup := false
		for _, prev := range f.rows {
			if prev.ReceiverID == row.ReceiverID && prev.ReferenceType == row.ReferenceType && prev.ReferenceID == row.ReferenceID {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		f.rows = append(f.rows, row)
		inserted = append(inserted, row)
	}
	return inserted, nil
}

func (f *fakeNotificationRepo) GetByReceiver(_ context.Context, receiverID uint64, limit, offset int) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, row := range f.rows {
		if row.ReceiverID == receiverID {
			out = append(out, row)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountByReceiver(_ context.Context, receiverID uint64) (int64, error) {
	f.countCalls++
	var count int64
	for _, row := range f.rows {
		if row.ReceiverID == receiverID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*model.Notification
	var deleted int64
	for _, row := range f.rows {
		if row.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return deleted, nil
}

// fakeNotificationService 只落在内存里，重复的 (receiver, ref_type, ref_id) 跳过
type fakeNotificationService struct {
	stored []*model.Notification
}

func (f *fakeNotificationService) StoreNotifications(_ context.Context, rows []*model.Notification) ([]*model.Notification, error) {
	var inserted []*model.Notification
	for _, row := range rows {
		dup := false
		for _, prev := range f.stored {
			if prev.ReceiverID == row.ReceiverID && prev.ReferenceType == row.ReferenceType && prev.ReferenceID == row.ReferenceID {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		f.stored = append(f.stored, row)
		inserted = append(inserted, row)
	}
	return inserted, nil
}

func (f *fakeNotificationService) GetHistory(_ context.Context, _ uint64, _, _ int) ([]*model.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationService) GetCount(_ context.Context, _ uint64) (int64, error) {
	return int64(len(f.stored)), nil
}

func (f *fakeNotificationService) PruneExpired(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

type pushCall struct {
	tokens []string
	title  string
	body   string
	data   map[string]string
}

type fakePusher struct {
	calls   []pushCall
	tickets []push.Ticket
}

func (f *fakePusher) Send(_ context.Context, tokens []string, title, body string, data map[string]string) []push.Ticket {
	f.calls = append(f.calls, pushCall{tokens: tokens, title: title, body: body, data: data})
	return f.tickets
}

type schedulerCall struct {
	op   string
	name string
	req  *scheduler.ScheduleRequest
}

type fakeSchedulerClient struct {
	calls []schedulerCall
	err   error
}

func (f *fakeSchedulerClient) CreateSchedule(_ context.Context, req *scheduler.ScheduleRequest) error {
	f.calls = append(f.calls, schedulerCall{op: "create", name: req.Name, req: req})
	return f.err
}

func (f *fakeSchedulerClient) UpdateSchedule(_ context.Context, req *scheduler.ScheduleRequest) error {
	f.calls = append(f.calls, schedulerCall{op: "update", name: req.Name, req: req})
	return f.err
}

func (f *fakeSchedulerClient) DisableSchedule(_ context.Context, name string) error {
	f.calls = append(f.calls, schedulerCall{op: "disable", name: name})
	return f.err
}

func (f *fakeSchedulerClient) DeleteSchedule(_ context.Context, name string) error {
	f.calls = append(f.calls, schedulerCall{op: "delete", name: name})
	return f.err
}
