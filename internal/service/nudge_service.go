package service

import (
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/push"
	"github.com/GenerateNU/dearly-sub000/internal/repository"
	"github.com/pkg/errors"
)

type NudgeService interface {
	ManualNudge(ctx context.Context, callerID, groupID uint64, targetIDs []uint64) error
	ScheduledNudge(ctx context.Context, groupID uint64, frequency string) error
}

type NudgeServiceImpl struct {
	userRepo        repository.UserRepo
	groupRepo       repository.GroupRepo
	memberRepo      repository.GroupMemberRepo
	scheduleRepo    repository.NudgeScheduleRepo
	deviceTokenRepo repository.DeviceTokenRepo
	notificationSvc NotificationService
	pusher          Pusher
	cooldown        time.Duration
}

func NewNudgeService(
	cfg config.NudgeConfig,
	userRepo repository.UserRepo,
	groupRepo repository.GroupRepo,
	memberRepo repository.GroupMemberRepo,
	scheduleRepo repository.NudgeScheduleRepo,
	deviceTokenRepo repository.DeviceTokenRepo,
	notificationSvc NotificationService,
	pusher Pusher,
) NudgeService {
	return &NudgeServiceImpl{
		userRepo:        userRepo,
		groupRepo:       groupRepo,
		memberRepo:      memberRepo,
		scheduleRepo:    scheduleRepo,
		deviceTokenRepo: deviceTokenRepo,
		notificationSvc: notificationSvc,
		pusher:          pusher,
		cooldown:        time.Duration(cfg.CooldownHours) * time.Hour,
	}
}

// ManualNudge 群主手动催促指定成员。
// 目标校验失败整体拒绝；通过校验后按开关和设备静默过滤，
// 过滤为空时成功返回但无任何动作。任一目标处于冷却期则整体拒绝，
// 通过的请求在同一事务内盖下冷却时间戳。
func (s *NudgeServiceImpl) ManualNudge(ctx context.Context, callerID, groupID uint64, targetIDs []uint64) error {
	targetIDs = dedupeIDs(targetIDs)
	if len(targetIDs) == 0 {
		return ErrEmptyNudgeTargets
	}

	group, err := s.groupRepo.GetGroupById(ctx, groupID)
	if err != nil {
		return errors.Wrap(err, "get group failed")
	}
	if group == nil {
		return ErrGroupNotFound
	}
	if group.ManagerID != callerID {
		return ErrNotGroupManager
	}

	users, err := s.userRepo.GetUsersByIds(ctx, targetIDs)
	if err != nil {
		return errors.Wrap(err, "get users failed")
	}
	if missing := missingIDs(targetIDs, userIDSet(users)); len(missing) > 0 {
		return ErrWithIDs(ErrUserNotFound, missing)
	}

	members, err := s.memberRepo.GetMembersByUserIds(ctx, groupID, targetIDs)
	if err != nil {
		return errors.Wrap(err, "get group members failed")
	}
	if outsiders := missingIDs(targetIDs, memberIDSet(members)); len(outsiders) > 0 {
		return ErrWithIDs(ErrNotGroupMember, outsiders)
	}

	eligible, tokensByUser, err := s.filterEligible(ctx, group, members)
	if err != nil {
		return err
	}
	if len(eligible) == 0 {
		log.InfoContext(ctx, "manual nudge skipped, no eligible targets", "group_id", groupID)
		return nil
	}

	now := time.Now()
	blocked, err := s.memberRepo.ClaimNudge(ctx, groupID, eligible, s.cooldown, now)
	if err != nil {
		return errors.Wrap(err, "claim nudge cooldown failed")
	}
	if len(blocked) > 0 {
		return ErrWithIDs(ErrNudgeCooldown, blocked)
	}

	nudgeID := uint64(now.UnixNano())
	return s.dispatchNudge(ctx, group, callerID, nudgeID, eligible, tokensByUser)
}

// ScheduledNudge 外部调度触发的定时催促。
// BIWEEKLY 计划按周下发，这里比较当前 ISO 周与计划创建周的奇偶性，
// 不匹配的周静默跳过。定时路径不受手动冷却约束，也不更新冷却时间戳。
func (s *NudgeServiceImpl) ScheduledNudge(ctx context.Context, groupID uint64, frequency string) error {
	group, err := s.groupRepo.GetGroupById(ctx, groupID)
	if err != nil {
		return errors.Wrap(err, "get group failed")
	}
	if group == nil {
		log.WarnContext(ctx, "scheduled nudge for missing group", "group_id", groupID)
		return nil
	}

	schedule, err := s.scheduleRepo.GetByGroupId(ctx, groupID)
	if err != nil {
		return errors.Wrap(err, "get nudge schedule failed")
	}
	if schedule == nil || !schedule.IsActive {
		log.WarnContext(ctx, "scheduled nudge without active schedule", "group_id", groupID)
		return nil
	}

	now := time.Now()
	if frequency == model.FreqBiweekly && !sameWeekParity(schedule.CreatedAt, now) {
		log.InfoContext(ctx, "biweekly nudge skipped on off week", "group_id", groupID)
		return nil
	}

	members, err := s.memberRepo.GetMembers(ctx, groupID)
	if err != nil {
		return errors.Wrap(err, "get group members failed")
	}

	eligible, tokensByUser, err := s.filterEligible(ctx, group, members)
	if err != nil {
		return err
	}
	if len(eligible) == 0 {
		log.InfoContext(ctx, "scheduled nudge skipped, no eligible targets", "group_id", groupID)
		return nil
	}

	// 引用 id 取整到触发分钟，调度服务重试同一次触发时落库为零行
	nudgeID := uint64(now.Truncate(time.Minute).UnixNano())
	return s.dispatchNudge(ctx, group, group.ManagerID, nudgeID, eligible, tokensByUser)
}

// filterEligible 静默过滤：群主本人、关闭催促开关的成员、
// 没有任何设备令牌的成员都不在催促范围内
func (s *NudgeServiceImpl) filterEligible(ctx context.Context, group *model.Group, members []*model.GroupMember) ([]uint64, map[uint64][]string, error) {
	var candidates []uint64
	for _, m := range members {
		if m.UserID == group.ManagerID || !m.NudgeNotify {
			continue
		}
		candidates = append(candidates, m.UserID)
	}
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	rows, err := s.deviceTokenRepo.GetTokensByUserIds(ctx, candidates)
	if err != nil {
		return nil, nil, errors.Wrap(err, "get device tokens failed")
	}

	tokensByUser := make(map[uint64][]string, len(candidates))
	for _, row := range rows {
		tokensByUser[row.UserID] = append(tokensByUser[row.UserID], row.Token)
	}

	eligible := make([]uint64, 0, len(candidates))
	for _, id := range candidates {
		if len(tokensByUser[id]) > 0 {
			eligible = append(eligible, id)
		}
	}
	return eligible, tokensByUser, nil
}

// dispatchNudge 先落库后推送，手动与定时路径共用
func (s *NudgeServiceImpl) dispatchNudge(ctx context.Context, group *model.Group, actorID, nudgeID uint64, eligible []uint64, tokensByUser map[uint64][]string) error {
	description := "是时候和 " + group.Name + " 分享近况了"
	rows := make([]*model.Notification, 0, len(eligible))
	for _, receiverID := range eligible {
		rows = append(rows, model.NewNudgeNotification(nudgeID, actorID, group.ID, receiverID, group.Name, description))
	}

	inserted, err := s.notificationSvc.StoreNotifications(ctx, rows)
	if err != nil {
		return err
	}
	if len(inserted) == 0 {
		log.InfoContext(ctx, "duplicate nudge, dispatch skipped", "group_id", group.ID, "nudge_id", nudgeID)
		return nil
	}

	var tokens []string
	for _, row := range inserted {
		tokens = append(tokens, tokensByUser[row.ReceiverID]...)
	}
	if len(tokens) == 0 {
		return nil
	}

	data := map[string]string{
		"type":     model.RefTypeNudge,
		"group_id": strconv.FormatUint(group.ID, 10),
	}
	tickets := s.pusher.Send(ctx, tokens, group.Name, description, data)

	invalid := push.InvalidTokens(tickets)
	if len(invalid) > 0 {
		if err := s.deviceTokenRepo.DeleteTokens(ctx, invalid); err != nil {
			log.ErrorContext(ctx, "failed to prune invalid device tokens", "count", len(invalid), "err", err)
		}
	}

	log.InfoContext(ctx, "nudge dispatched",
		"group_id", group.ID, "nudge_id", nudgeID,
		"stored", len(inserted), "pushed", len(tokens))
	return nil
}

// sameWeekParity 两个时刻的 ISO 周序号奇偶性是否一致
func sameWeekParity(a, b time.Time) bool {
	_, weekA := a.ISOWeek()
	_, weekB := b.ISOWeek()
	return weekA%2 == weekB%2
}

func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func userIDSet(users []*model.User) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(users))
	for _, u := range users {
		set[u.ID] = struct{}{}
	}
	return set
}

func memberIDSet(members []*model.GroupMember) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(members))
	for _, m := range members {
		set[m.UserID] = struct{}{}
	}
	return set
}

func missingIDs(wanted []uint64, have map[uint64]struct{}) []uint64 {
	var missing []uint64
	for _, id := range wanted {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
