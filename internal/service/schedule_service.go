package service

import (
	"context"
	"fmt"
	log "log/slog"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/scheduler"
	"github.com/GenerateNU/dearly-sub000/internal/repository"
	"github.com/pkg/errors"
)

type ScheduleService interface {
	UpsertSchedule(ctx context.Context, callerID, groupID uint64, spec *RecurrenceSpec) (*model.NudgeSchedule, error)
	GetSchedule(ctx context.Context, callerID, groupID uint64) (*model.NudgeSchedule, error)
	DeactivateSchedule(ctx context.Context, callerID, groupID uint64) (bool, error)
}

type ScheduleServiceImpl struct {
	groupRepo       repository.GroupRepo
	scheduleRepo    repository.NudgeScheduleRepo
	schedulerClient scheduler.Client
	timezone        string
	targetURL       string
}

func NewScheduleService(
	cfg config.SchedulerConfig,
	groupRepo repository.GroupRepo,
	scheduleRepo repository.NudgeScheduleRepo,
	schedulerClient scheduler.Client,
) ScheduleService {
	return &ScheduleServiceImpl{
		groupRepo:       groupRepo,
		scheduleRepo:    scheduleRepo,
		schedulerClient: schedulerClient,
		timezone:        cfg.Timezone,
		targetURL:       cfg.TargetURL,
	}
}

// scheduleName 外部调度资源的确定性名称，同组的重复配置命中同一资源
func scheduleName(groupID uint64) string {
	return fmt.Sprintf("dearly-nudge-group-%d", groupID)
}

// UpsertSchedule 配置或覆写群组的定时催促。
// 先校验权限再校验重复规则，之后写本地行并同步外部调度资源；
// 外部同步失败返回 ErrSchedulerUnavailable，本地行保留，
// 下一次配置会以同名资源重新同步。
func (s *ScheduleServiceImpl) UpsertSchedule(ctx context.Context, callerID, groupID uint64, spec *RecurrenceSpec) (*model.NudgeSchedule, error) {
	group, err := s.requireManagedGroup(ctx, callerID, groupID)
	if err != nil {
		return nil, err
	}

	if err := ValidateRecurrence(spec); err != nil {
		return nil, err
	}

	cronExpr, err := BuildCronExpression(spec)
	if err != nil {
		return nil, err
	}

	existing, err := s.scheduleRepo.GetByGroupId(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "get nudge schedule failed")
	}

	schedule := &model.NudgeSchedule{
		GroupID:    groupID,
		Frequency:  spec.Frequency,
		DaysOfWeek: spec.DaysOfWeek,
		Day:        spec.Day,
		Month:      spec.Month,
		NudgeAt:    spec.NudgeAt,
		IsActive:   true,
	}

	if existing == nil {
		if err := s.scheduleRepo.CreateSchedule(ctx, schedule); err != nil {
			return nil, errors.Wrap(err, "create nudge schedule failed")
		}
	} else {
		schedule.ID = existing.ID
		schedule.CreatedAt = existing.CreatedAt
		if err := s.scheduleRepo.UpdateSchedule(ctx, schedule); err != nil {
			return nil, errors.Wrap(err, "update nudge schedule failed")
		}
	}

	req := &scheduler.ScheduleRequest{
		Name:           scheduleName(groupID),
		CronExpression: cronExpr,
		Timezone:       s.timezone,
		TargetURL:      s.targetURL,
		TargetInput: map[string]interface{}{
			"group_id":  groupID,
			"frequency": spec.Frequency,
		},
	}

	var syncErr error
	if existing == nil {
		syncErr = s.schedulerClient.CreateSchedule(ctx, req)
	} else {
		syncErr = s.schedulerClient.UpdateSchedule(ctx, req)
	}
	if syncErr != nil {
		log.ErrorContext(ctx, "external scheduler sync failed",
			"group_id", groupID, "name", req.Name, "err", syncErr)
		return nil, ErrSchedulerUnavailable
	}

	log.InfoContext(ctx, "nudge schedule configured",
		"group_id", group.ID, "frequency", spec.Frequency, "cron", cronExpr)
	return schedule, nil
}

// GetSchedule 查询群组的催促计划
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, callerID, groupID uint64) (*model.NudgeSchedule, error) {
	if _, err := s.requireManagedGroup(ctx, callerID, groupID); err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.GetByGroupId(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "get nudge schedule failed")
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	return schedule, nil
}

// DeactivateSchedule 停用群组的催促计划。从未配置过计划时返回
// deactivated=false 且不触达外部调度服务；已停用的计划重复停用幂等。
func (s *ScheduleServiceImpl) DeactivateSchedule(ctx context.Context, callerID, groupID uint64) (bool, error) {
	if _, err := s.requireManagedGroup(ctx, callerID, groupID); err != nil {
		return false, err
	}

	schedule, err := s.scheduleRepo.GetByGroupId(ctx, groupID)
	if err != nil {
		return false, errors.Wrap(err, "get nudge schedule failed")
	}
	if schedule == nil {
		return false, nil
	}

	if !schedule.IsActive {
		return true, nil
	}

	schedule.IsActive = false
	if err := s.scheduleRepo.UpdateSchedule(ctx, schedule); err != nil {
		return false, errors.Wrap(err, "deactivate nudge schedule failed")
	}

	if err := s.schedulerClient.DisableSchedule(ctx, scheduleName(groupID)); err != nil {
		log.ErrorContext(ctx, "external scheduler disable failed",
			"group_id", groupID, "err", err)
		return false, ErrSchedulerUnavailable
	}

	log.InfoContext(ctx, "nudge schedule deactivated", "group_id", groupID)
	return true, nil
}

func (s *ScheduleServiceImpl) requireManagedGroup(ctx context.Context, callerID, groupID uint64) (*model.Group, error) {
	group, err := s.groupRepo.GetGroupById(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "get group failed")
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	if group.ManagerID != callerID {
		return nil, ErrNotGroupManager
	}
	return group, nil
}
