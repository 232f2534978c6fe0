package scheduler

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/go-resty/resty/v2"
)

// Client 外部 cron 调度服务的适配层。
// 调度资源以确定性名称为键，重复创建/更新因此天然幂等。
type Client interface {
	CreateSchedule(ctx context.Context, req *ScheduleRequest) error
	UpdateSchedule(ctx context.Context, req *ScheduleRequest) error
	DisableSchedule(ctx context.Context, name string) error
	DeleteSchedule(ctx context.Context, name string) error
}

// ScheduleRequest 调度资源描述
type ScheduleRequest struct {
	Name           string                 `json:"name"`
	CronExpression string                 `json:"cron_expression"`
	Timezone       string                 `json:"timezone"`
	TargetURL      string                 `json:"target_url"`
	TargetInput    map[string]interface{} `json:"target_input"`
}

type ClientImpl struct {
	http *resty.Client
	url  string
}

func NewClient(cfg config.SchedulerConfig) Client {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	if cfg.ApiKey != "" {
		client.SetHeader("X-Api-Key", cfg.ApiKey)
	}

	return &ClientImpl{
		http: client,
		url:  cfg.URL,
	}
}

// CreateSchedule 创建调度资源
func (s *ClientImpl) CreateSchedule(ctx context.Context, req *ScheduleRequest) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(s.url + "/schedules")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("scheduler create failed: %s", resp.Status())
	}
	log.InfoContext(ctx, "external schedule created", "name", req.Name, "cron", req.CronExpression)
	return nil
}

// UpdateSchedule 覆写已有调度资源
func (s *ClientImpl) UpdateSchedule(ctx context.Context, req *ScheduleRequest) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(req).
		Put(s.url + "/schedules/" + req.Name)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("scheduler update failed: %s", resp.Status())
	}
	log.InfoContext(ctx, "external schedule updated", "name", req.Name, "cron", req.CronExpression)
	return nil
}

// DisableSchedule 停用调度资源 (保留资源本身以便重新激活)
func (s *ClientImpl) DisableSchedule(ctx context.Context, name string) error {
	resp, err := s.http.R().
		SetContext(ctx).
		Post(s.url + "/schedules/" + name + "/disable")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("scheduler disable failed: %s", resp.Status())
	}
	log.InfoContext(ctx, "external schedule disabled", "name", name)
	return nil
}

// DeleteSchedule 删除调度资源
func (s *ClientImpl) DeleteSchedule(ctx context.Context, name string) error {
	resp, err := s.http.R().
		SetContext(ctx).
		Delete(s.url + "/schedules/" + name)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("scheduler delete failed: %s", resp.Status())
	}
	log.InfoContext(ctx, "external schedule deleted", "name", name)
	return nil
}
