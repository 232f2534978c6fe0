package wire

import (
	"github.com/GenerateNU/dearly-sub000/internal/api"
	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/GenerateNU/dearly-sub000/internal/api/handler"
	"github.com/GenerateNU/dearly-sub000/internal/job"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/cron"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/kafka"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/push"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/scheduler"
	"github.com/GenerateNU/dearly-sub000/internal/repository"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	memberRepo := repository.NewGroupMemberRepo(db)
	postRepo := repository.NewPostRepo(db)
	deviceTokenRepo := repository.NewDeviceTokenRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	scheduleRepo := repository.NewNudgeScheduleRepo(db)

	pushClient := push.NewClient(cfg.Push)
	schedulerClient := scheduler.NewClient(cfg.Scheduler)

	notificationService := service.NewNotificationService(notificationRepo)
	notifyService := service.NewNotifyService(
		userRepo, groupRepo, memberRepo, postRepo, deviceTokenRepo,
		notificationService, pushClient,
	)
	nudgeService := service.NewNudgeService(
		cfg.Nudge,
		userRepo, groupRepo, memberRepo, scheduleRepo, deviceTokenRepo,
		notificationService, pushClient,
	)
	scheduleService := service.NewScheduleService(cfg.Scheduler, groupRepo, scheduleRepo, schedulerClient)
	deviceService := service.NewDeviceService(deviceTokenRepo)
	preferenceService := service.NewPreferenceService(memberRepo)

	handlers := &api.HandlersGroup{
		NudgeHandler:        handler.NewNudgeHandler(nudgeService),
		ScheduleHandler:     handler.NewScheduleHandler(scheduleService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		DeviceHandler:       handler.NewDeviceHandler(deviceService),
		PreferenceHandler:   handler.NewPreferenceHandler(preferenceService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, notifyService)
	if err != nil {
		return nil, err
	}

	pruneJob := job.NewNotificationPruneJob(cfg.Notification, notificationService)
	cronMgr := cron.NewCronManager(pruneJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
