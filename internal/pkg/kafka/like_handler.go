package kafka

import (
	"context"
	log "log/slog"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/consts"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/IBM/sarama"
)

type LikesHandler struct {
	notifySvc service.NotifyService
}

func NewLikesHandler(notifySvc service.NotifyService) *LikesHandler {
	return &LikesHandler{notifySvc: notifySvc}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("like consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("like consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-like consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "likes")
	if err != nil {
		// 解码失败重试也不会成功，跳过以免拖住后面的消息
		log.WarnContext(ctx, "undecodable like event, skipped", "offset", msg.Offset, "err", err)
		return nil
	}

	// 取消点赞是物理删除，不回收已发出的通知
	if canalMsg.Type != consts.INSERT {
		return nil
	}

	row := canalMsg.Data[0]
	like := &model.Like{
		ID:        StrToUint64(row["id"]),
		UserID:    StrToUint64(row["user_id"]),
		PostID:    StrToUint64(row["post_id"]),
		CreatedAt: StrToDateTime(row["created_at"]),
	}
	if like.ID == 0 || like.UserID == 0 || like.PostID == 0 {
		log.WarnContext(ctx, "like event with incomplete row, skipped", "row_id", row["id"])
		return nil
	}

	if err := s.notifySvc.NotifyLike(ctx, like); err != nil {
		log.ErrorContext(ctx, "like notification failed", "like_id", like.ID, "err", err)
		return err
	}
	return nil
}
