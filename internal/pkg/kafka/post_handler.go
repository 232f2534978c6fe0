package kafka

import (
	"context"
	log "log/slog"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/consts"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/IBM/sarama"
)

type PostsHandler struct {
	notifySvc service.NotifyService
}

func NewPostsHandler(notifySvc service.NotifyService) *PostsHandler {
	return &PostsHandler{notifySvc: notifySvc}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "posts")
	if err != nil {
		// 解码失败重试也不会成功，跳过以免拖住后面的消息
		log.WarnContext(ctx, "undecodable post event, skipped", "offset", msg.Offset, "err", err)
		return nil
	}

	// 通知只由新帖触发，编辑和删除不产生通知
	if canalMsg.Type != consts.INSERT {
		return nil
	}

	row := canalMsg.Data[0]
	if row["is_deleted"] == "1" {
		return nil
	}

	post := &model.Post{
		ID:        StrToUint64(row["id"]),
		GroupID:   StrToUint64(row["group_id"]),
		UserID:    StrToUint64(row["user_id"]),
		Caption:   StrToString(row["caption"]),
		CreatedAt: StrToDateTime(row["created_at"]),
	}
	if post.ID == 0 || post.GroupID == 0 || post.UserID == 0 {
		log.WarnContext(ctx, "post event with incomplete row, skipped", "row_id", row["id"])
		return nil
	}

	if err := s.notifySvc.NotifyPost(ctx, post); err != nil {
		log.ErrorContext(ctx, "post notification failed", "post_id", post.ID, "err", err)
		return err
	}
	return nil
}
