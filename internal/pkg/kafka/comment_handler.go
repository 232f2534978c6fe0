package kafka

import (
	"context"
	log "log/slog"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/consts"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/IBM/sarama"
)

type CommentsHandler struct {
	notifySvc service.NotifyService
}

func NewCommentsHandler(notifySvc service.NotifyService) *CommentsHandler {
	return &CommentsHandler{notifySvc: notifySvc}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		// 解码失败重试也不会成功，跳过以免拖住后面的消息
		log.WarnContext(ctx, "undecodable comment event, skipped", "offset", msg.Offset, "err", err)
		return nil
	}

	if canalMsg.Type != consts.INSERT {
		return nil
	}

	row := canalMsg.Data[0]
	if row["is_deleted"] == "1" {
		return nil
	}

	comment := &model.Comment{
		ID:        StrToUint64(row["id"]),
		PostID:    StrToUint64(row["post_id"]),
		UserID:    StrToUint64(row["user_id"]),
		Content:   StrToString(row["content"]),
		CreatedAt: StrToDateTime(row["created_at"]),
	}
	if comment.ID == 0 || comment.UserID == 0 || comment.PostID == 0 {
		log.WarnContext(ctx, "comment event with incomplete row, skipped", "row_id", row["id"])
		return nil
	}

	if err := s.notifySvc.NotifyComment(ctx, comment); err != nil {
		log.ErrorContext(ctx, "comment notification failed", "comment_id", comment.ID, "err", err)
		return err
	}
	return nil
}
