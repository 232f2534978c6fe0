package service

import (
	"context"
	log "log/slog"
	"strconv"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/push"
	"github.com/GenerateNU/dearly-sub000/internal/repository"
)

// Pusher 推送出口，生产实现为 push.Client
type Pusher interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string) []push.Ticket
}

// NotifyService 变更事件通知管线：解析接收者 -> 落库 -> 推送。
// 该路径没有直接调用方，任何失败只记录日志。
type NotifyService interface {
	NotifyPost(ctx context.Context, post *model.Post) error
	NotifyLike(ctx context.Context, like *model.Like) error
	NotifyComment(ctx context.Context, comment *model.Comment) error
}

type NotifyServiceImpl struct {
	userRepo        repository.UserRepo
	groupRepo       repository.GroupRepo
	memberRepo      repository.GroupMemberRepo
	postRepo        repository.PostRepo
	deviceTokenRepo repository.DeviceTokenRepo
	notificationSvc NotificationService
	pusher          Pusher
}

func NewNotifyService(
	userRepo repository.UserRepo,
	groupRepo repository.GroupRepo,
	memberRepo repository.GroupMemberRepo,
	postRepo repository.PostRepo,
	deviceTokenRepo repository.DeviceTokenRepo,
	notificationSvc NotificationService,
	pusher Pusher,
) NotifyService {
	return &NotifyServiceImpl{
		userRepo:        userRepo,
		groupRepo:       groupRepo,
		memberRepo:      memberRepo,
		postRepo:        postRepo,
		deviceTokenRepo: deviceTokenRepo,
		notificationSvc: notificationSvc,
		pusher:          pusher,
	}
}

// notifyMeta 解析结果：发送通知所需的最小元数据
type notifyMeta struct {
	actorName   string
	groupName   string
	receiverIDs []uint64
	pushTokens  []string
}

// NotifyPost 新帖事件：全组成员 (除作者) 一对多扩散
func (s *NotifyServiceImpl) NotifyPost(ctx context.Context, post *model.Post) error {
	meta, err := s.resolvePostTargets(ctx, post)
	if err != nil {
		return err
	}
	if meta == nil || len(meta.receiverIDs) == 0 {
		return nil
	}

	rows := make([]*model.Notification, 0, len(meta.receiverIDs))
	for _, receiverID := range meta.receiverIDs {
		rows = append(rows, model.NewPostNotification(post, receiverID, meta.groupName, meta.actorName+" 发布了新帖子"))
	}

	return s.storeAndDispatch(ctx, rows, meta, model.RefTypePost, post.ID)
}

// NotifyLike 点赞事件：仅通知帖子作者
func (s *NotifyServiceImpl) NotifyLike(ctx context.Context, like *model.Like) error {
	meta, groupID, err := s.resolveOwnerTarget(ctx, like.PostID, like.UserID, model.RefTypeLike)
	if err != nil {
		return err
	}
	if meta == nil || len(meta.receiverIDs) == 0 {
		return nil
	}

	rows := []*model.Notification{
		model.NewLikeNotification(like, groupID, meta.receiverIDs[0], meta.groupName, meta.actorName+" 点赞了你的帖子"),
	}

	return s.storeAndDispatch(ctx, rows, meta, model.RefTypeLike, like.ID)
}

// NotifyComment 评论事件：仅通知帖子作者
func (s *NotifyServiceImpl) NotifyComment(ctx context.Context, comment *model.Comment) error {
	meta, groupID, err := s.resolveOwnerTarget(ctx, comment.PostID, comment.UserID, model.RefTypeComment)
	if err != nil {
		return err
	}
	if meta == nil || len(meta.receiverIDs) == 0 {
		return nil
	}

	rows := []*model.Notification{
		model.NewCommentNotification(comment, groupID, meta.receiverIDs[0], meta.groupName, meta.actorName+" 评论了你的帖子"),
	}

	return s.storeAndDispatch(ctx, rows, meta, model.RefTypeComment, comment.ID)
}

// storeAndDispatch 先落库后推送；重复投递的事件落库为零行，直接跳过推送
func (s *NotifyServiceImpl) storeAndDispatch(ctx context.Context, rows []*model.Notification, meta *notifyMeta, refType string, refID uint64) error {
	inserted, err := s.notificationSvc.StoreNotifications(ctx, rows)
	if err != nil {
		return err
	}
	if len(inserted) == 0 {
		log.InfoContext(ctx, "duplicate event, dispatch skipped", "ref_type", refType, "ref_id", refID)
		return nil
	}

	if len(meta.pushTokens) == 0 {
		return nil
	}

	data := map[string]string{
		"type":         refType,
		"reference_id": strconv.FormatUint(refID, 10),
	}
	tickets := s.pusher.Send(ctx, meta.pushTokens, rows[0].Title, rows[0].Description, data)
	s.pruneInvalidTokens(ctx, tickets)

	log.InfoContext(ctx, "notifications dispatched",
		"ref_type", refType, "ref_id", refID,
		"stored", len(inserted), "pushed", len(meta.pushTokens))
	return nil
}

// resolvePostTargets 新帖扩散目标。群组或作者已不可见时返回 nil，
// 由调用方按空操作处理 (触发行可能已删除或读到了滞后副本)。
func (s *NotifyServiceImpl) resolvePostTargets(ctx context.Context, post *model.Post) (*notifyMeta, error) {
	group, err := s.groupRepo.GetGroupById(ctx, post.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}

	actor, err := s.userRepo.GetUserById(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, nil
	}

	members, err := s.memberRepo.GetMembers(ctx, post.GroupID)
	if err != nil {
		return nil, err
	}

	meta := &notifyMeta{
		actorName: actor.Nickname,
		groupName: group.Name,
	}

	var pushUserIDs []uint64
	for _, m := range members {
		if m.UserID == post.UserID {
			continue
		}
		// 关闭了开关的成员仍保留通知历史，只是不进推送名单
		meta.receiverIDs = append(meta.receiverIDs, m.UserID)
		if m.PostNotify {
			pushUserIDs = append(pushUserIDs, m.UserID)
		}
	}

	tokens, err := s.collectTokens(ctx, pushUserIDs)
	if err != nil {
		return nil, err
	}
	meta.pushTokens = tokens
	return meta, nil
}

// resolveOwnerTarget 点赞/评论的目标是帖子作者；作者给自己点赞或评论时
// 返回空目标，调用方既不落库也不推送
func (s *NotifyServiceImpl) resolveOwnerTarget(ctx context.Context, postID, actorID uint64, refType string) (*notifyMeta, uint64, error) {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	if post == nil {
		return nil, 0, nil
	}
	if post.UserID == actorID {
		return nil, 0, nil
	}

	group, err := s.groupRepo.GetGroupById(ctx, post.GroupID)
	if err != nil {
		return nil, 0, err
	}
	if group == nil {
		return nil, 0, nil
	}

	actor, err := s.userRepo.GetUserById(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	if actor == nil {
		return nil, 0, nil
	}

	meta := &notifyMeta{
		actorName:   actor.Nickname,
		groupName:   group.Name,
		receiverIDs: []uint64{post.UserID},
	}

	owner, err := s.memberRepo.GetMember(ctx, post.GroupID, post.UserID)
	if err != nil {
		return nil, 0, err
	}
	if owner != nil && owner.NotifyEnabledFor(refType) {
		tokens, err := s.collectTokens(ctx, []uint64{post.UserID})
		if err != nil {
			return nil, 0, err
		}
		meta.pushTokens = tokens
	}
	return meta, post.GroupID, nil
}

func (s *NotifyServiceImpl) collectTokens(ctx context.Context, userIDs []uint64) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	rows, err := s.deviceTokenRepo.GetTokensByUserIds(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, row.Token)
	}
	return tokens, nil
}

func (s *NotifyServiceImpl) pruneInvalidTokens(ctx context.Context, tickets []push.Ticket) {
	invalid := push.InvalidTokens(tickets)
	if len(invalid) == 0 {
		return
	}
	if err := s.deviceTokenRepo.DeleteTokens(ctx, invalid); err != nil {
		log.ErrorContext(ctx, "failed to prune invalid device tokens", "count", len(invalid), "err", err)
		return
	}
	log.InfoContext(ctx, "invalid device tokens pruned", "count", len(invalid))
}
