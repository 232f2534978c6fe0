package repository

import (
	"context"
	"errors"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errCooldownRollback 仅用于触发事务回滚，不向外传播
var errCooldownRollback = errors.New("nudge cooldown active")

type GroupMemberRepo interface {
	GetMembers(ctx context.Context, groupID uint64) ([]*model.GroupMember, error)
	GetMember(ctx context.Context, groupID, userID uint64) (*model.GroupMember, error)
	GetMembersByUserIds(ctx context.Context, groupID uint64, userIDs []uint64) ([]*model.GroupMember, error)
	UpdatePreferences(ctx context.Context, member *model.GroupMember) error
	ClaimNudge(ctx context.Context, groupID uint64, userIDs []uint64, cooldown time.Duration, now time.Time) ([]uint64, error)
}

type GroupMemberRepoImpl struct {
	db *gorm.DB
}

func NewGroupMemberRepo(db *gorm.DB) GroupMemberRepo {
	return &GroupMemberRepoImpl{db: db}
}

// GetMembers 获取群组全部成员
func (s *GroupMemberRepoImpl) GetMembers(ctx context.Context, groupID uint64) ([]*model.GroupMember, error) {
	var members []*model.GroupMember
	result := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}
	return members, nil
}

// GetMember 获取单条成员关系，未找到返回 nil
func (s *GroupMemberRepoImpl) GetMember(ctx context.Context, groupID, userID uint64) (*model.GroupMember, error) {
	var member model.GroupMember
	result := s.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &member, nil
}

// GetMembersByUserIds 按用户 id 集合取成员关系，非成员缺席于结果
func (s *GroupMemberRepoImpl) GetMembersByUserIds(ctx context.Context, groupID uint64, userIDs []uint64) ([]*model.GroupMember, error) {
	if len(userIDs) == 0 {
		return []*model.GroupMember{}, nil
	}
	var members []*model.GroupMember
	result := s.db.WithContext(ctx).
		Where("group_id = ? AND user_id IN ?", groupID, userIDs).
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}
	return members, nil
}

// UpdatePreferences 更新成员的四个通知开关
func (s *GroupMemberRepoImpl) UpdatePreferences(ctx context.Context, member *model.GroupMember) error {
	return s.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", member.GroupID, member.UserID).
		Updates(map[string]interface{}{
			"like_notify":    member.LikeNotify,
			"comment_notify": member.CommentNotify,
			"post_notify":    member.PostNotify,
			"nudge_notify":   member.NudgeNotify,
		}).Error
}

// ClaimNudge 在单个事务内完成冷却检查与时间戳更新。
// 对目标行加行级锁，保证并发的两次催促不会同时通过检查；
// 任何目标仍处于冷却期时整体回滚，返回被阻塞的用户 id 列表。
func (s *GroupMemberRepoImpl) ClaimNudge(ctx context.Context, groupID uint64, userIDs []uint64, cooldown time.Duration, now time.Time) ([]uint64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var blocked []uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var members []*model.GroupMember
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("group_id = ? AND user_id IN ?", groupID, userIDs).
			Find(&members)
		if result.Error != nil {
			return result.Error
		}

		cutoff := now.Add(-cooldown)
		for _, m := range members {
			if m.LastManualNudgeAt != nil && m.LastManualNudgeAt.After(cutoff) {
				blocked = append(blocked, m.UserID)
			}
		}
		if len(blocked) > 0 {
			return errCooldownRollback
		}

		return tx.Model(&model.GroupMember{}).
			Where("group_id = ? AND user_id IN ?", groupID, userIDs).
			Update("last_manual_nudge_at", now).Error
	})

	if errors.Is(err, errCooldownRollback) {
		return blocked, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}
