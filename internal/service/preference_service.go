package service

import (
	"context"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/repository"
	"github.com/pkg/errors"
)

type PreferenceService interface {
	GetPreferences(ctx context.Context, groupID, userID uint64) (*model.GroupMember, error)
	UpdatePreferences(ctx context.Context, member *model.GroupMember) error
}

type PreferenceServiceImpl struct {
	memberRepo repository.GroupMemberRepo
}

func NewPreferenceService(memberRepo repository.GroupMemberRepo) PreferenceService {
	return &PreferenceServiceImpl{memberRepo: memberRepo}
}

// GetPreferences 获取调用者在指定群组内的通知开关
func (s *PreferenceServiceImpl) GetPreferences(ctx context.Context, groupID, userID uint64) (*model.GroupMember, error) {
	member, err := s.memberRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get member preferences failed")
	}
	if member == nil {
		return nil, ErrNotGroupMember
	}
	return member, nil
}

// UpdatePreferences 更新调用者的通知开关，仅允许修改自己的成员关系
func (s *PreferenceServiceImpl) UpdatePreferences(ctx context.Context, member *model.GroupMember) error {
	existing, err := s.memberRepo.GetMember(ctx, member.GroupID, member.UserID)
	if err != nil {
		return errors.Wrap(err, "get member preferences failed")
	}
	if existing == nil {
		return ErrNotGroupMember
	}
	if err := s.memberRepo.UpdatePreferences(ctx, member); err != nil {
		return errors.Wrap(err, "update member preferences failed")
	}
	return nil
}
