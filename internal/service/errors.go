package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrGroupNotFound        = errors.New("群组不存在")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrNotGroupManager      = errors.New("仅群组管理员可执行该操作")
	ErrNotGroupMember       = errors.New("目标用户不是群组成员")
	ErrEmptyNudgeTargets    = errors.New("目标用户列表为空")
	ErrNudgeCooldown        = errors.New("催促过于频繁，请稍后再试")
	ErrScheduleSpecInvalid  = errors.New("重复规则不合法")
	ErrScheduleNotFound     = errors.New("催促计划不存在")
	ErrSchedulerUnavailable = errors.New("外部调度服务调用失败")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrGroupNotFound:        NotFound,
	ErrUserNotFound:         NotFound,
	ErrNotGroupManager:      Forbidden,
	ErrNotGroupMember:       Forbidden,
	ErrEmptyNudgeTargets:    BadRequest,
	ErrNudgeCooldown:        TooManyRequests,
	ErrScheduleSpecInvalid:  BadRequest,
	ErrScheduleNotFound:     NotFound,
	ErrSchedulerUnavailable: InternalServerError,
	UnExpectedError:         InternalServerError,
}

// DetailedError 在哨兵错误之上附带明细 (如具体的用户 id)，
// errors.Is 仍按哨兵归类，HTTP 状态码因此不受影响
type DetailedError struct {
	base   error
	detail string
}

func (e *DetailedError) Error() string {
	return e.base.Error() + ": " + e.detail
}

func (e *DetailedError) Unwrap() error {
	return e.base
}

// ErrWithIDs 用一组 id 充当明细
func ErrWithIDs(base error, ids []uint64) error {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(id, 10))
	}
	return &DetailedError{base: base, detail: "[" + strings.Join(parts, ", ") + "]"}
}

// ErrWithDetail 用任意文本充当明细
func ErrWithDetail(base error, format string, args ...interface{}) error {
	return &DetailedError{base: base, detail: fmt.Sprintf(format, args...)}
}
