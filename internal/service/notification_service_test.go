package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/consts"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedis 用内存实现顶替全局客户端，用例结束后还原
func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := redis.Rdb
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redis.Rdb = prev })
	return mr
}

func countKey(receiverID uint64) string {
	return consts.NotificationCountKey + strconv.FormatUint(receiverID, 10)
}

func TestGetCountCacheMiss(t *testing.T) {
	mr := setupRedis(t)
	repo := &fakeNotificationRepo{rows: []*model.Notification{
		model.NewNudgeNotification(1, 10, 1, 9, "家庭相册", "来看看"),
		model.NewNudgeNotification(2, 10, 1, 9, "家庭相册", "来看看"),
	}}
	svc := NewNotificationService(repo)

	count, err := svc.GetCount(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 1, repo.countCalls)

	// 未命中后回填缓存并带过期时间
	cached, err := mr.Get(countKey(9))
	require.NoError(t, err)
	assert.Equal(t, "2", cached)
	assert.Equal(t, 10*time.Minute, mr.TTL(countKey(9)))
}

func TestGetCountCacheHit(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(countKey(9), "12"))
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	count, err := svc.GetCount(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
	assert.Equal(t, 0, repo.countCalls)
}

func TestStoreNotificationsInvalidatesCount(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(countKey(9), "3"))
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	ctx := context.Background()

	inserted, err := svc.StoreNotifications(ctx, []*model.Notification{
		model.NewNudgeNotification(1, 10, 1, 9, "家庭相册", "来看看"),
	})
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	// 落库后旧计数失效，下一次读取重新回源
	assert.False(t, mr.Exists(countKey(9)))

	count, err := svc.GetCount(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, repo.countCalls)
}

func TestStoreNotificationsDuplicateKeepsCache(t *testing.T) {
	mr := setupRedis(t)
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	ctx := context.Background()

	row := model.NewNudgeNotification(1, 10, 1, 9, "家庭相册", "来看看")
	_, err := svc.StoreNotifications(ctx, []*model.Notification{row})
	require.NoError(t, err)

	require.NoError(t, mr.Set(countKey(9), "1"))

	// 重复投递零行落库，缓存不动
	inserted, err := svc.StoreNotifications(ctx, []*model.Notification{
		model.NewNudgeNotification(1, 10, 1, 9, "家庭相册", "来看看"),
	})
	require.NoError(t, err)
	assert.Empty(t, inserted)
	assert.True(t, mr.Exists(countKey(9)))
}

func TestGetHistoryClampsPaging(t *testing.T) {
	repo := &fakeNotificationRepo{}
	for i := uint64(1); i <= 3; i++ {
		repo.rows = append(repo.rows, model.NewNudgeNotification(i, 10, 1, 9, "家庭相册", "来看看"))
	}
	svc := NewNotificationService(repo)
	ctx := context.Background()

	rows, err := svc.GetHistory(ctx, 9, 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = svc.GetHistory(ctx, 9, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
