package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	EndorseCntTTL       = 24 * time.Hour
	LockTTL             = 300 * time.Millisecond
	EndorseCntKeyPrefix = "endorse:cnt:skill"  // 某技能的背书计数缓存
	LockKeyPrefix       = "lock:endorse:skill" // 回源重建锁
)

// EndorseCacheRepository 背书计数缓存。写路径只删不改，读路径加锁回源重建，
// 保证缓存永远不会成为 verified 派生的依据（权威计数始终在 MySQL）。
type EndorseCacheRepository struct {
	cntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewEndorseCacheRepository() *EndorseCacheRepository {
	return &EndorseCacheRepository{cntTTL: EndorseCntTTL}
}

func (r *EndorseCacheRepository) cntKey(skillID uint64) string {
	return fmt.Sprintf("%s:%d", EndorseCntKeyPrefix, skillID)
}

// GetCountCached 第二个返回值表示是否命中
func (r *EndorseCacheRepository) GetCountCached(ctx context.Context, skillID uint64) (int64, bool, error) {
	val, err := Client.Get(ctx, r.cntKey(skillID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// SetCount 回填背书计数
func (r *EndorseCacheRepository) SetCount(ctx context.Context, skillID uint64, cnt int64) error {
	return Client.Set(ctx, r.cntKey(skillID), cnt, r.cntTTL).Err()
}

// DeleteCount 删除计数缓存，可选延迟二删，压缩并发回填的脏数据窗口
func (r *EndorseCacheRepository) DeleteCount(ctx context.Context, skillID uint64, delay ...time.Duration) error {
	key := r.cntKey(skillID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// Acquire 请求回源锁
func (l *DistLock) Acquire(ctx context.Context, skillID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, skillID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用 lua 保证只释放自己持有的锁
func (l *DistLock) Release(ctx context.Context, skillID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, skillID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
