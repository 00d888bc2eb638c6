package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SkillSphere/internal/model"
	"SkillSphere/internal/repository/mysql"
	"SkillSphere/internal/repository/redis"
	"SkillSphere/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EndorsementService 背书引擎：先校验后落库，commit 之后才推送。
// 推送是尽力而为的提示，收件人不在线不算失败。
type EndorsementService struct {
	repo      *mysql.EndorsementRepository
	skillRepo *mysql.SkillRepository
	userRepo  *mysql.UserRepository
	cache     *redis.EndorseCacheRepository
	lock      *redis.DistLock
	emitter   ws.Emitter
}

func NewEndorsementService(db *gorm.DB, emitter ws.Emitter) *EndorsementService {
	return &EndorsementService{
		repo:      &mysql.EndorsementRepository{DB: db},
		skillRepo: &mysql.SkillRepository{DB: db},
		userRepo:  &mysql.UserRepository{DB: db},
		cache:     redis.NewEndorseCacheRepository(),
		lock:      &redis.DistLock{RDB: redis.Client},
		emitter:   emitter,
	}
}

// Toggle 同一 (actor, skill, recipient) 三元组：无则加背书，有则取消。
// 校验全部发生在任何写之前；事务提交之后才做缓存失效与房间推送。
func (s *EndorsementService) Toggle(ctx context.Context, actorID, skillID, endorsedTo uint64) (*mysql.ToggleResult, error) {
	if actorID == 0 || skillID == 0 || endorsedTo == 0 {
		return nil, ErrInvalidID
	}
	if actorID == endorsedTo {
		return nil, ErrSelfEndorse
	}

	skill, err := s.skillRepo.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}

	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	actorName := actor.Name
	if actorName == "" {
		actorName = actor.Username
	}

	message := fmt.Sprintf("%s endorsed your skill %q.", actorName, skill.Name)
	url := fmt.Sprintf("/profile/%d", endorsedTo)

	res, err := s.repo.Toggle(ctx, skill, actorID, endorsedTo, message, url)
	if err != nil {
		return nil, err
	}

	// 写库已提交，计数缓存延迟二删，交给读侧回源重建
	if s.cache != nil {
		_ = s.cache.DeleteCount(ctx, skillID, time.Second)
	}

	if res.Removed {
		s.emitter.EmitTo(endorsedTo, ws.EventRemoveEndorsement, ws.RemoveEndorsementEvent{
			Recipient: endorsedTo,
			Sender:    actorID,
			Message:   fmt.Sprintf("%s removed their endorsement of %q.", actorName, skill.Name),
			SkillID:   skillID,
		})
	} else {
		n := res.Notification
		s.emitter.EmitTo(endorsedTo, ws.EventNotification, ws.NotificationEvent{
			ID:        n.ID,
			Recipient: n.Recipient,
			Sender:    n.Sender,
			Message:   n.Message,
			URL:       n.URL,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
			SkillID:   skillID,
		})
	}
	return res, nil
}

// Recent 某用户最近收到的背书
func (s *EndorsementService) Recent(ctx context.Context, userID uint64, limit int) ([]model.Endorsement, error) {
	if userID == 0 {
		return nil, ErrInvalidID
	}
	return s.repo.RecentByUser(ctx, userID, limit)
}

// CountForSkill 读路径：缓存优先，miss 时加锁回源，拿不到锁退避后重读
func (s *EndorsementService) CountForSkill(ctx context.Context, skillID uint64) (int64, error) {
	if skillID == 0 {
		return 0, ErrInvalidID
	}
	if s.cache == nil || s.lock == nil {
		return s.repo.CountBySkill(ctx, skillID)
	}

	if v, ok, err := s.cache.GetCountCached(ctx, skillID); err == nil && ok {
		return v, nil
	}

	token := uuid.NewString()
	got, _ := s.lock.Acquire(ctx, skillID, token)
	if got {
		defer func() { _ = s.lock.Release(ctx, skillID, token) }()

		// double check，别人可能已经回填过了
		if v, ok, err := s.cache.GetCountCached(ctx, skillID); err == nil && ok {
			return v, nil
		}
		v, err := s.repo.CountBySkill(ctx, skillID)
		if err != nil {
			return 0, err
		}
		_ = s.cache.SetCount(ctx, skillID, v)
		return v, nil
	}

	// 没抢到锁，短暂退避再读一次缓存，避免全体打 DB
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.cache.GetCountCached(ctx, skillID); err == nil && ok {
		return v, nil
	}
	return s.repo.CountBySkill(ctx, skillID)
}
