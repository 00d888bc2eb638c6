package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"SkillSphere/internal/model"
	"SkillSphere/internal/repository/mysql"
	"SkillSphere/internal/testutil"
	"SkillSphere/internal/ws"

	"gorm.io/gorm"
)

// recordingEmitter 记录每一次 EmitTo，替代真实 Hub
type recordingEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	UserID uint64
	Event  string
	Data   any
}

func (r *recordingEmitter) EmitTo(userID uint64, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{UserID: userID, Event: event, Data: data})
}

func (r *recordingEmitter) all() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEvent(nil), r.events...)
}

func newTestEngine(t *testing.T) (*EndorsementService, *recordingEmitter, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	emitter := &recordingEmitter{}
	svc := &EndorsementService{
		repo:      &mysql.EndorsementRepository{DB: db},
		skillRepo: &mysql.SkillRepository{DB: db},
		userRepo:  &mysql.UserRepository{DB: db},
		emitter:   emitter,
	}
	return svc, emitter, db
}

func TestToggleRejectsSelfEndorsement(t *testing.T) {
	svc, emitter, db := newTestEngine(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner", "Owner")
	skill := testutil.SeedSkill(t, db, owner.ID, "Go")

	_, err := svc.Toggle(ctx, owner.ID, skill.ID, owner.ID)
	if !errors.Is(err, ErrSelfEndorse) {
		t.Fatalf("err=%v, want ErrSelfEndorse", err)
	}

	// 失败快路径：不落库、不推送
	var n int64
	db.Model(&model.Endorsement{}).Count(&n)
	if n != 0 {
		t.Fatalf("endorsements=%d, want 0", n)
	}
	db.Model(&model.Notification{}).Count(&n)
	if n != 0 {
		t.Fatalf("notifications=%d, want 0", n)
	}
	if len(emitter.all()) != 0 {
		t.Fatal("no fan-out on validation failure")
	}
}

func TestToggleRejectsInvalidAndMissing(t *testing.T) {
	svc, emitter, db := newTestEngine(t)
	ctx := context.Background()

	actor := testutil.SeedUser(t, db, "actor", "Actor")
	owner := testutil.SeedUser(t, db, "owner", "Owner")

	if _, err := svc.Toggle(ctx, actor.ID, 0, owner.ID); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("zero skill id: err=%v, want ErrInvalidID", err)
	}
	if _, err := svc.Toggle(ctx, actor.ID, 12345, owner.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("missing skill: err=%v, want ErrSkillNotFound", err)
	}
	if len(emitter.all()) != 0 {
		t.Fatal("no fan-out on failed toggle")
	}
}

// 规格场景：2 个既有背书，第三个 toggle 翻转 verified 并推送通知；
// 同一人再 toggle 一次回落，不新增通知，推 remove_endorsement。
func TestToggleThresholdScenario(t *testing.T) {
	svc, emitter, db := newTestEngine(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner", "Owner")
	skill := testutil.SeedSkill(t, db, owner.ID, "Go")
	for _, name := range []string{"a", "b"} {
		u := testutil.SeedUser(t, db, name, name)
		if _, err := svc.Toggle(ctx, u.ID, skill.ID, owner.ID); err != nil {
			t.Fatalf("seed toggle: %v", err)
		}
	}
	emitter.events = nil

	actor := testutil.SeedUser(t, db, "alice", "Alice")
	res, err := svc.Toggle(ctx, actor.ID, skill.ID, owner.ID)
	if err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	if res.Removed || res.Count != 3 || !res.Verified {
		t.Fatalf("res=%+v, want added count=3 verified", res)
	}

	events := emitter.all()
	if len(events) != 1 {
		t.Fatalf("events=%d, want 1", len(events))
	}
	if events[0].Event != ws.EventNotification || events[0].UserID != owner.ID {
		t.Fatalf("event=%+v, want notification to owner", events[0])
	}
	notif, ok := events[0].Data.(ws.NotificationEvent)
	if !ok {
		t.Fatalf("payload type %T, want NotificationEvent", events[0].Data)
	}
	if notif.Recipient != owner.ID || notif.Sender != actor.ID || notif.SkillID != skill.ID {
		t.Fatalf("payload=%+v addressed wrong", notif)
	}
	if notif.ID == 0 {
		t.Fatal("event must carry the persisted notification id")
	}
	if notif.IsRead {
		t.Fatal("fresh notification is unread")
	}

	var persisted model.Notification
	if err := db.First(&persisted, notif.ID).Error; err != nil {
		t.Fatalf("event fired for a record that did not land: %v", err)
	}

	// 同一人再来一次：背书移除，verified 回落，不产生新通知
	res, err = svc.Toggle(ctx, actor.ID, skill.ID, owner.ID)
	if err != nil {
		t.Fatalf("repeat toggle: %v", err)
	}
	if !res.Removed || res.Count != 2 || res.Verified {
		t.Fatalf("res=%+v, want removed count=2 unverified", res)
	}

	events = emitter.all()
	if len(events) != 2 {
		t.Fatalf("events=%d, want 2", len(events))
	}
	if events[1].Event != ws.EventRemoveEndorsement {
		t.Fatalf("event=%q, want remove_endorsement", events[1].Event)
	}
	rm, ok := events[1].Data.(ws.RemoveEndorsementEvent)
	if !ok {
		t.Fatalf("payload type %T, want RemoveEndorsementEvent", events[1].Data)
	}
	if rm.Recipient != owner.ID || rm.Sender != actor.ID || rm.SkillID != skill.ID {
		t.Fatalf("payload=%+v addressed wrong", rm)
	}

	var n int64
	db.Model(&model.Notification{}).Count(&n)
	if n != 3 {
		t.Fatalf("notifications=%d, want 3 (one per add, none removed)", n)
	}
}

// 双 toggle 幂等：回到无背书、未验证的初始状态
func TestToggleTwiceReturnsToInitialState(t *testing.T) {
	svc, _, db := newTestEngine(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner", "Owner")
	actor := testutil.SeedUser(t, db, "actor", "Actor")
	skill := testutil.SeedSkill(t, db, owner.ID, "Go")

	if _, err := svc.Toggle(ctx, actor.ID, skill.ID, owner.ID); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := svc.Toggle(ctx, actor.ID, skill.ID, owner.ID); err != nil {
		t.Fatalf("second: %v", err)
	}

	var n int64
	db.Model(&model.Endorsement{}).Count(&n)
	if n != 0 {
		t.Fatalf("endorsements=%d, want 0", n)
	}
	var got model.Skill
	db.First(&got, skill.ID)
	if got.Verified {
		t.Fatal("verified should be false with zero endorsements")
	}
}

func TestCountForSkillFallsBackToStore(t *testing.T) {
	svc, _, db := newTestEngine(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner", "Owner")
	actor := testutil.SeedUser(t, db, "actor", "Actor")
	skill := testutil.SeedSkill(t, db, owner.ID, "Go")
	if _, err := svc.Toggle(ctx, actor.ID, skill.ID, owner.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// cache 未配置时直接回权威计数
	n, err := svc.CountForSkill(ctx, skill.ID)
	if err != nil || n != 1 {
		t.Fatalf("count=%d err=%v, want 1", n, err)
	}
}
