package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SkillSphere/internal/model"
	"SkillSphere/internal/pkg"
	"SkillSphere/internal/repository/mysql"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.EndorseOutbox) error

// OutboxRelayer 把事务内落库的背书事件批量转投出去。
// 跨实例广播由下游消费者负责，这里只保证至少一次投递。
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		slog.Error("outbox query failed", "err", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender 按技能 id 作 key，同一技能的事件保序进同一分区
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.EndorseOutbox) error {
		return p.Send(ctx, fmt.Sprintf("%d", ob.SkillID), []byte(ob.Payload))
	}
}

// LogSender 本地开发用的占位投递
func LogSender(ctx context.Context, ob *model.EndorseOutbox) error {
	slog.Info("outbox send", "type", ob.EventType, "actor", ob.Actor, "recipient", ob.Recipient, "skill_id", ob.SkillID)
	return nil
}
