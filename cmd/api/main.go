package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SkillSphere/internal/auth"
	"SkillSphere/internal/config"
	"SkillSphere/internal/handler"
	"SkillSphere/internal/pkg"
	"SkillSphere/internal/repository/mysql"
	"SkillSphere/internal/repository/redis"
	"SkillSphere/internal/router"
	"SkillSphere/internal/service"
	"SkillSphere/internal/ws"
)

func main() {
	cfg, err := config.Load(os.Getenv("SKILLSPHERE_CONFIG"))
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	pkg.InitJWT(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	if err := mysql.InitDB(cfg.MySQL.DSN); err != nil {
		slog.Error("mysql init failed", "err", err)
		os.Exit(1)
	}
	if err := mysql.AutoMigrate(mysql.DB); err != nil {
		slog.Error("auto migrate failed", "err", err)
		os.Exit(1)
	}

	if err := redis.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		slog.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer redis.Close()

	// 在线连接表，整个进程一份
	hub := ws.NewHub()

	producer := pkg.NewKafkaProducer(pkg.KafkaConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()

	emailSvc := service.NewEmailService(pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	deps := router.Deps{
		User:         handler.NewUserHandler(service.NewUserService(mysql.DB, emailSvc)),
		Email:        handler.NewEmailHandler(emailSvc),
		Skill:        handler.NewSkillHandler(service.NewSkillService(mysql.DB)),
		Endorsement:  handler.NewEndorsementHandler(service.NewEndorsementService(mysql.DB, hub)),
		Notification: handler.NewNotificationHandler(service.NewNotificationService(mysql.DB)),
		WS:           ws.NewHandler(hub, auth.VerifyAccess),
		Verify:       auth.VerifyAccess,
	}
	r := router.InitRouter(deps)

	// outbox 投递循环
	relayCtx, relayCancel := context.WithCancel(context.Background())
	defer relayCancel()
	relayer := service.NewOutboxRelayer(mysql.DB, service.KafkaSender(producer))
	go relayer.Run(relayCtx)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "err", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig.String())

	relayCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "err", err)
	}
}
