package service

import (
	"errors"

	"SkillSphere/internal/pkg"
	"SkillSphere/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

// SendCode 发送验证码：先写 Redis 再发邮件，发送失败时回收验证码
func (s *EmailService) SendCode(scope, email string) error {
	if scope != redis.ScopeRegister && scope != redis.ScopeReset {
		return errors.New("unknown scope")
	}
	if email == "" {
		return errors.New("email required")
	}

	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetCode(scope, email, code); err != nil {
		return err
	}

	subject := "Verification code"
	if scope == redis.ScopeReset {
		subject = "Password reset code"
	}
	html := pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject, html); err != nil {
		_ = s.rds.DeleteCode(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验并一次性消费验证码
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetCode(scope, email)
	if err != nil {
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
