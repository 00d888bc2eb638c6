package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"

	ScopeRegister = "register"
	ScopeReset    = "reset"
)

var (
	ErrEmailCodeNotFound  = errors.New("email code not found")
	ErrEmailCodeSetFailed = errors.New("email code set failed")
	ErrEmailCodeDelFailed = errors.New("email code delete failed")
)

type EmailRepository struct{}

func codeKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
}

func (e *EmailRepository) SetCode(scope, email, code string) error {
	if err := Client.Set(context.Background(), codeKey(scope, email), code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrEmailCodeSetFailed
	}
	return nil
}

func (e *EmailRepository) GetCode(scope, email string) (string, error) {
	val, err := Client.Get(context.Background(), codeKey(scope, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrEmailCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// DeleteCode 幂等删除
func (e *EmailRepository) DeleteCode(scope, email string) error {
	if err := Client.Del(context.Background(), codeKey(scope, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
