package service

import "errors"

// 领域错误，handler 层映射到 HTTP 状态码
var (
	ErrInvalidID            = errors.New("invalid id")
	ErrSelfEndorse          = errors.New("cannot endorse your own skill")
	ErrSkillNotFound        = errors.New("skill not found")
	ErrSkillExists          = errors.New("skill already exists")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoPermission         = errors.New("no permission")
)
