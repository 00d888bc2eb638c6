package auth

import (
	"errors"
	"strings"

	"SkillSphere/internal/pkg"
	"SkillSphere/internal/repository/redis"
)

// ErrUnauthorized 对外只暴露一种失败，不泄露凭证哪一段有问题
var ErrUnauthorized = errors.New("unauthorized")

// VerifyFunc 凭证 -> 用户身份。HTTP 中间件与 WS 握手共用同一实现，
// 保证 REST 鉴权和房间寻址落在同一个身份空间里。
type VerifyFunc func(token string) (uint64, error)

// VerifyAccess 解析 access token 并与 Redis 中的登录态比对，通过后滑动续期
func VerifyAccess(token string) (uint64, error) {
	if token == "" {
		return 0, ErrUnauthorized
	}
	claims, err := pkg.ParseAccess(token)
	if err != nil {
		return 0, ErrUnauthorized
	}

	userRep := &redis.UserRepository{}
	origin, err := userRep.GetUserToken(claims.UserID)
	if err != nil || origin != token {
		// token 有效但已在别处登录，同样视为未授权
		return 0, ErrUnauthorized
	}

	_ = userRep.ExtendUserToken(claims.UserID)
	return claims.UserID, nil
}

// BearerToken 从 Authorization 头取出 token，格式不符返回空串
func BearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
