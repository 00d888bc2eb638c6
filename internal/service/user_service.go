package service

import (
	"errors"

	"SkillSphere/internal/model"
	"SkillSphere/internal/pkg"
	"SkillSphere/internal/repository/mysql"
	"SkillSphere/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     *mysql.UserRepository
	rUser    *redis.UserRepository
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		rUser:    &redis.UserRepository{},
		emailSvc: emailSvc,
	}
}

func (s *UserService) Register(username, name, password, email, code string) error {
	ok, err := s.emailSvc.VerifyCode(redis.ScopeRegister, email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Name:     name,
		Password: string(hash),
		Email:    email,
	}
	return s.repo.Create(user)
}

// Login 签发 token 对并把 access token 写入 Redis 作为唯一登录态
func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rUser.DeleteUserToken(usrID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	// 新 access token 同步进 Redis，旧的随之失效
	if err = s.rUser.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ResetPassword 凭邮箱验证码重置密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(redis.ScopeReset, email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

// ChangePassword 登录态修改密码
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

func (s *UserService) Profile(usrID uint64) (*model.User, error) {
	return s.repo.FindByID(usrID)
}
