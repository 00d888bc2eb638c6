package testutil

import (
	"testing"

	"SkillSphere/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB 打开内存 SQLite 并自动迁移所有表
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Skill{},
		&model.Endorsement{},
		&model.Notification{},
		&model.EndorseOutbox{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// SeedUser 插入一个测试用户
func SeedUser(t *testing.T, db *gorm.DB, username, name string) *model.User {
	t.Helper()
	u := &model.User{
		Username: username,
		Name:     name,
		Password: "x",
		Email:    username + "@example.com",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// SeedSkill 插入一个测试技能
func SeedSkill(t *testing.T, db *gorm.DB, owner uint64, name string) *model.Skill {
	t.Helper()
	s := &model.Skill{
		UserID:           owner,
		Name:             name,
		Category:         "backend",
		ProficiencyLevel: 3,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed skill %s: %v", name, err)
	}
	return s
}
