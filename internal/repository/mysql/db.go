package mysql

import (
	"SkillSphere/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// AutoMigrate 自动建表（开发阶段 OK）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Skill{},
		&model.Endorsement{},
		&model.Notification{},
		&model.EndorseOutbox{},
	)
}
