package database

import (
	"challengehub_backend/internal/config"
	"challengehub_backend/internal/model"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Challenge{},
		&model.Acceptance{},
		&model.Submission{},
		&model.Review{},
		&model.PenaltyRecord{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认管理员账号
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Username:    "admin",
			Password:    string(hashed),
			DisplayName: "系统管理员",
			Role:        model.Admin,
			Department:  "IT",
		}
		db.Create(admin)
	}

	// 示例挑战（仅空库时插入，方便前端联调）
	var challengeCount int64
	db.Model(&model.Challenge{}).Count(&challengeCount)
	if challengeCount == 0 {
		deadline := time.Now().AddDate(0, 1, 0)
		samples := []model.Challenge{
			{
				Title:           "内部工具自动化",
				Description:     "为团队重复性工作设计一个自动化方案并给出可运行的原型。",
				ExpectedOutcome: "可演示的原型 + 使用说明",
				Tags:            []string{"automation", "tooling"},
				Status:          model.ChallengeOpen,
				Points:          500,
				PenaltyPoints:   50,
				Deadline:        &deadline,
				CreatedBy:       "admin",
			},
			{
				Title:           "数据看板改造",
				Description:     "将现有周报数据整理为实时可视化看板。",
				ExpectedOutcome: "上线的看板链接",
				Tags:            []string{"data", "visualization"},
				Status:          model.ChallengeOpen,
				Points:          300,
				PenaltyPoints:   30,
				Deadline:        &deadline,
				CreatedBy:       "admin",
			},
		}
		for _, c := range samples {
			db.Create(&c)
		}
	}

	return db, nil
}
