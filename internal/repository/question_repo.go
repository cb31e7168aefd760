package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/onepercent/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionRepository 每日一题缓存仓储
type QuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository 创建每日一题缓存仓储
func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Upsert 插入或整体覆盖某 (user, date) 槽位的缓存
func (r *QuestionRepository) Upsert(ctx context.Context, question *schema.DailyQuestion) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(question).Error
	if err != nil {
		return fmt.Errorf("写入每日一题缓存失败: %w", err)
	}
	return nil
}

// GetByDate 按精确日期取缓存，未命中返回 (nil, nil)，绝不回退到其他日期
func (r *QuestionRepository) GetByDate(ctx context.Context, userID int64, date string) (*schema.DailyQuestion, error) {
	var question schema.DailyQuestion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND log_date = ?", userID, date).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询每日一题缓存失败: %w", err)
	}
	return &question, nil
}
