package repository

import (
	"context"
	"fmt"

	"github.com/yuqie6/onepercent/internal/schema"
	"gorm.io/gorm"
)

// ReadingRepository 阅读进度仓储（只追加）
type ReadingRepository struct {
	db *gorm.DB
}

// NewReadingRepository 创建阅读进度仓储
func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Append 追加一条阅读进度记录
func (r *ReadingRepository) Append(ctx context.Context, progress *schema.ReadingProgress) error {
	if err := r.db.WithContext(ctx).Create(progress).Error; err != nil {
		return fmt.Errorf("写入阅读进度失败: %w", err)
	}
	return nil
}

// GetSince 某用户自 startDate（含）以来的阅读记录，最新在前
func (r *ReadingRepository) GetSince(ctx context.Context, userID int64, startDate string) ([]schema.ReadingProgress, error) {
	var records []schema.ReadingProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND log_date >= ?", userID, startDate).
		Order("completed_at DESC").Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询阅读历史失败: %w", err)
	}
	return records, nil
}
