package repository

import (
	"context"
	"fmt"

	"github.com/yuqie6/onepercent/internal/schema"
	"gorm.io/gorm"
)

// ScoreRepository 活动得分仓储（只追加台账）
type ScoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository 创建活动得分仓储
func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Append 追加一条得分记录，写入后不再更新
func (r *ScoreRepository) Append(ctx context.Context, score *schema.ActivityScore) error {
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		return fmt.Errorf("写入得分记录失败: %w", err)
	}
	return nil
}

// GetByDate 某用户某日的得分记录，最新在前，activityType 为空表示不过滤
func (r *ScoreRepository) GetByDate(ctx context.Context, userID int64, date, activityType string) ([]schema.ActivityScore, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND log_date = ?", userID, date)
	if activityType != "" {
		query = query.Where("activity_type = ?", activityType)
	}

	var scores []schema.ActivityScore
	err := query.Order("completed_at DESC").Order("id DESC").Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("查询当日得分失败: %w", err)
	}
	return scores, nil
}

// GetSince 某用户自 startDate（含）以来的得分记录，按日期升序（趋势视图用）
func (r *ScoreRepository) GetSince(ctx context.Context, userID int64, startDate, activityType string) ([]schema.ActivityScore, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND log_date >= ?", userID, startDate)
	if activityType != "" {
		query = query.Where("activity_type = ?", activityType)
	}

	var scores []schema.ActivityScore
	err := query.Order("log_date ASC").Order("id ASC").Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("查询得分历史失败: %w", err)
	}
	return scores, nil
}

// TypeStat 某活动类型的当日聚合
type TypeStat struct {
	ActivityType string  `json:"activity_type"`
	Count        int64   `json:"count"`
	AvgScore     float64 `json:"avg_score"`
	BestScore    int     `json:"best_score"`
}

// StatsByDate 某用户某日按活动类型聚合（条数 / 原始分均值 / 最高分）
func (r *ScoreRepository) StatsByDate(ctx context.Context, userID int64, date string) ([]TypeStat, error) {
	var stats []TypeStat
	err := r.db.WithContext(ctx).
		Model(&schema.ActivityScore{}).
		Select("activity_type, COUNT(*) as count, AVG(score) as avg_score, MAX(score) as best_score").
		Where("user_id = ? AND log_date = ?", userID, date).
		Group("activity_type").
		Order("activity_type ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("聚合当日得分失败: %w", err)
	}
	return stats, nil
}
