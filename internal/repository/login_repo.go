package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yuqie6/onepercent/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoginRepository 每日登录仓储
type LoginRepository struct {
	db *gorm.DB
}

// NewLoginRepository 创建每日登录仓储
func NewLoginRepository(db *gorm.DB) *LoginRepository {
	return &LoginRepository{db: db}
}

// Record 记录某用户某日的出现，同日重复记录被唯一索引幂等吸收。
// 返回值表示本次是否真正插入了新行。
func (r *LoginRepository) Record(ctx context.Context, userID int64, date string) (bool, error) {
	login := schema.DailyLogin{UserID: userID, LogDate: date}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&login)
	if result.Error != nil {
		return false, fmt.Errorf("记录每日登录失败: %w", result.Error)
	}

	inserted := result.RowsAffected > 0
	if inserted {
		slog.Debug("记录每日登录", "user_id", userID, "date", date)
	}
	return inserted, nil
}

// DistinctDatesDesc 某用户全部去重登录日期，降序
func (r *LoginRepository) DistinctDatesDesc(ctx context.Context, userID int64) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).
		Model(&schema.DailyLogin{}).
		Where("user_id = ?", userID).
		Distinct("log_date").
		Order("log_date DESC").
		Pluck("log_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("查询登录日期失败: %w", err)
	}
	return dates, nil
}

// DatesSince 某用户自 startDate（含）以来的登录日期，升序
func (r *LoginRepository) DatesSince(ctx context.Context, userID int64, startDate string) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).
		Model(&schema.DailyLogin{}).
		Where("user_id = ? AND log_date >= ?", userID, startDate).
		Distinct("log_date").
		Order("log_date ASC").
		Pluck("log_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("查询登录日期失败: %w", err)
	}
	return dates, nil
}

// CountDistinctDates 某用户累计登录天数（不限窗口）
func (r *LoginRepository) CountDistinctDates(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.DailyLogin{}).
		Where("user_id = ?", userID).
		Distinct("log_date").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计登录天数失败: %w", err)
	}
	return count, nil
}
