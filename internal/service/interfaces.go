package service

import (
	"context"

	"github.com/yuqie6/onepercent/internal/repository"
	"github.com/yuqie6/onepercent/internal/schema"
)

// 仓储依赖的最小接口集合（ISP），测试时可注入假实现。

type LoginRepository interface {
	Record(ctx context.Context, userID int64, date string) (bool, error)
	DistinctDatesDesc(ctx context.Context, userID int64) ([]string, error)
	DatesSince(ctx context.Context, userID int64, startDate string) ([]string, error)
	CountDistinctDates(ctx context.Context, userID int64) (int64, error)
}

type ScoreRepository interface {
	Append(ctx context.Context, score *schema.ActivityScore) error
	GetByDate(ctx context.Context, userID int64, date, activityType string) ([]schema.ActivityScore, error)
	GetSince(ctx context.Context, userID int64, startDate, activityType string) ([]schema.ActivityScore, error)
	StatsByDate(ctx context.Context, userID int64, date string) ([]repository.TypeStat, error)
}

type ReadingRepository interface {
	Append(ctx context.Context, progress *schema.ReadingProgress) error
	GetSince(ctx context.Context, userID int64, startDate string) ([]schema.ReadingProgress, error)
}

type QuestionRepository interface {
	Upsert(ctx context.Context, question *schema.DailyQuestion) error
	GetByDate(ctx context.Context, userID int64, date string) (*schema.DailyQuestion, error)
}
