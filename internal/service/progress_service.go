package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuqie6/onepercent/internal/eventbus"
	"github.com/yuqie6/onepercent/internal/repository"
)

// ProgressService 登录与连续打卡服务
// 连续天数永远从原始登录日期现算，不落任何可能漂移的计数器。
type ProgressService struct {
	loginRepo LoginRepository
	hub       *eventbus.Hub
	now       func() time.Time
}

// NewProgressService 创建打卡服务，now 为空时取 time.Now
func NewProgressService(loginRepo LoginRepository, hub *eventbus.Hub, now func() time.Time) *ProgressService {
	if now == nil {
		now = time.Now
	}
	return &ProgressService{
		loginRepo: loginRepo,
		hub:       hub,
		now:       now,
	}
}

// RecordLogin 记录今日出现；date 为空时取当前日历日。
// 同日重复调用是无副作用的成功，不是错误。
func (s *ProgressService) RecordLogin(ctx context.Context, userID int64, date string) error {
	if date == "" {
		date = repository.DateOf(s.now())
	} else if _, err := repository.ParseDate(date); err != nil {
		return fmt.Errorf("非法日期 %q: %w", date, err)
	}

	inserted, err := s.loginRepo.Record(ctx, userID, date)
	if err != nil {
		return err
	}
	if inserted {
		s.hub.Publish(eventbus.Event{
			Type: eventbus.EventLoginRecorded,
			Data: map[string]any{"user_id": userID, "date": date},
		})
		slog.Info("记录打卡", "user_id", userID, "date", date)
	}
	return nil
}

// CurrentStreak 截至“今天”的连续打卡天数
// 算法：取去重日期降序，逐个与期望日期（今天减去已计天数）比对，
// 第一处断档即停。今天没有登录则直接为 0，昨天登录过也不算 1。
func (s *ProgressService) CurrentStreak(ctx context.Context, userID int64) (int, error) {
	dates, err := s.loginRepo.DistinctDatesDesc(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	streak := 0
	today := s.now()
	for _, d := range dates {
		expected := repository.DateOf(today.AddDate(0, 0, -streak))
		if d != expected {
			break
		}
		streak++
	}
	return streak, nil
}

// TotalLoginDays 累计打卡天数（不限窗口）
func (s *ProgressService) TotalLoginDays(ctx context.Context, userID int64) (int, error) {
	count, err := s.loginRepo.CountDistinctDates(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// LoginCalendar 回溯 days 天窗口内的登录日期（升序），供出勤格子渲染
func (s *ProgressService) LoginCalendar(ctx context.Context, userID int64, days int) ([]string, error) {
	start := repository.WindowStart(s.now(), days)
	return s.loginRepo.DatesSince(ctx, userID, start)
}
