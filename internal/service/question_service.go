package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yuqie6/onepercent/internal/repository"
	"github.com/yuqie6/onepercent/internal/schema"
)

// QuestionService 每日一题缓存服务
// 外部内容生成方生成一次后写入，当天内重复进入测验页直接读缓存。
type QuestionService struct {
	questionRepo QuestionRepository
	now          func() time.Time
}

// NewQuestionService 创建每日一题缓存服务，now 为空时取 time.Now
func NewQuestionService(questionRepo QuestionRepository, now func() time.Time) *QuestionService {
	if now == nil {
		now = time.Now
	}
	return &QuestionService{questionRepo: questionRepo, now: now}
}

// Put 写入/覆盖某 (user, date) 的题目缓存；date 为空取当前日历日
func (s *QuestionService) Put(ctx context.Context, userID int64, date, payload string) error {
	date, err := s.normalizeDate(date)
	if err != nil {
		return err
	}
	return s.questionRepo.Upsert(ctx, &schema.DailyQuestion{
		UserID:  userID,
		LogDate: date,
		Payload: payload,
	})
}

// Get 读取某 (user, date) 的题目缓存
// 命中返回 (payload, true)；未命中返回 ("", false)，绝不回退到其他日期。
func (s *QuestionService) Get(ctx context.Context, userID int64, date string) (string, bool, error) {
	date, err := s.normalizeDate(date)
	if err != nil {
		return "", false, err
	}
	question, err := s.questionRepo.GetByDate(ctx, userID, date)
	if err != nil {
		return "", false, err
	}
	if question == nil {
		return "", false, nil
	}
	return question.Payload, true, nil
}

func (s *QuestionService) normalizeDate(date string) (string, error) {
	if date == "" {
		return repository.DateOf(s.now()), nil
	}
	if _, err := repository.ParseDate(date); err != nil {
		return "", fmt.Errorf("非法日期 %q: %w", date, err)
	}
	return date, nil
}
