package service

import (
	"context"
	"testing"

	"github.com/yuqie6/onepercent/internal/repository"
	"github.com/yuqie6/onepercent/internal/schema"
	"github.com/yuqie6/onepercent/internal/testutil"
)

func newScoreServiceForTest(t *testing.T, today string) (*ScoreService, context.Context) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(
		repository.NewScoreRepository(db),
		repository.NewReadingRepository(db),
		nil,
		fixedClock(today),
	)
	return svc, context.Background()
}

// Ana 场景：同日两轮 Math，最新在前，均分 90。
func TestRecordScoreAndTodayScores(t *testing.T) {
	svc, ctx := newScoreServiceForTest(t, "2024-02-01")

	if err := svc.RecordScore(ctx, 1, "Math", "Counting", 80, 100, "4/5 correct"); err != nil {
		t.Fatalf("RecordScore error: %v", err)
	}
	if err := svc.RecordScore(ctx, 1, "Math", "Addition", 100, 100, "5/5 correct"); err != nil {
		t.Fatalf("RecordScore error: %v", err)
	}

	scores, err := svc.TodayScores(ctx, 1, "Math")
	if err != nil {
		t.Fatalf("TodayScores error: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("len=%d, want 2", len(scores))
	}
	if scores[0].ActivityName != "Addition" {
		t.Fatalf("最新记录应在最前, got %s", scores[0].ActivityName)
	}
	if scores[0].LogDate != "2024-02-01" {
		t.Fatalf("LogDate=%s, want 2024-02-01", scores[0].LogDate)
	}

	summary, err := svc.TodaySummary(ctx, 1)
	if err != nil {
		t.Fatalf("TodaySummary error: %v", err)
	}
	if len(summary) != 1 || summary[0].ActivityType != "Math" {
		t.Fatalf("summary=%+v", summary)
	}
	if summary[0].Count != 2 || summary[0].AvgScore != 90 {
		t.Fatalf("summary=%+v, want count=2 avg=90", summary[0])
	}
}

func TestScoreHistoryWindowBoundary(t *testing.T) {
	db := testutil.OpenTestDB(t)
	scoreRepo := repository.NewScoreRepository(db)
	ctx := context.Background()

	// 以 2024-02-01 为“今天”：30 天窗口起点是 2024-01-02（闭边界）
	writer := NewScoreService(scoreRepo, repository.NewReadingRepository(db), nil, fixedClock("2024-01-02"))
	if err := writer.RecordScore(ctx, 1, "GK", "Quiz", 50, 100, ""); err != nil {
		t.Fatalf("RecordScore error: %v", err)
	}
	writer = NewScoreService(scoreRepo, repository.NewReadingRepository(db), nil, fixedClock("2024-01-01"))
	if err := writer.RecordScore(ctx, 1, "GK", "Quiz", 60, 100, ""); err != nil {
		t.Fatalf("RecordScore error: %v", err)
	}

	reader := NewScoreService(scoreRepo, repository.NewReadingRepository(db), nil, fixedClock("2024-02-01"))
	history, err := reader.ScoreHistory(ctx, 1, "", 30)
	if err != nil {
		t.Fatalf("ScoreHistory error: %v", err)
	}
	if len(history) != 1 || history[0].LogDate != "2024-01-02" {
		t.Fatalf("history=%+v, want 仅 2024-01-02（恰好 30 天在窗内，31 天在窗外）", history)
	}
}

func TestReadingProgressRoundTrip(t *testing.T) {
	svc, ctx := newScoreServiceForTest(t, "2024-02-01")

	if err := svc.RecordReadingProgress(ctx, 1, "story-1", "The Lion", 5, 4, 300); err != nil {
		t.Fatalf("RecordReadingProgress error: %v", err)
	}
	if err := svc.RecordReadingProgress(ctx, 1, "story-2", "The Rocket", 0, 0, 120); err != nil {
		t.Fatalf("RecordReadingProgress error: %v", err)
	}

	history, err := svc.ReadingHistory(ctx, 1, 30)
	if err != nil {
		t.Fatalf("ReadingHistory error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len=%d, want 2", len(history))
	}

	// 零题故事不得除零
	var zero schema.ReadingProgress
	for _, r := range history {
		if r.StoryID == "story-2" {
			zero = r
		}
	}
	if got := ReadingAccuracy(zero); got != 0 {
		t.Fatalf("零题正确率=%v, want 0", got)
	}

	// 平均正确率先逐条算百分比再平均：(0.8 + 0) / 2
	if got := AverageReadingAccuracy(history); got != 0.4 {
		t.Fatalf("平均正确率=%v, want 0.4", got)
	}
}

func TestAverageReadingAccuracyEmpty(t *testing.T) {
	if got := AverageReadingAccuracy(nil); got != 0 {
		t.Fatalf("空集平均=%v, want 0", got)
	}
}
