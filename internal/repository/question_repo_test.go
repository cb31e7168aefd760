package repository

import (
	"context"
	"testing"

	"github.com/yuqie6/onepercent/internal/schema"
	"github.com/yuqie6/onepercent/internal/testutil"
)

func TestQuestionRepositoryUpsertAndGet(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	q := &schema.DailyQuestion{UserID: 1, LogDate: "2024-03-01", Payload: `[{"q":"1+1?"}]`}
	if err := repo.Upsert(ctx, q); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	got, err := repo.GetByDate(ctx, 1, "2024-03-01")
	if err != nil {
		t.Fatalf("GetByDate error: %v", err)
	}
	if got == nil || got.Payload != `[{"q":"1+1?"}]` {
		t.Fatalf("got=%+v, want 原样返回 payload", got)
	}

	// 同日重新生成：整体覆盖
	q2 := &schema.DailyQuestion{UserID: 1, LogDate: "2024-03-01", Payload: `[{"q":"2+2?"}]`}
	if err := repo.Upsert(ctx, q2); err != nil {
		t.Fatalf("二次 Upsert error: %v", err)
	}
	got, err = repo.GetByDate(ctx, 1, "2024-03-01")
	if err != nil {
		t.Fatalf("GetByDate error: %v", err)
	}
	if got == nil || got.Payload != `[{"q":"2+2?"}]` {
		t.Fatalf("got=%+v, want 覆盖后的 payload", got)
	}

	var count int64
	if err := db.Model(&schema.DailyQuestion{}).Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 1 {
		t.Fatalf("count=%d, 同一槽位不应产生多行", count)
	}
}

func TestQuestionRepositoryGetOtherDateAbsent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	q := &schema.DailyQuestion{UserID: 1, LogDate: "2024-03-01", Payload: `{}`}
	if err := repo.Upsert(ctx, q); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	// 新的日历日是全新槽位，绝不返回前一天的缓存
	got, err := repo.GetByDate(ctx, 1, "2024-03-02")
	if err != nil {
		t.Fatalf("GetByDate error: %v", err)
	}
	if got != nil {
		t.Fatalf("got=%+v, want nil（未命中）", got)
	}
}
