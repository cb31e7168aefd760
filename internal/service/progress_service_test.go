package service

import (
	"context"
	"testing"
	"time"

	"github.com/yuqie6/onepercent/internal/repository"
	"github.com/yuqie6/onepercent/internal/testutil"
)

func fixedClock(date string) func() time.Time {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

type fakeLoginRepo struct {
	datesDesc []string
	recorded  []string
}

func (f *fakeLoginRepo) Record(ctx context.Context, userID int64, date string) (bool, error) {
	for _, d := range f.recorded {
		if d == date {
			return false, nil
		}
	}
	f.recorded = append(f.recorded, date)
	return true, nil
}

func (f *fakeLoginRepo) DistinctDatesDesc(ctx context.Context, userID int64) ([]string, error) {
	return f.datesDesc, nil
}

func (f *fakeLoginRepo) DatesSince(ctx context.Context, userID int64, startDate string) ([]string, error) {
	var out []string
	for i := len(f.datesDesc) - 1; i >= 0; i-- {
		if f.datesDesc[i] >= startDate {
			out = append(out, f.datesDesc[i])
		}
	}
	return out, nil
}

func (f *fakeLoginRepo) CountDistinctDates(ctx context.Context, userID int64) (int64, error) {
	return int64(len(f.datesDesc)), nil
}

func TestCurrentStreakConsecutiveDays(t *testing.T) {
	repo := &fakeLoginRepo{datesDesc: []string{"2024-01-03", "2024-01-02", "2024-01-01"}}
	svc := NewProgressService(repo, nil, fixedClock("2024-01-03"))

	streak, err := svc.CurrentStreak(context.Background(), 1)
	if err != nil {
		t.Fatalf("CurrentStreak error: %v", err)
	}
	if streak != 3 {
		t.Fatalf("streak=%d, want 3", streak)
	}
}

func TestCurrentStreakZeroWithoutToday(t *testing.T) {
	// 昨天和前天都有登录，但今天没有：连续数为 0 而不是 2
	repo := &fakeLoginRepo{datesDesc: []string{"2024-01-02", "2024-01-01"}}
	svc := NewProgressService(repo, nil, fixedClock("2024-01-03"))

	streak, err := svc.CurrentStreak(context.Background(), 1)
	if err != nil {
		t.Fatalf("CurrentStreak error: %v", err)
	}
	if streak != 0 {
		t.Fatalf("streak=%d, want 0", streak)
	}
}

func TestCurrentStreakBreaksAtGap(t *testing.T) {
	repo := &fakeLoginRepo{datesDesc: []string{"2024-01-05", "2024-01-03", "2024-01-02"}}
	svc := NewProgressService(repo, nil, fixedClock("2024-01-05"))

	streak, err := svc.CurrentStreak(context.Background(), 1)
	if err != nil {
		t.Fatalf("CurrentStreak error: %v", err)
	}
	if streak != 1 {
		t.Fatalf("断档后 streak=%d, want 1", streak)
	}
}

func TestCurrentStreakEmptyHistory(t *testing.T) {
	svc := NewProgressService(&fakeLoginRepo{}, nil, fixedClock("2024-01-05"))

	streak, err := svc.CurrentStreak(context.Background(), 1)
	if err != nil {
		t.Fatalf("CurrentStreak error: %v", err)
	}
	if streak != 0 {
		t.Fatalf("streak=%d, want 0", streak)
	}
}

// Ana 场景：1/1、1/2、1/3 连续打卡后，跳过 1/4，1/5 再打卡。
func TestProgressScenarioEndToEnd(t *testing.T) {
	db := testutil.OpenTestDB(t)
	loginRepo := repository.NewLoginRepository(db)
	ctx := context.Background()

	svc := NewProgressService(loginRepo, nil, fixedClock("2024-01-03"))
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if err := svc.RecordLogin(ctx, 1, d); err != nil {
			t.Fatalf("RecordLogin %s error: %v", d, err)
		}
	}

	streak, err := svc.CurrentStreak(ctx, 1)
	if err != nil {
		t.Fatalf("CurrentStreak error: %v", err)
	}
	if streak != 3 {
		t.Fatalf("streak=%d, want 3", streak)
	}
	total, err := svc.TotalLoginDays(ctx, 1)
	if err != nil {
		t.Fatalf("TotalLoginDays error: %v", err)
	}
	if total != 3 {
		t.Fatalf("total=%d, want 3", total)
	}

	// 时间推进到 1/5，当天打卡
	svc = NewProgressService(loginRepo, nil, fixedClock("2024-01-05"))
	if err := svc.RecordLogin(ctx, 1, ""); err != nil {
		t.Fatalf("RecordLogin error: %v", err)
	}

	streak, err = svc.CurrentStreak(ctx, 1)
	if err != nil {
		t.Fatalf("CurrentStreak error: %v", err)
	}
	if streak != 1 {
		t.Fatalf("streak=%d, want 1", streak)
	}
	total, err = svc.TotalLoginDays(ctx, 1)
	if err != nil {
		t.Fatalf("TotalLoginDays error: %v", err)
	}
	if total != 4 {
		t.Fatalf("total=%d, want 4", total)
	}
}

func TestRecordLoginDuplicateKeepsTotal(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewProgressService(repository.NewLoginRepository(db), nil, fixedClock("2024-01-03"))
	ctx := context.Background()

	if err := svc.RecordLogin(ctx, 1, ""); err != nil {
		t.Fatalf("RecordLogin error: %v", err)
	}
	if err := svc.RecordLogin(ctx, 1, ""); err != nil {
		t.Fatalf("重复 RecordLogin 不应报错: %v", err)
	}

	total, err := svc.TotalLoginDays(ctx, 1)
	if err != nil {
		t.Fatalf("TotalLoginDays error: %v", err)
	}
	if total != 1 {
		t.Fatalf("total=%d, want 1", total)
	}
}

func TestLoginCalendarWindow(t *testing.T) {
	repo := &fakeLoginRepo{datesDesc: []string{"2024-01-05", "2024-01-03", "2023-12-01"}}
	svc := NewProgressService(repo, nil, fixedClock("2024-01-05"))

	dates, err := svc.LoginCalendar(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("LoginCalendar error: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2024-01-03" || dates[1] != "2024-01-05" {
		t.Fatalf("dates=%v, want [2024-01-03 2024-01-05]", dates)
	}
}

func TestRecordLoginRejectsBadDate(t *testing.T) {
	svc := NewProgressService(&fakeLoginRepo{}, nil, fixedClock("2024-01-05"))
	if err := svc.RecordLogin(context.Background(), 1, "01/05/2024"); err == nil {
		t.Fatal("非法日期应报错")
	}
}
