package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/yuqie6/onepercent/internal/schema"
	"gorm.io/gorm"
)

func openTempDatabase(t *testing.T) *Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "onepercent.db")
	d, err := NewDatabase(path, nil)
	if err != nil {
		t.Fatalf("NewDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if d.SafeMode {
		t.Fatalf("不应进入安全模式: %s", d.MigrationError)
	}
	return d
}

func TestNewDatabaseSeedsDefaultUsers(t *testing.T) {
	d := openTempDatabase(t)

	var users []schema.User
	if err := d.DB.Order("id ASC").Find(&users).Error; err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("len=%d, want 4", len(users))
	}
	if users[0].Name != "Arjun" || users[0].Avatar != "🦁" {
		t.Fatalf("users[0]=%+v", users[0])
	}
}

func TestNewDatabaseInitIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onepercent.db")

	d1, err := NewDatabase(path, nil)
	if err != nil {
		t.Fatalf("第一次打开失败: %v", err)
	}
	// 改写一个用户头像，二次初始化不得覆盖
	if err := d1.DB.Model(&schema.User{}).Where("name = ?", "Krish").Update("avatar", "🎸").Error; err != nil {
		t.Fatalf("更新头像失败: %v", err)
	}
	if err := d1.Close(); err != nil {
		t.Fatalf("关闭失败: %v", err)
	}

	d2, err := NewDatabase(path, nil)
	if err != nil {
		t.Fatalf("第二次打开失败: %v", err)
	}
	defer d2.Close()

	if d2.SchemaVersion != latestSchemaVersion {
		t.Fatalf("SchemaVersion=%d, want %d", d2.SchemaVersion, latestSchemaVersion)
	}

	var users []schema.User
	if err := d2.DB.Find(&users).Error; err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("重复初始化不应新增用户, len=%d", len(users))
	}
	var krish schema.User
	if err := d2.DB.Where("name = ?", "Krish").First(&krish).Error; err != nil {
		t.Fatalf("查询 Krish 失败: %v", err)
	}
	if krish.Avatar != "🎸" {
		t.Fatalf("播种覆盖了既有用户数据: %+v", krish)
	}
}

func TestWithTransactionRollback(t *testing.T) {
	d := openTempDatabase(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := d.WithTransaction(ctx, func(tx *gorm.DB) error {
		score := &schema.ActivityScore{UserID: 1, ActivityType: "Math", ActivityName: "Drill", Score: 10, MaxScore: 100, LogDate: "2024-01-01"}
		if err := tx.Create(score).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want boom", err)
	}

	var count int64
	if err := d.DB.Model(&schema.ActivityScore{}).Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 0 {
		t.Fatalf("count=%d, 回滚后不应有残留写入", count)
	}
}
