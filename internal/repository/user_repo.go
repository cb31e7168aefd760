package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/onepercent/internal/schema"
	"gorm.io/gorm"
)

// UserRepository 用户仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByName 按名字查用户，不存在返回 (nil, nil)
func (r *UserRepository) GetByName(ctx context.Context, name string) (*schema.User, error) {
	var user schema.User
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// GetByID 按 ID 查用户，不存在返回 (nil, nil)
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*schema.User, error) {
	var user schema.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// List 按创建顺序列出全部用户
func (r *UserRepository) List(ctx context.Context) ([]schema.User, error) {
	var users []schema.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("列出用户失败: %w", err)
	}
	return users, nil
}
