package schema

import "time"

// User 家庭成员用户
// 启动时按名单播种（insert-if-absent），运行期不改名不删除。
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Avatar    string    `gorm:"size:16;default:🧒" json:"avatar"` // emoji 头像
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
