package model

import "time"

// 角色
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
	RoleViewer  = "viewer"
)

// ValidRole 判断角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser, RoleViewer:
		return true
	}
	return false
}

// Permission 角色权限矩阵，对应 permissions，(role, resource) 唯一
type Permission struct {
	ID        int       `gorm:"primaryKey;autoIncrement"  json:"id"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	Resource  string    `gorm:"type:varchar(50);not null" json:"resource"`
	CanRead   bool      `gorm:"not null;default:false"    json:"can_read"`
	CanCreate bool      `gorm:"not null;default:false"    json:"can_create"`
	CanUpdate bool      `gorm:"not null;default:false"    json:"can_update"`
	CanDelete bool      `gorm:"not null;default:false"    json:"can_delete"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"   json:"updated_at"`
}

// TableName 指定表名
func (Permission) TableName() string { return "permissions" }
