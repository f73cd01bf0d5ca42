package domain

import "time"

// UserRole 账号角色（闭集，创建后不可变更）
type UserRole string

const (
	RoleDoctor UserRole = "doctor"
	RoleAdmin  UserRole = "admin"
	RoleStaff  UserRole = "staff"
)

// ValidUserRole 校验角色是否在枚举内
func ValidUserRole(role string) bool {
	switch UserRole(role) {
	case RoleDoctor, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// User 账号领域模型（对应 users 表）
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`      // UNIQUE
	PasswordHash string    `db:"password_hash"` // bcrypt
	Role         UserRole  `db:"role"`
	CreatedOn    time.Time `db:"created_on"`
}
