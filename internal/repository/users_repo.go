// Package repository 持久化层：每个实体一个 Repository，
// 单条参数化 SQL 语句完成一次操作，引用/唯一性检查与写入放在同一事务内
package repository

import (
	"context"

	"backoffice-data/internal/domain"
)

// UsersRepository 账号Repository接口
type UsersRepository interface {
	// CreateUser 创建账号；用户名已存在时返回 Conflict
	CreateUser(ctx context.Context, username, passwordHash string, role domain.UserRole) (int64, error)

	// GetUserByUsername 按用户名查询账号；不存在时返回 NotFound
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
