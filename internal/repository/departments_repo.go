package repository

import (
	"context"

	"backoffice-data/internal/domain"
)

// DepartmentsRepository 科室Repository接口
type DepartmentsRepository interface {
	// CreateDepartment 创建科室；科室名已存在时返回 Conflict
	CreateDepartment(ctx context.Context, name, headDoctor string) (int64, error)

	// ListDepartments 查询全部科室（不保证顺序，按插入序返回）
	ListDepartments(ctx context.Context) ([]*domain.Department, error)

	// DepartmentExists 科室是否存在
	DepartmentExists(ctx context.Context, id int64) (bool, error)
}
