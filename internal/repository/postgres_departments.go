package repository

import (
	"context"
	"database/sql"

	"backoffice-data/internal/domain"
)

// PostgresDepartmentsRepository 科室Repository实现
type PostgresDepartmentsRepository struct {
	db *sql.DB
}

// NewPostgresDepartmentsRepository 创建科室Repository
func NewPostgresDepartmentsRepository(db *sql.DB) *PostgresDepartmentsRepository {
	return &PostgresDepartmentsRepository{db: db}
}

// 确保实现了接口
var _ DepartmentsRepository = (*PostgresDepartmentsRepository)(nil)

// CreateDepartment 创建科室
// 同名检查与插入在同一事务内完成；唯一索引兜底并发冲突
func (r *PostgresDepartmentsRepository) CreateDepartment(ctx context.Context, name, headDoctor string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapSQLError(err, "create department")
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM departments WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return 0, mapSQLError(err, "create department")
	}
	if exists {
		return 0, domain.NewConflict("department already exists")
	}

	var head any
	if headDoctor != "" {
		head = headDoctor
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO departments (name, head_doctor)
		 VALUES ($1, $2)
		 RETURNING id`,
		name, head,
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err, "create department")
	}

	if err := tx.Commit(); err != nil {
		return 0, mapSQLError(err, "create department")
	}
	return id, nil
}

// ListDepartments 查询全部科室
func (r *PostgresDepartmentsRepository) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	query := `
		SELECT
			id,
			name,
			COALESCE(head_doctor, '') AS head_doctor,
			created_on
		FROM departments
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapSQLError(err, "list departments")
	}
	defer rows.Close()

	departments := []*domain.Department{}
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.HeadDoctor, &d.CreatedOn); err != nil {
			return nil, mapSQLError(err, "list departments")
		}
		departments = append(departments, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLError(err, "list departments")
	}

	return departments, nil
}

// DepartmentExists 科室是否存在
func (r *PostgresDepartmentsRepository) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM departments WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, mapSQLError(err, "check department")
	}
	return exists, nil
}
