package repository

import (
	"context"
	"database/sql"
	"time"

	"backoffice-data/internal/domain"
)

// PostgresAttendanceRepository 员工考勤Repository实现
type PostgresAttendanceRepository struct {
	db *sql.DB
}

// NewPostgresAttendanceRepository 创建员工考勤Repository
func NewPostgresAttendanceRepository(db *sql.DB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{db: db}
}

// 确保实现了接口
var _ AttendanceRepository = (*PostgresAttendanceRepository)(nil)

// CreateEmployee 登记员工
// 主键冲突由 mapSQLError 翻译为 Conflict
func (r *PostgresAttendanceRepository) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	var dept any
	if employee.Department != "" {
		dept = employee.Department
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (employee_id, name, department)
		 VALUES ($1, $2, $3)`,
		employee.EmployeeID, employee.Name, dept,
	)
	if err != nil {
		return mapSQLError(err, "create employee")
	}
	return nil
}

// CheckIn 签到
// 进行中记录检查与插入在同一事务内完成（单一进行中记录不变量）
func (r *PostgresAttendanceRepository) CheckIn(ctx context.Context, employeeID int64, at time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapSQLError(err, "check in")
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)`, employeeID,
	).Scan(&exists)
	if err != nil {
		return 0, mapSQLError(err, "check in")
	}
	if !exists {
		return 0, domain.NewNotFound("employee not found")
	}

	var open bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendance WHERE employee_id = $1 AND check_out IS NULL)`,
		employeeID,
	).Scan(&open)
	if err != nil {
		return 0, mapSQLError(err, "check in")
	}
	if open {
		return 0, domain.NewConflict("already checked in")
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO attendance (employee_id, check_in)
		 VALUES ($1, $2)
		 RETURNING attendance_id`,
		employeeID, at,
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err, "check in")
	}

	if err := tx.Commit(); err != nil {
		return 0, mapSQLError(err, "check in")
	}
	return id, nil
}

// CheckOut 签退
// 只关闭最近一条进行中记录
func (r *PostgresAttendanceRepository) CheckOut(ctx context.Context, employeeID int64, at time.Time) (*domain.Attendance, error) {
	query := `
		UPDATE attendance
		SET check_out = $2,
		    total_hours = EXTRACT(EPOCH FROM ($2 - check_in)) / 3600
		WHERE attendance_id = (
			SELECT attendance_id
			FROM attendance
			WHERE employee_id = $1 AND check_out IS NULL
			ORDER BY check_in DESC
			LIMIT 1
		)
		RETURNING attendance_id, employee_id, check_in, check_out, total_hours
	`

	var a domain.Attendance
	var checkOut sql.NullTime
	var totalHours sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, employeeID, at).Scan(
		&a.AttendanceID,
		&a.EmployeeID,
		&a.CheckIn,
		&checkOut,
		&totalHours,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFound("no active check-in found")
		}
		return nil, mapSQLError(err, "check out")
	}

	if checkOut.Valid {
		t := checkOut.Time
		a.CheckOut = &t
	}
	if totalHours.Valid {
		h := totalHours.Float64
		a.TotalHours = &h
	}
	return &a, nil
}

// ListAttendance 查询全部考勤记录
func (r *PostgresAttendanceRepository) ListAttendance(ctx context.Context) ([]*domain.Attendance, error) {
	query := `
		SELECT attendance_id, employee_id, check_in, check_out, total_hours
		FROM attendance
		ORDER BY attendance_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapSQLError(err, "list attendance")
	}
	defer rows.Close()

	records := []*domain.Attendance{}
	for rows.Next() {
		var a domain.Attendance
		var checkOut sql.NullTime
		var totalHours sql.NullFloat64
		err := rows.Scan(&a.AttendanceID, &a.EmployeeID, &a.CheckIn, &checkOut, &totalHours)
		if err != nil {
			return nil, mapSQLError(err, "list attendance")
		}
		if checkOut.Valid {
			t := checkOut.Time
			a.CheckOut = &t
		}
		if totalHours.Valid {
			h := totalHours.Float64
			a.TotalHours = &h
		}
		records = append(records, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLError(err, "list attendance")
	}

	return records, nil
}

// ListOpenSessions 查询全部进行中记录
func (r *PostgresAttendanceRepository) ListOpenSessions(ctx context.Context) ([]*domain.OpenSession, error) {
	query := `
		SELECT e.employee_id, e.name, a.check_in
		FROM employees e
		JOIN attendance a ON e.employee_id = a.employee_id
		WHERE a.check_out IS NULL
		ORDER BY a.check_in
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapSQLError(err, "list open sessions")
	}
	defer rows.Close()

	sessions := []*domain.OpenSession{}
	for rows.Next() {
		var s domain.OpenSession
		if err := rows.Scan(&s.EmployeeID, &s.Name, &s.CheckIn); err != nil {
			return nil, mapSQLError(err, "list open sessions")
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLError(err, "list open sessions")
	}

	return sessions, nil
}
