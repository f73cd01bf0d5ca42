package repository

import (
	"context"
	"time"

	"backoffice-data/internal/domain"
)

// AttendanceRepository 员工考勤Repository接口（employees + attendance）
type AttendanceRepository interface {
	// CreateEmployee 登记员工（employee_id 由调用方提供）；id 已存在时返回 Conflict
	CreateEmployee(ctx context.Context, employee *domain.Employee) error

	// CheckIn 签到，写入一条进行中记录
	// 员工不存在时返回 NotFound；已有进行中记录时返回 Conflict（单一进行中记录不变量）
	CheckIn(ctx context.Context, employeeID int64, at time.Time) (int64, error)

	// CheckOut 签退：只关闭该员工最近的一条进行中记录，并导出 total_hours
	// 没有进行中记录时返回 NotFound
	CheckOut(ctx context.Context, employeeID int64, at time.Time) (*domain.Attendance, error)

	// ListAttendance 查询全部考勤记录
	ListAttendance(ctx context.Context) ([]*domain.Attendance, error)

	// ListOpenSessions 查询全部进行中记录（员工 JOIN 考勤，check_out IS NULL）
	ListOpenSessions(ctx context.Context) ([]*domain.OpenSession, error)
}
