package service

import (
	"context"
	"time"

	"backoffice-data/internal/domain"
	"backoffice-data/internal/repository"

	"go.uber.org/zap"
)

// AttendanceService 员工考勤服务接口
type AttendanceService interface {
	AddEmployee(ctx context.Context, req AddEmployeeRequest) error
	CheckIn(ctx context.Context, employeeID int64) (int64, error)
	CheckOut(ctx context.Context, employeeID int64) (*domain.Attendance, error)
	ListAttendance(ctx context.Context) ([]*domain.Attendance, error)
	ListOpenSessions(ctx context.Context) ([]*domain.OpenSession, error)
}

// attendanceService 实现
type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	now            func() time.Time
	logger         *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(attendanceRepo repository.AttendanceRepository, logger *zap.Logger) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		now:            time.Now,
		logger:         logger,
	}
}

// AddEmployeeRequest 登记员工请求（employee_id 由调用方提供）
type AddEmployeeRequest struct {
	EmployeeID int64
	Name       string
	Department string
}

// AddEmployee 登记员工
func (s *attendanceService) AddEmployee(ctx context.Context, req AddEmployeeRequest) error {
	if req.EmployeeID == 0 || req.Name == "" {
		return domain.NewValidation("employee_id and name are required")
	}

	err := s.attendanceRepo.CreateEmployee(ctx, &domain.Employee{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Department: req.Department,
	})
	if err != nil {
		return err
	}

	s.logger.Info("Employee added",
		zap.Int64("employee_id", req.EmployeeID),
		zap.String("name", req.Name),
		zap.String("department", req.Department),
	)
	return nil
}

// CheckIn 签到
func (s *attendanceService) CheckIn(ctx context.Context, employeeID int64) (int64, error) {
	id, err := s.attendanceRepo.CheckIn(ctx, employeeID, s.now())
	if err != nil {
		return 0, err
	}
	s.logger.Info("Checked in", zap.Int64("employee_id", employeeID), zap.Int64("attendance_id", id))
	return id, nil
}

// CheckOut 签退（只关闭最近一条进行中记录）
func (s *attendanceService) CheckOut(ctx context.Context, employeeID int64) (*domain.Attendance, error) {
	record, err := s.attendanceRepo.CheckOut(ctx, employeeID, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Checked out",
		zap.Int64("employee_id", employeeID),
		zap.Int64("attendance_id", record.AttendanceID),
		zap.Float64p("total_hours", record.TotalHours),
	)
	return record, nil
}

// ListAttendance 查询全部考勤记录
func (s *attendanceService) ListAttendance(ctx context.Context) ([]*domain.Attendance, error) {
	return s.attendanceRepo.ListAttendance(ctx)
}

// ListOpenSessions 查询全部进行中记录
func (s *attendanceService) ListOpenSessions(ctx context.Context) ([]*domain.OpenSession, error) {
	return s.attendanceRepo.ListOpenSessions(ctx)
}
