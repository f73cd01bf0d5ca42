package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"backoffice-data/internal/domain"
)

// MemoryAttendanceRepository 内存员工考勤Repository（联测实现）
type MemoryAttendanceRepository struct {
	mu        sync.RWMutex
	nextID    int64
	employees map[int64]*domain.Employee
	records   map[int64]*domain.Attendance
}

var _ AttendanceRepository = (*MemoryAttendanceRepository)(nil)

func NewMemoryAttendanceRepository() *MemoryAttendanceRepository {
	return &MemoryAttendanceRepository{
		nextID:    1,
		employees: map[int64]*domain.Employee{},
		records:   map[int64]*domain.Attendance{},
	}
}

func (r *MemoryAttendanceRepository) CreateEmployee(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[employee.EmployeeID]; ok {
		return domain.NewConflict("create employee: already exists")
	}
	cp := *employee
	r.employees[cp.EmployeeID] = &cp
	return nil
}

func (r *MemoryAttendanceRepository) CheckIn(_ context.Context, employeeID int64, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[employeeID]; !ok {
		return 0, domain.NewNotFound("employee not found")
	}
	for _, a := range r.records {
		if a.EmployeeID == employeeID && a.CheckOut == nil {
			return 0, domain.NewConflict("already checked in")
		}
	}

	a := &domain.Attendance{
		AttendanceID: r.nextID,
		EmployeeID:   employeeID,
		CheckIn:      at,
	}
	r.nextID++
	r.records[a.AttendanceID] = a
	return a.AttendanceID, nil
}

func (r *MemoryAttendanceRepository) CheckOut(_ context.Context, employeeID int64, at time.Time) (*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 最近一条进行中记录
	var latest *domain.Attendance
	for _, a := range r.records {
		if a.EmployeeID != employeeID || a.CheckOut != nil {
			continue
		}
		if latest == nil || a.CheckIn.After(latest.CheckIn) {
			latest = a
		}
	}
	if latest == nil {
		return nil, domain.NewNotFound("no active check-in found")
	}

	t := at
	hours := at.Sub(latest.CheckIn).Hours()
	latest.CheckOut = &t
	latest.TotalHours = &hours

	cp := *latest
	return &cp, nil
}

func (r *MemoryAttendanceRepository) ListAttendance(_ context.Context) ([]*domain.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Attendance, 0, len(r.records))
	for _, a := range r.records {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendanceID < out[j].AttendanceID })
	return out, nil
}

func (r *MemoryAttendanceRepository) ListOpenSessions(_ context.Context) ([]*domain.OpenSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.OpenSession{}
	for _, a := range r.records {
		if a.CheckOut != nil {
			continue
		}
		e, ok := r.employees[a.EmployeeID]
		if !ok {
			continue
		}
		out = append(out, &domain.OpenSession{
			EmployeeID: a.EmployeeID,
			Name:       e.Name,
			CheckIn:    a.CheckIn,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}
