package domain

import "time"

// Employee 员工领域模型（对应 employees 表）
// employee_id 由调用方提供，不走自增
type Employee struct {
	EmployeeID int64  `db:"employee_id"`
	Name       string `db:"name"`
	Department string `db:"department"` // 自由文本
}

// Attendance 考勤记录领域模型（对应 attendance 表）
// check_out 为空表示未签退的「进行中」记录；
// 每个员工同一时刻最多一条进行中记录（签到时校验）
type Attendance struct {
	AttendanceID int64      `db:"attendance_id"`
	EmployeeID   int64      `db:"employee_id"`
	CheckIn      time.Time  `db:"check_in"`
	CheckOut     *time.Time `db:"check_out"`   // nullable
	TotalHours   *float64   `db:"total_hours"` // 签退时由 check_out - check_in 导出
}

// OpenSession 进行中考勤记录投影（员工 JOIN 考勤）
type OpenSession struct {
	EmployeeID int64
	Name       string
	CheckIn    time.Time
}
