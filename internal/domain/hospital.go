package domain

import "time"

// DateFormat 日期字段的线格式（admitted_on / created_on）
const DateFormat = "2006-01-02"

// Department 科室领域模型（对应 departments 表）
type Department struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`        // UNIQUE
	HeadDoctor string    `db:"head_doctor"` // nullable
	CreatedOn  time.Time `db:"created_on"`
}

// Patient 患者领域模型（对应 patients 表）
type Patient struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Age          int       `db:"age"`
	Disease      string    `db:"disease"`
	AdmittedOn   time.Time `db:"admitted_on"`
	DepartmentID int64     `db:"department_id"` // FK to departments
}

// PatientWithDepartment 患者 + 科室名（LEFT JOIN 投影）
type PatientWithDepartment struct {
	Patient
	DepartmentName string // 科室缺失时为空串
	HasDepartment  bool
}

// PatientPatch 患者部分更新
// 零值字段视为「未提供」，保持原值不变（无法通过更新显式清空字段）
type PatientPatch struct {
	Name         string
	Age          int
	Disease      string
	AdmittedOn   *time.Time
	DepartmentID int64
}

// Empty 是否没有任何待应用的字段
func (p *PatientPatch) Empty() bool {
	return p.Name == "" && p.Age == 0 && p.Disease == "" && p.AdmittedOn == nil && p.DepartmentID == 0
}
