package repository

import (
	"context"

	"backoffice-data/internal/domain"
)

// PatientsRepository 患者Repository接口
type PatientsRepository interface {
	// CreatePatient 登记患者；科室不存在时返回 NotFound
	CreatePatient(ctx context.Context, patient *domain.Patient) (int64, error)

	// ListPatients 查询全部患者（带科室名，LEFT JOIN）
	ListPatients(ctx context.Context) ([]*domain.PatientWithDepartment, error)

	// SearchByDisease 按病名子串查询（不区分大小写）
	SearchByDisease(ctx context.Context, substr string) ([]*domain.PatientWithDepartment, error)

	// SearchByName 按姓名子串查询（不区分大小写）
	SearchByName(ctx context.Context, substr string) ([]*domain.PatientWithDepartment, error)

	// UpdatePatient 部分更新；患者或目标科室不存在时返回 NotFound
	UpdatePatient(ctx context.Context, id int64, patch domain.PatientPatch) error

	// DeletePatient 删除患者；不存在时返回 NotFound
	DeletePatient(ctx context.Context, id int64) error
}
