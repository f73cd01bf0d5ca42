package service

import (
	"context"
	"strings"
	"time"

	"backoffice-data/internal/domain"
	"backoffice-data/internal/repository"

	"go.uber.org/zap"
)

// HospitalService 科室/患者登记服务接口
type HospitalService interface {
	// 科室
	AddDepartment(ctx context.Context, req AddDepartmentRequest) (*AddDepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]DepartmentView, error)

	// 患者
	AddPatient(ctx context.Context, req AddPatientRequest) (*AddPatientResponse, error)
	ListPatients(ctx context.Context) ([]PatientView, error)
	SearchPatientsByDisease(ctx context.Context, substr string) ([]PatientView, error)
	SearchPatientsByName(ctx context.Context, substr string) ([]PatientView, error)
	UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) error
	DeletePatient(ctx context.Context, id int64) error
}

// hospitalService 实现
type hospitalService struct {
	departmentsRepo repository.DepartmentsRepository
	patientsRepo    repository.PatientsRepository
	logger          *zap.Logger
}

// NewHospitalService 创建 HospitalService 实例
func NewHospitalService(departmentsRepo repository.DepartmentsRepository, patientsRepo repository.PatientsRepository, logger *zap.Logger) HospitalService {
	return &hospitalService{
		departmentsRepo: departmentsRepo,
		patientsRepo:    patientsRepo,
		logger:          logger,
	}
}

// AddDepartmentRequest 创建科室请求
type AddDepartmentRequest struct {
	Name       string
	HeadDoctor string // 可选
}

// AddDepartmentResponse 创建科室响应
type AddDepartmentResponse struct {
	DepartmentID int64
}

// DepartmentView 科室序列化视图（created_on 为 ISO 日期）
type DepartmentView struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	HeadDoctor *string `json:"head_doctor"`
	CreatedOn  string  `json:"created_on"`
}

// AddPatientRequest 患者登记请求
type AddPatientRequest struct {
	Name         string
	Age          int
	Disease      string
	AdmittedOn   string // YYYY-MM-DD
	DepartmentID int64
}

// AddPatientResponse 患者登记响应
type AddPatientResponse struct {
	PatientID int64
}

// PatientView 患者序列化视图
type PatientView struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Disease    string  `json:"disease"`
	AdmittedOn string  `json:"admitted_on"`
	Department *string `json:"department"` // 科室缺失时为 null
}

// UpdatePatientRequest 患者部分更新请求
// 零值字段视为未提供，保持原值；因此无法通过更新把字段写成零值
type UpdatePatientRequest struct {
	Name         string
	Age          int
	Disease      string
	AdmittedOn   string
	DepartmentID int64
}

// AddDepartment 创建科室
func (s *hospitalService) AddDepartment(ctx context.Context, req AddDepartmentRequest) (*AddDepartmentResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, domain.NewValidation("department name is required")
	}

	id, err := s.departmentsRepo.CreateDepartment(ctx, req.Name, req.HeadDoctor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Department added",
		zap.String("name", req.Name),
		zap.Int64("department_id", id),
	)
	return &AddDepartmentResponse{DepartmentID: id}, nil
}

// ListDepartments 查询全部科室
func (s *hospitalService) ListDepartments(ctx context.Context) ([]DepartmentView, error) {
	departments, err := s.departmentsRepo.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]DepartmentView, 0, len(departments))
	for _, d := range departments {
		v := DepartmentView{
			ID:        d.ID,
			Name:      d.Name,
			CreatedOn: d.CreatedOn.Format(domain.DateFormat),
		}
		if d.HeadDoctor != "" {
			head := d.HeadDoctor
			v.HeadDoctor = &head
		}
		views = append(views, v)
	}
	return views, nil
}

// AddPatient 患者登记
// 注意：truthiness 校验，age 为 0 会被当作缺失拒绝
func (s *hospitalService) AddPatient(ctx context.Context, req AddPatientRequest) (*AddPatientResponse, error) {
	if req.Name == "" || req.Age == 0 || req.Disease == "" || req.AdmittedOn == "" || req.DepartmentID == 0 {
		return nil, domain.NewValidation("all patient fields are required")
	}

	admitted, err := time.Parse(domain.DateFormat, req.AdmittedOn)
	if err != nil {
		return nil, domain.NewValidation("invalid date format for admitted_on, use YYYY-MM-DD")
	}

	id, err := s.patientsRepo.CreatePatient(ctx, &domain.Patient{
		Name:         req.Name,
		Age:          req.Age,
		Disease:      req.Disease,
		AdmittedOn:   admitted,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Patient registered",
		zap.String("name", req.Name),
		zap.Int64("patient_id", id),
		zap.Int64("department_id", req.DepartmentID),
	)
	return &AddPatientResponse{PatientID: id}, nil
}

func patientViews(patients []*domain.PatientWithDepartment) []PatientView {
	views := make([]PatientView, 0, len(patients))
	for _, p := range patients {
		v := PatientView{
			ID:         p.ID,
			Name:       p.Name,
			Age:        p.Age,
			Disease:    p.Disease,
			AdmittedOn: p.AdmittedOn.Format(domain.DateFormat),
		}
		if p.HasDepartment {
			dept := p.DepartmentName
			v.Department = &dept
		}
		views = append(views, v)
	}
	return views
}

// ListPatients 查询全部患者
func (s *hospitalService) ListPatients(ctx context.Context) ([]PatientView, error) {
	patients, err := s.patientsRepo.ListPatients(ctx)
	if err != nil {
		return nil, err
	}
	return patientViews(patients), nil
}

// SearchPatientsByDisease 按病名子串查询
func (s *hospitalService) SearchPatientsByDisease(ctx context.Context, substr string) ([]PatientView, error) {
	patients, err := s.patientsRepo.SearchByDisease(ctx, substr)
	if err != nil {
		return nil, err
	}
	return patientViews(patients), nil
}

// SearchPatientsByName 按姓名子串查询（空查询由表现层拒绝）
func (s *hospitalService) SearchPatientsByName(ctx context.Context, substr string) ([]PatientView, error) {
	patients, err := s.patientsRepo.SearchByName(ctx, substr)
	if err != nil {
		return nil, err
	}
	return patientViews(patients), nil
}

// UpdatePatient 患者部分更新
func (s *hospitalService) UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) error {
	patch := domain.PatientPatch{
		Name:         req.Name,
		Age:          req.Age,
		Disease:      req.Disease,
		DepartmentID: req.DepartmentID,
	}

	if req.AdmittedOn != "" {
		admitted, err := time.Parse(domain.DateFormat, req.AdmittedOn)
		if err != nil {
			return domain.NewValidation("invalid date format for admitted_on, use YYYY-MM-DD")
		}
		patch.AdmittedOn = &admitted
	}

	if err := s.patientsRepo.UpdatePatient(ctx, id, patch); err != nil {
		return err
	}

	s.logger.Info("Patient updated", zap.Int64("patient_id", id))
	return nil
}

// DeletePatient 删除患者
func (s *hospitalService) DeletePatient(ctx context.Context, id int64) error {
	if err := s.patientsRepo.DeletePatient(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Patient deleted", zap.Int64("patient_id", id))
	return nil
}
