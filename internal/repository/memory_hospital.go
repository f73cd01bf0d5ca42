package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"backoffice-data/internal/domain"
)

// MemoryDepartmentsRepository 内存科室Repository（DB 未就绪时的回退/联测实现）
type MemoryDepartmentsRepository struct {
	mu          sync.RWMutex
	nextID      int64
	departments map[int64]*domain.Department
}

var _ DepartmentsRepository = (*MemoryDepartmentsRepository)(nil)

func NewMemoryDepartmentsRepository() *MemoryDepartmentsRepository {
	return &MemoryDepartmentsRepository{
		nextID:      1,
		departments: map[int64]*domain.Department{},
	}
}

func (r *MemoryDepartmentsRepository) CreateDepartment(_ context.Context, name, headDoctor string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.departments {
		if d.Name == name {
			return 0, domain.NewConflict("department already exists")
		}
	}

	d := &domain.Department{
		ID:         r.nextID,
		Name:       name,
		HeadDoctor: headDoctor,
		CreatedOn:  time.Now(),
	}
	r.nextID++
	r.departments[d.ID] = d
	return d.ID, nil
}

func (r *MemoryDepartmentsRepository) ListDepartments(_ context.Context) ([]*domain.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Department, 0, len(r.departments))
	for _, d := range r.departments {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryDepartmentsRepository) DepartmentExists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.departments[id]
	return ok, nil
}

func (r *MemoryDepartmentsRepository) departmentName(id int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.departments[id]
	if !ok {
		return "", false
	}
	return d.Name, true
}

// MemoryPatientsRepository 内存患者Repository
// 科室存在性检查依赖同进程的 MemoryDepartmentsRepository
type MemoryPatientsRepository struct {
	mu          sync.RWMutex
	nextID      int64
	patients    map[int64]*domain.Patient
	departments *MemoryDepartmentsRepository
}

var _ PatientsRepository = (*MemoryPatientsRepository)(nil)

func NewMemoryPatientsRepository(departments *MemoryDepartmentsRepository) *MemoryPatientsRepository {
	return &MemoryPatientsRepository{
		nextID:      1,
		patients:    map[int64]*domain.Patient{},
		departments: departments,
	}
}

func (r *MemoryPatientsRepository) CreatePatient(ctx context.Context, patient *domain.Patient) (int64, error) {
	exists, _ := r.departments.DepartmentExists(ctx, patient.DepartmentID)
	if !exists {
		return 0, domain.NewNotFound("department not found")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := *patient
	p.ID = r.nextID
	r.nextID++
	r.patients[p.ID] = &p
	return p.ID, nil
}

func (r *MemoryPatientsRepository) list(match func(*domain.Patient) bool) []*domain.PatientWithDepartment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.PatientWithDepartment{}
	for _, p := range r.patients {
		if match != nil && !match(p) {
			continue
		}
		row := &domain.PatientWithDepartment{Patient: *p}
		if name, ok := r.departments.departmentName(p.DepartmentID); ok {
			row.DepartmentName = name
			row.HasDepartment = true
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryPatientsRepository) ListPatients(_ context.Context) ([]*domain.PatientWithDepartment, error) {
	return r.list(nil), nil
}

func (r *MemoryPatientsRepository) SearchByDisease(_ context.Context, substr string) ([]*domain.PatientWithDepartment, error) {
	needle := strings.ToLower(substr)
	return r.list(func(p *domain.Patient) bool {
		return strings.Contains(strings.ToLower(p.Disease), needle)
	}), nil
}

func (r *MemoryPatientsRepository) SearchByName(_ context.Context, substr string) ([]*domain.PatientWithDepartment, error) {
	needle := strings.ToLower(substr)
	return r.list(func(p *domain.Patient) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

func (r *MemoryPatientsRepository) UpdatePatient(ctx context.Context, id int64, patch domain.PatientPatch) error {
	if patch.DepartmentID != 0 {
		exists, _ := r.departments.DepartmentExists(ctx, patch.DepartmentID)
		if !exists {
			return domain.NewNotFound("department not found")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return domain.NewNotFound("patient not found")
	}

	if patch.Name != "" {
		p.Name = patch.Name
	}
	if patch.Age != 0 {
		p.Age = patch.Age
	}
	if patch.Disease != "" {
		p.Disease = patch.Disease
	}
	if patch.AdmittedOn != nil {
		p.AdmittedOn = *patch.AdmittedOn
	}
	if patch.DepartmentID != 0 {
		p.DepartmentID = patch.DepartmentID
	}
	return nil
}

func (r *MemoryPatientsRepository) DeletePatient(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return domain.NewNotFound("patient not found")
	}
	delete(r.patients, id)
	return nil
}
