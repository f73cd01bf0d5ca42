package service

import (
	"context"
	"testing"

	"backoffice-data/internal/domain"
	"backoffice-data/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestHospitalService 内存 repo + nop logger
func newTestHospitalService() HospitalService {
	depts := repository.NewMemoryDepartmentsRepository()
	patients := repository.NewMemoryPatientsRepository(depts)
	return NewHospitalService(depts, patients, zap.NewNop())
}

func TestAddDepartment_Basic(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	resp, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology", HeadDoctor: "Dr. Smith"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.DepartmentID)

	views, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Cardiology", views[0].Name)
	require.NotNil(t, views[0].HeadDoctor)
	assert.Equal(t, "Dr. Smith", *views[0].HeadDoctor)
}

func TestAddDepartment_DuplicateName(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	_, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology"})
	require.NoError(t, err)

	_, err = svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology"})
	assert.True(t, domain.IsConflict(err))
}

func TestAddDepartment_MissingName(t *testing.T) {
	svc := newTestHospitalService()

	_, err := svc.AddDepartment(context.Background(), AddDepartmentRequest{HeadDoctor: "Dr. Smith"})
	assert.True(t, domain.IsValidation(err))
}

func TestListDepartments_HeadDoctorNullable(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	_, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Radiology"})
	require.NoError(t, err)

	views, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].HeadDoctor)
}

func TestAddPatient_Basic(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	dept, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology"})
	require.NoError(t, err)

	resp, err := svc.AddPatient(ctx, AddPatientRequest{
		Name: "Jane Doe", Age: 34, Disease: "Flu", AdmittedOn: "2024-01-15", DepartmentID: dept.DepartmentID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.PatientID)

	views, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Jane Doe", views[0].Name)
	assert.Equal(t, "2024-01-15", views[0].AdmittedOn)
	require.NotNil(t, views[0].Department)
	assert.Equal(t, "Cardiology", *views[0].Department)
}

// 沿用原校验语义：age 为 0 被当作缺失拒绝
func TestAddPatient_ZeroAgeRejected(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	dept, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Pediatrics"})
	require.NoError(t, err)

	_, err = svc.AddPatient(ctx, AddPatientRequest{
		Name: "Newborn", Age: 0, Disease: "Jaundice", AdmittedOn: "2024-01-15", DepartmentID: dept.DepartmentID,
	})
	assert.True(t, domain.IsValidation(err))
}

func TestAddPatient_BadDateFormat(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	dept, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology"})
	require.NoError(t, err)

	_, err = svc.AddPatient(ctx, AddPatientRequest{
		Name: "Jane Doe", Age: 34, Disease: "Flu", AdmittedOn: "15/01/2024", DepartmentID: dept.DepartmentID,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestAddPatient_UnknownDepartment(t *testing.T) {
	svc := newTestHospitalService()

	_, err := svc.AddPatient(context.Background(), AddPatientRequest{
		Name: "Jane Doe", Age: 34, Disease: "Flu", AdmittedOn: "2024-01-15", DepartmentID: 99,
	})
	assert.True(t, domain.IsNotFound(err))
}

func TestSearchPatients_SubstringMatch(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	dept, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology"})
	require.NoError(t, err)

	for _, p := range []AddPatientRequest{
		{Name: "Jane Doe", Age: 34, Disease: "Influenza", AdmittedOn: "2024-01-15", DepartmentID: dept.DepartmentID},
		{Name: "John Roe", Age: 52, Disease: "Angina", AdmittedOn: "2024-02-01", DepartmentID: dept.DepartmentID},
	} {
		_, err := svc.AddPatient(ctx, p)
		require.NoError(t, err)
	}

	byDisease, err := svc.SearchPatientsByDisease(ctx, "flu")
	require.NoError(t, err)
	require.Len(t, byDisease, 1)
	assert.Equal(t, "Jane Doe", byDisease[0].Name)

	byName, err := svc.SearchPatientsByName(ctx, "Jo")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "John Roe", byName[0].Name)

	none, err := svc.SearchPatientsByDisease(ctx, "cancer")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdatePatient_PartialUpdatePreservesFields(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	dept, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology"})
	require.NoError(t, err)

	resp, err := svc.AddPatient(ctx, AddPatientRequest{
		Name: "Jane Doe", Age: 34, Disease: "Flu", AdmittedOn: "2024-01-15", DepartmentID: dept.DepartmentID,
	})
	require.NoError(t, err)

	err = svc.UpdatePatient(ctx, resp.PatientID, UpdatePatientRequest{Disease: "Recovered"})
	require.NoError(t, err)

	views, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Recovered", views[0].Disease)
	// 未提供的字段保持原值
	assert.Equal(t, "Jane Doe", views[0].Name)
	assert.Equal(t, 34, views[0].Age)
	assert.Equal(t, "2024-01-15", views[0].AdmittedOn)
}

func TestUpdatePatient_UnknownDepartment(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	dept, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology"})
	require.NoError(t, err)

	resp, err := svc.AddPatient(ctx, AddPatientRequest{
		Name: "Jane Doe", Age: 34, Disease: "Flu", AdmittedOn: "2024-01-15", DepartmentID: dept.DepartmentID,
	})
	require.NoError(t, err)

	err = svc.UpdatePatient(ctx, resp.PatientID, UpdatePatientRequest{DepartmentID: 42})
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdatePatient_BadDateFormat(t *testing.T) {
	svc := newTestHospitalService()

	err := svc.UpdatePatient(context.Background(), 1, UpdatePatientRequest{AdmittedOn: "Jan 15 2024"})
	assert.True(t, domain.IsValidation(err))
}

func TestDeletePatient_Missing(t *testing.T) {
	svc := newTestHospitalService()

	err := svc.DeletePatient(context.Background(), 123)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeletePatient_Basic(t *testing.T) {
	svc := newTestHospitalService()
	ctx := context.Background()

	dept, err := svc.AddDepartment(ctx, AddDepartmentRequest{Name: "Cardiology"})
	require.NoError(t, err)

	resp, err := svc.AddPatient(ctx, AddPatientRequest{
		Name: "Jane Doe", Age: 34, Disease: "Flu", AdmittedOn: "2024-01-15", DepartmentID: dept.DepartmentID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(ctx, resp.PatientID))

	views, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}
