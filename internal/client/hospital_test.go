package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "backoffice-data/internal/http"
	"backoffice-data/internal/repository"
	"backoffice-data/internal/service"
	"backoffice-data/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// newTestAPI 内存实现全栈 + 预置 admin/1234
func newTestAPI(t *testing.T) *HospitalClient {
	t.Helper()

	logger := zap.NewNop()
	usersRepo := repository.NewMemoryUsersRepository()
	depts := repository.NewMemoryDepartmentsRepository()
	patients := repository.NewMemoryPatientsRepository(depts)

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = usersRepo.CreateUser(context.Background(), "admin", string(hash), "admin")
	require.NoError(t, err)

	authService := service.NewAuthService(usersRepo, store.NewMemoryKV(), time.Hour, logger)
	hospitalService := service.NewHospitalService(depts, patients, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, logger))
	router.RegisterHospitalRoutes(httpapi.NewHospitalHandler(authService, hospitalService, logger))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return NewHospitalClient(srv.URL, logger)
}

func TestHospitalClient_LoginFailure(t *testing.T) {
	api := newTestAPI(t)

	_, err := api.Login("admin", "wrong")
	require.Error(t, err)
	apiErr, ok := err.(*apiError)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.Status)
	assert.Contains(t, apiErr.Msg, "bad username or password")
}

func TestHospitalClient_FullFlow(t *testing.T) {
	api := newTestAPI(t)

	token, err := api.Login("admin", "1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	deptID, err := api.AddDepartment("Cardiology", "Dr. Smith")
	require.NoError(t, err)
	require.NotZero(t, deptID)

	depts, err := api.ListDepartments()
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, "Cardiology", depts[0].Name)

	patientID, err := api.AddPatient("Jane Doe", 34, "Flu", "2024-01-15", deptID)
	require.NoError(t, err)

	patients, err := api.ListPatients()
	require.NoError(t, err)
	require.Len(t, patients, 1)
	require.NotNil(t, patients[0].Department)
	assert.Equal(t, "Cardiology", *patients[0].Department)

	byName, err := api.SearchPatientsByName("Jane")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byDisease, err := api.PatientsByDisease("Flu")
	require.NoError(t, err)
	assert.Len(t, byDisease, 1)

	require.NoError(t, api.UpdatePatient(patientID, map[string]any{"disease": "Recovered"}))
	require.NoError(t, api.DeletePatient(patientID))

	err = api.DeletePatient(patientID)
	require.Error(t, err)
	apiErr, ok := err.(*apiError)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
}

func TestHospitalClient_Unauthenticated(t *testing.T) {
	api := newTestAPI(t)

	_, err := api.ListDepartments()
	require.Error(t, err)
	apiErr, ok := err.(*apiError)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.Status)
}
