package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice-data/internal/repository"
	"backoffice-data/internal/service"
	"backoffice-data/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// setupTestServer 内存 repo 全链路：路由 + 服务 + 预置 admin/1234 账号
func setupTestServer(t *testing.T) *httptest.Server {
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

	router := NewRouter(logger)
	router.RegisterAuthRoutes(NewAuthHandler(authService, logger))
	router.RegisterHospitalRoutes(NewHospitalHandler(authService, hospitalService, logger))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// doJSON 带令牌的 JSON 请求，返回状态码和解码后的 body
func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func loginAs(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin_Handler(t *testing.T) {
	srv := setupTestServer(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]string{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "bad username or password", body["msg"])

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	loginAs(t, srv, "admin", "1234")
}

func TestRegister_Handler(t *testing.T) {
	srv := setupTestServer(t)

	// 无令牌
	status, _ := doJSON(t, http.MethodPost, srv.URL+"/register", "", map[string]string{
		"username": "drwho", "password": "secret", "role": "doctor",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	admin := loginAs(t, srv, "admin", "1234")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/register", admin, map[string]string{
		"username": "drwho", "password": "secret", "role": "doctor",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "user registered successfully", body["message"])
	assert.NotZero(t, body["user_id"])

	// 重名
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/register", admin, map[string]string{
		"username": "drwho", "password": "secret", "role": "doctor",
	})
	assert.Equal(t, http.StatusConflict, status)

	// 非 admin 无权注册
	doctor := loginAs(t, srv, "drwho", "secret")
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/register", doctor, map[string]string{
		"username": "nurse", "password": "secret", "role": "staff",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDepartments_Handler(t *testing.T) {
	srv := setupTestServer(t)
	admin := loginAs(t, srv, "admin", "1234")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/departments", admin, map[string]string{
		"name": "Cardiology", "head_doctor": "Dr. Smith",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "department added successfully", body["message"])

	// 同名科室
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/departments", admin, map[string]string{
		"name": "Cardiology",
	})
	assert.Equal(t, http.StatusConflict, status)

	// 非 admin 不能建科室
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/register", admin, map[string]string{
		"username": "drwho", "password": "secret", "role": "doctor",
	})
	require.Equal(t, http.StatusCreated, status)
	doctor := loginAs(t, srv, "drwho", "secret")
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/departments", doctor, map[string]string{
		"name": "Radiology",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// 查询需要令牌，任意角色均可
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/departments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/departments", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+doctor)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var depts []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&depts))
	require.Len(t, depts, 1)
	assert.Equal(t, "Cardiology", depts[0]["name"])
	assert.Equal(t, "Dr. Smith", depts[0]["head_doctor"])
}

func TestPatients_Handler_FullFlow(t *testing.T) {
	srv := setupTestServer(t)
	admin := loginAs(t, srv, "admin", "1234")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/departments", admin, map[string]string{
		"name": "Cardiology",
	})
	require.Equal(t, http.StatusCreated, status)
	deptID := int64(body["department_id"].(float64))

	// 登记
	status, body = doJSON(t, http.MethodPost, srv.URL+"/patients", admin, map[string]any{
		"name": "Jane Doe", "age": 34, "disease": "Flu",
		"admitted_on": "2024-01-15", "department_id": deptID,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "patient registered successfully", body["message"])

	// 缺字段
	status, body = doJSON(t, http.MethodPost, srv.URL+"/patients", admin, map[string]any{
		"name": "Nameless", "disease": "Flu", "admitted_on": "2024-01-15", "department_id": deptID,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "all patient fields are required", body["msg"])

	// 日期格式错误
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/patients", admin, map[string]any{
		"name": "Jane Doe", "age": 34, "disease": "Flu",
		"admitted_on": "15/01/2024", "department_id": deptID,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// 科室不存在
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/patients", admin, map[string]any{
		"name": "Jane Doe", "age": 34, "disease": "Flu",
		"admitted_on": "2024-01-15", "department_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, status)

	// 搜索缺参数
	status, body = doJSON(t, http.MethodGet, srv.URL+"/patients/search", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "query parameter 'name' is required", body["msg"])

	// 按姓名 / 按病名
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/patients/search?name=Jane", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var found []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, found, 1)
	assert.Equal(t, "Cardiology", found[0]["department"])

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/patients/disease/Flu", admin, nil)
	assert.Equal(t, http.StatusOK, status)

	// 部分更新
	status, body = doJSON(t, http.MethodPut, srv.URL+"/patients/1", admin, map[string]any{
		"disease": "Recovered",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "patient updated successfully", body["message"])

	// 更新到不存在的科室
	status, _ = doJSON(t, http.MethodPut, srv.URL+"/patients/1", admin, map[string]any{
		"department_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, status)

	// 删除 + 再删
	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/patients/1", admin, nil)
	assert.Equal(t, http.StatusOK, status)
	status, body = doJSON(t, http.MethodDelete, srv.URL+"/patients/1", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "patient not found", body["msg"])
}

func TestRouter_MethodAndPathEdges(t *testing.T) {
	srv := setupTestServer(t)
	admin := loginAs(t, srv, "admin", "1234")

	// 非法方法
	status, _ := doJSON(t, http.MethodDelete, srv.URL+"/departments", admin, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/register", admin, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	// 非数字 id
	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/patients/abc", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// 空病名
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/patients/disease/", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
