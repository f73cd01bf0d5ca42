// Package client hospital-api 的 Go 客户端（联调/冒烟脚本用）
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HospitalClient hospital-api HTTP 客户端
type HospitalClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewHospitalClient 创建 hospital-api 客户端
func NewHospitalClient(baseURL string, logger *zap.Logger) *HospitalClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HospitalClient{
		httpClient: c,
		logger:     logger,
	}
}

// apiError 接口错误（携带状态码与服务端 msg）
type apiError struct {
	Status int
	Msg    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("hospital-api: %d %s", e.Status, e.Msg)
}

func toError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	var body struct {
		Msg string `json:"msg"`
	}
	_ = json.Unmarshal(resp.Body(), &body)
	return &apiError{Status: resp.StatusCode(), Msg: body.Msg}
}

// Login 登录并在后续请求中携带 bearer 令牌
func (c *HospitalClient) Login(username, password string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	resp, err := c.httpClient.R().
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&result).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	if err := toError(resp); err != nil {
		return "", err
	}

	c.httpClient.SetAuthToken(result.Token)
	return result.Token, nil
}

// Register 注册账号（需要已用 admin 登录）
func (c *HospitalClient) Register(username, password, role string) (int64, error) {
	var result struct {
		UserID int64 `json:"user_id"`
	}
	resp, err := c.httpClient.R().
		SetBody(map[string]string{"username": username, "password": password, "role": role}).
		SetResult(&result).
		Post("/register")
	if err != nil {
		return 0, fmt.Errorf("register failed: %w", err)
	}
	if err := toError(resp); err != nil {
		return 0, err
	}
	return result.UserID, nil
}

// AddDepartment 创建科室
func (c *HospitalClient) AddDepartment(name, headDoctor string) (int64, error) {
	body := map[string]any{"name": name}
	if headDoctor != "" {
		body["head_doctor"] = headDoctor
	}

	var result struct {
		DepartmentID int64 `json:"department_id"`
	}
	resp, err := c.httpClient.R().
		SetBody(body).
		SetResult(&result).
		Post("/departments")
	if err != nil {
		return 0, fmt.Errorf("add department failed: %w", err)
	}
	if err := toError(resp); err != nil {
		return 0, err
	}
	return result.DepartmentID, nil
}

// Department 科室视图
type Department struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	HeadDoctor *string `json:"head_doctor"`
	CreatedOn  string  `json:"created_on"`
}

// ListDepartments 查询全部科室
func (c *HospitalClient) ListDepartments() ([]Department, error) {
	var result []Department
	resp, err := c.httpClient.R().
		SetResult(&result).
		Get("/departments")
	if err != nil {
		return nil, fmt.Errorf("list departments failed: %w", err)
	}
	if err := toError(resp); err != nil {
		return nil, err
	}
	return result, nil
}

// Patient 患者视图
type Patient struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Disease    string  `json:"disease"`
	AdmittedOn string  `json:"admitted_on"`
	Department *string `json:"department"`
}

// AddPatient 患者登记
func (c *HospitalClient) AddPatient(name string, age int, disease, admittedOn string, departmentID int64) (int64, error) {
	var result struct {
		PatientID int64 `json:"patient_id"`
	}
	resp, err := c.httpClient.R().
		SetBody(map[string]any{
			"name":          name,
			"age":           age,
			"disease":       disease,
			"admitted_on":   admittedOn,
			"department_id": departmentID,
		}).
		SetResult(&result).
		Post("/patients")
	if err != nil {
		return 0, fmt.Errorf("add patient failed: %w", err)
	}
	if err := toError(resp); err != nil {
		return 0, err
	}
	return result.PatientID, nil
}

// ListPatients 查询全部患者
func (c *HospitalClient) ListPatients() ([]Patient, error) {
	var result []Patient
	resp, err := c.httpClient.R().
		SetResult(&result).
		Get("/patients")
	if err != nil {
		return nil, fmt.Errorf("list patients failed: %w", err)
	}
	if err := toError(resp); err != nil {
		return nil, err
	}
	return result, nil
}

// SearchPatientsByName 按姓名子串查询
func (c *HospitalClient) SearchPatientsByName(name string) ([]Patient, error) {
	var result []Patient
	resp, err := c.httpClient.R().
		SetQueryParam("name", name).
		SetResult(&result).
		Get("/patients/search")
	if err != nil {
		return nil, fmt.Errorf("search patients failed: %w", err)
	}
	if err := toError(resp); err != nil {
		return nil, err
	}
	return result, nil
}

// PatientsByDisease 按病名子串查询
func (c *HospitalClient) PatientsByDisease(disease string) ([]Patient, error) {
	var result []Patient
	resp, err := c.httpClient.R().
		SetResult(&result).
		Get("/patients/disease/" + disease)
	if err != nil {
		return nil, fmt.Errorf("patients by disease failed: %w", err)
	}
	if err := toError(resp); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdatePatient 患者部分更新（fields 里只放要改的字段）
func (c *HospitalClient) UpdatePatient(id int64, fields map[string]any) error {
	resp, err := c.httpClient.R().
		SetBody(fields).
		Put(fmt.Sprintf("/patients/%d", id))
	if err != nil {
		return fmt.Errorf("update patient failed: %w", err)
	}
	return toError(resp)
}

// DeletePatient 删除患者
func (c *HospitalClient) DeletePatient(id int64) error {
	resp, err := c.httpClient.R().
		Delete(fmt.Sprintf("/patients/%d", id))
	if err != nil {
		return fmt.Errorf("delete patient failed: %w", err)
	}
	return toError(resp)
}
