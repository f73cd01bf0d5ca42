package httpapi

import (
	"net/http"

	"backoffice-data/internal/domain"
	"backoffice-data/internal/service"

	"go.uber.org/zap"
)

// HospitalHandler 科室/患者 Handler
type HospitalHandler struct {
	authService     service.AuthService
	hospitalService service.HospitalService
	logger          *zap.Logger
}

// NewHospitalHandler 创建科室/患者 Handler
func NewHospitalHandler(authService service.AuthService, hospitalService service.HospitalService, logger *zap.Logger) *HospitalHandler {
	return &HospitalHandler{
		authService:     authService,
		hospitalService: hospitalService,
		logger:          logger,
	}
}

// requireToken 任意有效令牌
func (h *HospitalHandler) requireToken(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.authService.Identity(r.Context(), bearerToken(r)); err != nil {
		writeError(w, h.logger, err)
		return false
	}
	return true
}

// AddDepartment POST /departments（仅 admin）
func (h *HospitalHandler) AddDepartment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := h.authService.RequireRole(ctx, bearerToken(r), domain.RoleAdmin); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var body struct {
		Name       string  `json:"name"`
		HeadDoctor *string `json:"head_doctor"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeMsg(w, http.StatusBadRequest, "missing JSON in request")
		return
	}

	req := service.AddDepartmentRequest{Name: body.Name}
	if body.HeadDoctor != nil {
		req.HeadDoctor = *body.HeadDoctor
	}

	resp, err := h.hospitalService.AddDepartment(ctx, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":       "department added successfully",
		"department_id": resp.DepartmentID,
	})
}

// ListDepartments GET /departments
func (h *HospitalHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	if !h.requireToken(w, r) {
		return
	}

	departments, err := h.hospitalService.ListDepartments(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

// AddPatient POST /patients
func (h *HospitalHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	if !h.requireToken(w, r) {
		return
	}

	var body struct {
		Name         string `json:"name"`
		Age          int    `json:"age"`
		Disease      string `json:"disease"`
		AdmittedOn   string `json:"admitted_on"`
		DepartmentID int64  `json:"department_id"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeMsg(w, http.StatusBadRequest, "missing JSON in request")
		return
	}

	resp, err := h.hospitalService.AddPatient(r.Context(), service.AddPatientRequest{
		Name:         body.Name,
		Age:          body.Age,
		Disease:      body.Disease,
		AdmittedOn:   body.AdmittedOn,
		DepartmentID: body.DepartmentID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "patient registered successfully",
		"patient_id": resp.PatientID,
	})
}

// ListPatients GET /patients
func (h *HospitalHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	if !h.requireToken(w, r) {
		return
	}

	patients, err := h.hospitalService.ListPatients(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// PatientsByDisease GET /patients/disease/{substr}
func (h *HospitalHandler) PatientsByDisease(w http.ResponseWriter, r *http.Request, disease string) {
	if !h.requireToken(w, r) {
		return
	}

	patients, err := h.hospitalService.SearchPatientsByDisease(r.Context(), disease)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// SearchPatients GET /patients/search?name=
func (h *HospitalHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	if !h.requireToken(w, r) {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		writeMsg(w, http.StatusBadRequest, "query parameter 'name' is required")
		return
	}

	patients, err := h.hospitalService.SearchPatientsByName(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// UpdatePatient PUT /patients/{id}
func (h *HospitalHandler) UpdatePatient(w http.ResponseWriter, r *http.Request, id int64) {
	if !h.requireToken(w, r) {
		return
	}

	var body struct {
		Name         string `json:"name"`
		Age          int    `json:"age"`
		Disease      string `json:"disease"`
		AdmittedOn   string `json:"admitted_on"`
		DepartmentID int64  `json:"department_id"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeMsg(w, http.StatusBadRequest, "missing JSON in request")
		return
	}

	err := h.hospitalService.UpdatePatient(r.Context(), id, service.UpdatePatientRequest{
		Name:         body.Name,
		Age:          body.Age,
		Disease:      body.Disease,
		AdmittedOn:   body.AdmittedOn,
		DepartmentID: body.DepartmentID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "patient updated successfully"})
}

// DeletePatient DELETE /patients/{id}
func (h *HospitalHandler) DeletePatient(w http.ResponseWriter, r *http.Request, id int64) {
	if !h.requireToken(w, r) {
		return
	}

	if err := h.hospitalService.DeletePatient(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "patient deleted successfully"})
}
