package httpapi

import (
	"net/http"

	"backoffice-data/internal/domain"
	"backoffice-data/internal/service"

	"go.uber.org/zap"
)

// AuthHandler 注册/登录 Handler
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler 创建注册/登录 Handler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register POST /register（仅 admin）
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := h.authService.RequireRole(ctx, bearerToken(r), domain.RoleAdmin); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeMsg(w, http.StatusBadRequest, "missing JSON in request")
		return
	}

	resp, err := h.authService.Register(ctx, service.RegisterRequest{
		Username: body.Username,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"user_id": resp.UserID,
	})
}

// Login POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeMsg(w, http.StatusBadRequest, "missing JSON in request")
		return
	}

	resp, err := h.authService.Login(ctx, service.LoginRequest{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": resp.Token})
}
