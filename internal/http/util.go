package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"backoffice-data/internal/domain"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMsg 错误/提示统一走 {"msg": ...}（与前端约定一致）
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// writeError 领域错误 -> HTTP 状态码
// Storage 错误不向客户端透出原始信息，只打日志
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		writeMsg(w, http.StatusBadRequest, err.Error())
	case domain.KindAuth:
		writeMsg(w, http.StatusUnauthorized, err.Error())
	case domain.KindForbidden:
		writeMsg(w, http.StatusForbidden, err.Error())
	case domain.KindNotFound:
		writeMsg(w, http.StatusNotFound, err.Error())
	case domain.KindConflict:
		writeMsg(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Storage error", zap.Error(err))
		writeMsg(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return io.EOF
	}
	return json.Unmarshal(body, out)
}

// bearerToken 提取 Authorization: Bearer <token>
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
