package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterAuthRoutes 注册认证路由
func (r *Router) RegisterAuthRoutes(a *AuthHandler) {
	r.Handle("/register", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		a.Register(w, req)
	})

	r.Handle("/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		a.Login(w, req)
	})
}

// RegisterHospitalRoutes 注册科室/患者路由
func (r *Router) RegisterHospitalRoutes(h *HospitalHandler) {
	r.Handle("/departments", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			h.AddDepartment(w, req)
		case http.MethodGet:
			h.ListDepartments(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle("/patients", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			h.AddPatient(w, req)
		case http.MethodGet:
			h.ListPatients(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle("/patients/search", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SearchPatients(w, req)
	})

	// disease/{substr}
	r.Handle("/patients/disease/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		disease := strings.TrimPrefix(req.URL.Path, "/patients/disease/")
		if disease == "" || strings.Contains(disease, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.PatientsByDisease(w, req, disease)
	})

	// patients/{id}
	r.Handle("/patients/", func(w http.ResponseWriter, req *http.Request) {
		raw := strings.TrimPrefix(req.URL.Path, "/patients/")
		if raw == "" || strings.Contains(raw, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		id, err := parseInt64(raw)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch req.Method {
		case http.MethodPut:
			h.UpdatePatient(w, req, id)
		case http.MethodDelete:
			h.DeletePatient(w, req, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}
