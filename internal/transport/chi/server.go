package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/careercompass/internal/domain"
	careeruc "github.com/kailas-cloud/careercompass/internal/usecase/career"
	healthuc "github.com/kailas-cloud/careercompass/internal/usecase/health"
	predictuc "github.com/kailas-cloud/careercompass/internal/usecase/predict"
	searchuc "github.com/kailas-cloud/careercompass/internal/usecase/search"
	statsuc "github.com/kailas-cloud/careercompass/internal/usecase/stats"
)

const maxBodyBytes = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the careercompass HTTP API.
type Server struct {
	careers       *careeruc.Service
	search        *searchuc.Service
	stats         *statsuc.Service
	predict       *predictuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	careers *careeruc.Service,
	search *searchuc.Service,
	stats *statsuc.Service,
	predict *predictuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		careers: careers,
		search:  search,
		stats:   stats,
		predict: predict,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		unknownFieldHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeCareerNotFound),
		sentinelHandler(domain.ErrInvalidSchema, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrPredictorDisabled, http.StatusNotImplemented, CodePredictorDisabled),
		sentinelHandler(domain.ErrPredictorProviderError, http.StatusBadGateway, CodePredictorProviderError),
	}
	return s
}

// Mount registers all routes on r.
func (s *Server) Mount(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r gochi.Router) {
		r.Get("/careers", s.ListCareers)
		r.Get("/search", s.SearchCareers)
		r.Get("/careers/{role}", s.GetCareer)
		r.Get("/fields", s.ListFields)
		r.Get("/stats", s.GetStats)
		r.Post("/predict", s.PredictRole)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
}

// ListCareers handles GET /api/v1/careers.
func (s *Server) ListCareers(w http.ResponseWriter, r *http.Request) {
	var params ListCareersParams
	if err := runtime.BindQueryParameter("form", true, false, "query", r.URL.Query(), &params.Query); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid format for parameter query: "+err.Error())
		return
	}

	query := deref(params.Query)
	if strings.TrimSpace(query) == "" {
		writeJSON(w, http.StatusOK, careersToList(s.careers.List(r.Context()), ""))
		return
	}

	s.runSearch(w, r, searchuc.Params{Query: query})
}

// SearchCareers handles GET /api/v1/search.
func (s *Server) SearchCareers(w http.ResponseWriter, r *http.Request) {
	var params SearchCareersParams
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dest any
	}{
		{"query", &params.Query},
		{"domain", &params.Domain},
		{"skill", &params.Skill},
		{"filter", &params.Filter},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest,
				"Invalid format for parameter "+p.name+": "+err.Error())
			return
		}
	}

	var filters []string
	if params.Filter != nil {
		filters = *params.Filter
	}

	s.runSearch(w, r, searchuc.Params{
		Query:   deref(params.Query),
		Domain:  deref(params.Domain),
		Skill:   deref(params.Skill),
		Filters: filters,
	})
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, p searchuc.Params) {
	req, err := searchuc.BuildRequest(p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, careersToList(results, req.Query()))
}

// GetCareer handles GET /api/v1/careers/{role}.
func (s *Server) GetCareer(w http.ResponseWriter, r *http.Request) {
	role := gochi.URLParam(r, "role")
	if unescaped, err := url.PathUnescape(role); err == nil {
		role = unescaped
	}

	rec, err := s.careers.Get(r.Context(), role)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, careerToDTO(rec))
}

// ListFields handles GET /api/v1/fields.
func (s *Server) ListFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FieldsResponse{Fields: s.careers.Fields(r.Context())})
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsToDTO(s.stats.Summary(r.Context())))
}

// PredictRole handles POST /api/v1/predict.
func (s *Server) PredictRole(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pred, err := s.predict.Predict(r.Context(), req.Profile)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictionToDTO(pred))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToDTO(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Validation errors carry their own text since it only describes the request.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) || errors.Is(err, domain.ErrInvalidSchema) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrPredictorDisabled,
		domain.ErrPredictorProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// unknownFieldHandler reports the offending field alongside the error.
func unknownFieldHandler(w http.ResponseWriter, err error, msg string) bool {
	var ufe *domain.UnknownFieldError
	if !errors.As(err, &ufe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"code":    CodeUnknownField,
		"message": msg,
		"field":   ufe.Field,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
