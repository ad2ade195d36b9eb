package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/trip-planner-service/internal/client"
	"github.com/kjstillabower/trip-planner-service/internal/lifecycle"
	"github.com/kjstillabower/trip-planner-service/internal/models"
	"github.com/kjstillabower/trip-planner-service/internal/planner"
)

// PlanGenerator is the planner dependency of the web layer.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req models.PlanRequest) (string, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	planner       PlanGenerator
	weatherClient client.ForecastClient
	logger        *zap.Logger
	// CachePing, when set, is called to check cache reachability. Used when backend is memcached.
	cachePing func() error
}

// NewHandler returns a new Handler. cachePing may be nil.
func NewHandler(p PlanGenerator, weatherClient client.ForecastClient, logger *zap.Logger, cachePing func() error) *Handler {
	return &Handler{
		planner:       p,
		weatherClient: weatherClient,
		logger:        logger,
		cachePing:     cachePing,
	}
}

// GetForm handles GET /. Renders the empty trip form with sensible date defaults.
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	today := time.Now()
	h.renderPage(w, r, http.StatusOK, pageData{
		StartDate:  today.AddDate(0, 0, 1).Format("2006-01-02"),
		EndDate:    today.AddDate(0, 0, 4).Format("2006-01-02"),
		Preference: "3",
	})
}

// PostPlan handles POST /plan from the HTML form.
func (h *Handler) PostPlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, pageData{Error: "Could not read form input."})
		return
	}

	req := models.PlanRequest{
		Region:     r.PostFormValue("region"),
		StartDate:  r.PostFormValue("start_date"),
		EndDate:    r.PostFormValue("end_date"),
		Preference: r.PostFormValue("preference"),
	}

	data := pageData{
		Region:     req.Region,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Preference: req.Preference,
	}

	itinerary, err := h.planner.GeneratePlan(r.Context(), req)
	if err != nil {
		status, msg := planErrorResponse(err)
		data.Error = msg
		h.logPlanError(r, err)
		h.renderPage(w, r, status, data)
		return
	}

	data.Itinerary = itinerary
	h.renderPage(w, r, http.StatusOK, data)
}

// PostPlanAPI handles POST /api/plan with a JSON body, for non-browser clients.
func (h *Handler) PostPlanAPI(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		return
	}

	itinerary, err := h.planner.GeneratePlan(r.Context(), req)
	if err != nil {
		status, msg := planErrorResponse(err)
		h.logPlanError(r, err)
		code := "PLAN_FAILED"
		if status == http.StatusBadRequest {
			code = "INVALID_INPUT"
		}
		writeError(w, r, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"itinerary": itinerary})
}

// planErrorResponse maps planner errors to an HTTP status and a user-safe message.
func planErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, planner.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Plan generation timed out. Please try again."
	default:
		return http.StatusBadGateway, "An error occurred during planning. Please try again."
	}
}

func (h *Handler) logPlanError(r *http.Request, err error) {
	logger := h.logger
	if l, ok := r.Context().Value("logger").(*zap.Logger); ok && l != nil {
		logger = l
	}
	if logger != nil {
		logger.Error("plan request failed", zap.Error(err))
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logPlanError(r, err)
	}
}

// GetHealth handles GET /health. Reports shutting-down, weather API key
// validity, and cache reachability when a ping is configured.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	statusCode := http.StatusOK
	checks := make(map[string]string)

	if lifecycle.IsShuttingDown() {
		status = "shutting-down"
		statusCode = http.StatusServiceUnavailable
	} else {
		checks["weatherApi"] = "healthy"
		if h.weatherClient != nil {
			if err := h.weatherClient.ValidateAPIKey(r.Context()); err != nil {
				checks["weatherApi"] = "unhealthy"
				status = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}
		if h.cachePing != nil {
			if h.cachePing() == nil {
				checks["cache"] = "healthy"
			} else {
				checks["cache"] = "unhealthy"
			}
		}
	}

	writeJSON(w, statusCode, map[string]interface{}{
		"status":    status,
		"service":   "trip-planner-service",
		"version":   "dev",
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code, message,
// and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	corrID := ""
	if v := r.Context().Value("correlation_id"); v != nil {
		corrID = v.(string)
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": corrID,
		},
	})
}
