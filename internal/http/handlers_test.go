package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kjstillabower/trip-planner-service/internal/client"
	"github.com/kjstillabower/trip-planner-service/internal/lifecycle"
	"github.com/kjstillabower/trip-planner-service/internal/models"
	"github.com/kjstillabower/trip-planner-service/internal/planner"
)

type fakePlanner struct {
	req       models.PlanRequest
	itinerary string
	err       error
}

func (f *fakePlanner) GeneratePlan(ctx context.Context, req models.PlanRequest) (string, error) {
	f.req = req
	return f.itinerary, f.err
}

type fakeWeather struct {
	validateErr error
}

func (f *fakeWeather) GetForecast(ctx context.Context, city string) ([]models.ForecastSample, error) {
	return nil, errors.New("not used")
}

func (f *fakeWeather) ValidateAPIKey(ctx context.Context) error { return f.validateErr }

func newTestHandler(p PlanGenerator, weather *fakeWeather, cachePing func() error) *Handler {
	var wc client.ForecastClient
	if weather != nil {
		wc = weather
	}
	return NewHandler(p, wc, zap.NewNop(), cachePing)
}

func planForm() url.Values {
	return url.Values{
		"region":     {"Goa"},
		"start_date": {"2025-06-02"},
		"end_date":   {"2025-06-04"},
		"preference": {"3"},
	}
}

func TestGetForm(t *testing.T) {
	h := newTestHandler(&fakePlanner{}, nil, nil)

	rec := httptest.NewRecorder()
	h.GetForm(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `action="/plan"`) {
		t.Errorf("form missing plan action:\n%s", body)
	}
	if !strings.Contains(body, `name="region"`) {
		t.Error("form missing region field")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestPostPlan_Success(t *testing.T) {
	fp := &fakePlanner{itinerary: "Day 1 (2025-06-02) - Panaji"}
	h := newTestHandler(fp, nil, nil)

	req := httptest.NewRequest("POST", "/plan", strings.NewReader(planForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.PostPlan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body:\n%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Day 1 (2025-06-02) - Panaji") {
		t.Errorf("itinerary missing from page:\n%s", rec.Body.String())
	}
	if fp.req.Region != "Goa" || fp.req.StartDate != "2025-06-02" || fp.req.Preference != "3" {
		t.Errorf("planner request = %+v", fp.req)
	}
}

func TestPostPlan_InvalidInput(t *testing.T) {
	fp := &fakePlanner{err: fmt.Errorf("%w: region is required", planner.ErrInvalidInput)}
	h := newTestHandler(fp, nil, nil)

	form := planForm()
	form.Set("region", "")
	req := httptest.NewRequest("POST", "/plan", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.PostPlan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "region is required") {
		t.Errorf("validation message missing:\n%s", body)
	}
	// Submitted dates round-trip so the user can correct just the bad field.
	if !strings.Contains(body, `value="2025-06-02"`) {
		t.Errorf("form values not preserved:\n%s", body)
	}
}

func TestPostPlan_UpstreamFailure(t *testing.T) {
	fp := &fakePlanner{err: fmt.Errorf("%w: rpc unavailable", planner.ErrPlanFailed)}
	h := newTestHandler(fp, nil, nil)

	req := httptest.NewRequest("POST", "/plan", strings.NewReader(planForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.PostPlan(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "rpc unavailable") {
		t.Error("internal error detail leaked to the page")
	}
}

func TestPostPlanAPI(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		plannerErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"region":"Goa","start_date":"2025-06-02","end_date":"2025-06-04","preference":"3"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_BODY",
		},
		{
			name:       "invalid input",
			body:       `{"region":""}`,
			plannerErr: fmt.Errorf("%w: region is required", planner.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "plan failure",
			body:       `{"region":"Goa","start_date":"2025-06-02","end_date":"2025-06-04","preference":"3"}`,
			plannerErr: fmt.Errorf("%w: model down", planner.ErrPlanFailed),
			wantStatus: http.StatusBadGateway,
			wantCode:   "PLAN_FAILED",
		},
		{
			name:       "timeout",
			body:       `{"region":"Goa","start_date":"2025-06-02","end_date":"2025-06-04","preference":"3"}`,
			plannerErr: fmt.Errorf("%w: %w", planner.ErrPlanFailed, context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "PLAN_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakePlanner{itinerary: "the plan", err: tt.plannerErr}
			h := newTestHandler(fp, nil, nil)

			req := httptest.NewRequest("POST", "/api/plan", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.PostPlanAPI(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var payload map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if tt.wantCode == "" {
				if payload["itinerary"] != "the plan" {
					t.Errorf("payload = %v", payload)
				}
				return
			}
			errObj, _ := payload["error"].(map[string]any)
			if errObj["code"] != tt.wantCode {
				t.Errorf("error code = %v, want %s", errObj["code"], tt.wantCode)
			}
		})
	}
}

func TestGetHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := newTestHandler(&fakePlanner{}, &fakeWeather{}, func() error { return nil })
		rec := httptest.NewRecorder()
		h.GetHealth(rec, httptest.NewRequest("GET", "/health", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var payload map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatal(err)
		}
		if payload["status"] != "healthy" {
			t.Errorf("status = %v", payload["status"])
		}
		checks, _ := payload["checks"].(map[string]any)
		if checks["weatherApi"] != "healthy" || checks["cache"] != "healthy" {
			t.Errorf("checks = %v", checks)
		}
	})

	t.Run("weather key invalid", func(t *testing.T) {
		h := newTestHandler(&fakePlanner{}, &fakeWeather{validateErr: errors.New("401")}, nil)
		rec := httptest.NewRecorder()
		h.GetHealth(rec, httptest.NewRequest("GET", "/health", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d", rec.Code)
		}
		var payload map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatal(err)
		}
		if payload["status"] != "degraded" {
			t.Errorf("status = %v", payload["status"])
		}
	})

	t.Run("shutting down", func(t *testing.T) {
		lifecycle.SetShuttingDown(true)
		defer lifecycle.SetShuttingDown(false)

		h := newTestHandler(&fakePlanner{}, &fakeWeather{}, nil)
		rec := httptest.NewRecorder()
		h.GetHealth(rec, httptest.NewRequest("GET", "/health", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "shutting-down") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})
}
