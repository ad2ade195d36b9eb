// Package planner owns the conversational session for one trip request: it
// validates input, builds the prompt, and hands tool mediation to the mediator.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/trip-planner-service/internal/client"
	"github.com/kjstillabower/trip-planner-service/internal/mediator"
	"github.com/kjstillabower/trip-planner-service/internal/models"
	"github.com/kjstillabower/trip-planner-service/internal/observability"
	"github.com/kjstillabower/trip-planner-service/internal/validation"
)

// forecastHorizonDays is how far ahead the provider's 5-day/3-hour forecast
// reaches. Trips starting later fall back to the seasonal prompt.
const forecastHorizonDays = 5

// maxRegionLen bounds region input length in runes.
const maxRegionLen = 120

// longTripDays is the duration above which a warning is logged; long ranges
// exceed the forecast window anyway and blow up prompt size.
const longTripDays = 30

// SessionFactory creates one model chat session per plan request.
type SessionFactory interface {
	NewSession(ctx context.Context) (mediator.Session, error)
}

// Deps are the collaborators a Planner needs.
type Deps struct {
	Sessions      SessionFactory
	Mediator      *mediator.Mediator
	WeatherClient client.ForecastClient
	Logger        *zap.Logger
}

// Planner generates natural-language trip itineraries.
type Planner struct {
	sessions SessionFactory
	mediator *mediator.Mediator
	logger   *zap.Logger
	now      func() time.Time
}

// New validates the weather API key and returns a Planner. A rejected key
// (HTTP 401) is fatal; any other validation failure is downgraded to a warning
// so a flaky network at startup does not abort the process.
func New(ctx context.Context, deps Deps) (*Planner, error) {
	if deps.Sessions == nil || deps.Mediator == nil {
		return nil, fmt.Errorf("%w: sessions and mediator are required", ErrConfig)
	}

	if deps.WeatherClient != nil {
		if err := deps.WeatherClient.ValidateAPIKey(ctx); err != nil {
			if errors.Is(err, client.ErrInvalidAPIKey) {
				return nil, fmt.Errorf("%w: %v", ErrConfig, err)
			}
			if deps.Logger != nil {
				deps.Logger.Warn("could not validate weather API key, continuing anyway", zap.Error(err))
			}
		} else if deps.Logger != nil {
			deps.Logger.Info("weather API key validation successful")
		}
	}

	return &Planner{
		sessions: deps.Sessions,
		mediator: deps.Mediator,
		logger:   deps.Logger,
		now:      time.Now,
	}, nil
}

// GeneratePlan produces the itinerary text for one request. Input validation
// happens before any network activity. Validation failures return
// ErrInvalidInput; everything downstream is wrapped into ErrPlanFailed with
// the original message preserved.
func (p *Planner) GeneratePlan(ctx context.Context, req models.PlanRequest) (string, error) {
	start := time.Now()

	region, startDate, days, err := p.validate(req)
	if err != nil {
		observability.PlanRequestsTotal.WithLabelValues("invalid_input").Inc()
		return "", err
	}

	now := p.now()
	forecastAvailable := !startDate.After(now.AddDate(0, 0, forecastHorizonDays))

	note := ""
	if !forecastAvailable {
		daysOut := int(startDate.Sub(now).Hours() / 24)
		note = fmt.Sprintf(
			"\nNote: Your trip starts %d days from now. Real-time weather forecasts are only available for the next %d days. The AI will use seasonal weather patterns for your destination instead.\n",
			daysOut, forecastHorizonDays)
	}

	if days > longTripDays && p.logger != nil {
		p.logger.Warn("trip duration is long, this may affect performance", zap.Int("days", days))
	}

	preference := preferenceInstruction(req.Preference)

	var prompt string
	if forecastAvailable {
		prompt = weatherAwarePrompt(region, req.StartDate, req.EndDate, days, preference)
	} else {
		prompt = seasonalPrompt(region, req.StartDate, req.EndDate, days, startDate.Month().String(), preference)
	}

	session, err := p.sessions.NewSession(ctx)
	if err != nil {
		observability.PlanRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %w", ErrPlanFailed, err)
	}

	resp, err := session.SendText(ctx, prompt)
	if err != nil {
		observability.PlanRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %w", ErrPlanFailed, err)
	}

	if forecastAvailable {
		resp, err = p.mediator.Resolve(ctx, session, resp)
		if err != nil {
			observability.PlanRequestsTotal.WithLabelValues("error").Inc()
			return "", fmt.Errorf("%w: %w", ErrPlanFailed, err)
		}
	}

	// A turn that ended at the tool-call ceiling can carry no text parts.
	text := resp.Text()
	if text == "" {
		text = "No response generated. Please try again."
	}

	elapsed := time.Since(start)
	observability.PlanRequestsTotal.WithLabelValues("success").Inc()
	observability.PlanDurationSeconds.Observe(elapsed.Seconds())
	if p.logger != nil {
		p.logger.Info("plan generated",
			zap.String("region", region),
			zap.Int("days", days),
			zap.Bool("forecast_available", forecastAvailable),
			zap.Duration("duration", elapsed))
	}

	return note + text, nil
}

// validate rejects bad input before any network activity.
func (p *Planner) validate(req models.PlanRequest) (region string, startDate time.Time, days int, err error) {
	region, err = validation.ValidateRegion(req.Region, maxRegionLen)
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	startDate, _, days, err = validation.ValidateDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err = validation.ValidatePreference(req.Preference); err != nil {
		return "", time.Time{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return region, startDate, days, nil
}
