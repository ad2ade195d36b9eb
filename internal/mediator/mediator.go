package mediator

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kjstillabower/trip-planner-service/internal/models"
	"github.com/kjstillabower/trip-planner-service/internal/observability"
)

// ToolKind enumerates the tools the mediator can dispatch. A closed set: adding
// or removing a tool is a compile-time change to the dispatch switch, not a
// runtime registry edit.
type ToolKind int

const (
	ToolUnknown ToolKind = iota
	ToolDailyWeatherForecasts
)

// ToolNameDailyWeatherForecasts is the declared name of the weather tool.
const ToolNameDailyWeatherForecasts = "get_daily_weather_forecasts"

// DefaultMaxToolCalls bounds tool-loop iterations per assistant turn.
const DefaultMaxToolCalls = 5

func toolKindFor(name string) ToolKind {
	switch name {
	case ToolNameDailyWeatherForecasts:
		return ToolDailyWeatherForecasts
	default:
		return ToolUnknown
	}
}

// ForecastAggregator is the weather tool's handler.
type ForecastAggregator interface {
	Aggregate(ctx context.Context, entries []models.CityDateRange) (string, error)
}

// Mediator drives the multi-turn tool exchange for one assistant turn: detect
// a tool call, execute it, feed the structured result back, repeat until the
// model stops asking or the call ceiling is hit.
type Mediator struct {
	forecasts ForecastAggregator
	maxCalls  int
	logger    *zap.Logger
}

// New returns a Mediator. maxCalls falls back to DefaultMaxToolCalls when
// non-positive.
func New(forecasts ForecastAggregator, maxCalls int, logger *zap.Logger) *Mediator {
	if maxCalls <= 0 {
		maxCalls = DefaultMaxToolCalls
	}
	return &Mediator{
		forecasts: forecasts,
		maxCalls:  maxCalls,
		logger:    logger,
	}
}

// Resolve loops while the latest response's first part is a tool call and the
// per-turn counter is below the ceiling. Handler failures are surfaced to the
// model as an error-content result, never to the caller. An unrecognized tool
// name or a hit ceiling ends the loop with the last response returned as-is,
// which may still carry the unresolved call; the caller must tolerate a
// response with no text parts. Only a transport failure talking to the model
// yields a non-nil error.
func (m *Mediator) Resolve(ctx context.Context, session Session, resp *Response) (*Response, error) {
	calls := 0
	for {
		call := resp.ToolCall()
		if call == nil {
			return resp, nil
		}
		if calls >= m.maxCalls {
			observability.ToolLoopCeilingTotal.Inc()
			if m.logger != nil {
				m.logger.Warn("tool call ceiling reached", zap.Int("max_calls", m.maxCalls))
			}
			return resp, nil
		}
		calls++

		kind := toolKindFor(call.Name)
		if kind == ToolUnknown {
			observability.ToolCallsTotal.WithLabelValues(call.Name, "unknown").Inc()
			if m.logger != nil {
				m.logger.Warn("unknown tool requested", zap.String("tool", call.Name))
			}
			return resp, nil
		}

		if m.logger != nil {
			m.logger.Info("tool call", zap.Int("number", calls), zap.String("tool", call.Name))
		}

		result, err := m.dispatch(ctx, kind, call.Args)
		var payload map[string]any
		if err != nil {
			observability.ToolCallsTotal.WithLabelValues(call.Name, "handler_error").Inc()
			if m.logger != nil {
				m.logger.Error("tool handler failed", zap.String("tool", call.Name), zap.Error(err))
			}
			payload = map[string]any{"content": "Tool unavailable due to error: " + err.Error()}
		} else {
			observability.ToolCallsTotal.WithLabelValues(call.Name, "success").Inc()
			payload = map[string]any{"content": result}
		}

		next, sendErr := session.SendToolResult(ctx, call.Name, payload)
		if sendErr != nil {
			return resp, fmt.Errorf("send tool result: %w", sendErr)
		}
		resp = next
	}
}

// dispatch executes the handler for a recognized tool kind. A panicking
// handler is converted to an error so the loop keeps its no-abort contract.
func (m *Mediator) dispatch(ctx context.Context, kind ToolKind, args map[string]any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool handler panic: %v", r)
		}
	}()

	switch kind {
	case ToolDailyWeatherForecasts:
		entries, parseErr := parseCityDateRanges(args)
		if parseErr != nil {
			return "", parseErr
		}
		return m.forecasts.Aggregate(ctx, entries)
	default:
		return "", fmt.Errorf("unhandled tool kind %d", kind)
	}
}

// parseCityDateRanges decodes model-supplied arguments into typed entries via
// a JSON round trip, the simplest faithful mapping of a map[string]any schema.
func parseCityDateRanges(args map[string]any) ([]models.CityDateRange, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode tool arguments: %w", err)
	}
	var parsed struct {
		CityDateRanges []models.CityDateRange `json:"city_date_ranges"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	return parsed.CityDateRanges, nil
}
