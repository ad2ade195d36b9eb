package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testAPIKey = "test-api-key-12345"

func forecastBody(cod string, points int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`{"cod": %s, "list": [`, cod))
	for i := 0; i < points; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf(`{
			"dt": %d,
			"main": {"temp": 21.5, "humidity": 60},
			"weather": [{"description": "clear sky"}],
			"wind": {"speed": 3.2}
		}`, 1748800800+i*10800))
	}
	sb.WriteString(`]}`)
	return sb.String()
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*OpenWeatherClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewOpenWeatherClient(testAPIKey, srv.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("NewOpenWeatherClient: %v", err)
	}
	return c, srv
}

func TestNewOpenWeatherClient_KeyValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", testAPIKey, false},
		{"empty key", "", true},
		{"too short", "short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOpenWeatherClient(tt.key, "http://example.com", time.Second)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOpenWeatherClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidAPIKey) {
				t.Errorf("error = %v, want ErrInvalidAPIKey", err)
			}
		})
	}
}

func TestGetForecast_Success(t *testing.T) {
	var gotQuery map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
			"cnt":   r.URL.Query().Get("cnt"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, forecastBody(`"200"`, 3))
	})

	samples, err := c.GetForecast(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("GetForecast() error: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	s := samples[0]
	if s.Temperature != 21.5 || s.Condition != "clear sky" || s.Humidity != 60 || s.WindSpeed != 3.2 {
		t.Errorf("sample = %+v", s)
	}

	if gotQuery["q"] != "Paris" || gotQuery["appid"] != testAPIKey ||
		gotQuery["units"] != "metric" || gotQuery["cnt"] != "40" {
		t.Errorf("request query = %v", gotQuery)
	}
}

func TestGetForecast_HTTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrInvalidAPIKey},
		{"not found", http.StatusNotFound, ErrCityNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrUpstreamFailure},
		{"bad gateway", http.StatusBadGateway, ErrUpstreamFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.GetForecast(context.Background(), "Paris")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetForecast() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetForecast_ProviderCodeNot200(t *testing.T) {
	// cod arrives as either a string or a number depending on the payload.
	tests := []struct {
		name string
		body string
	}{
		{"string cod", `{"cod": "404", "list": []}`},
		{"numeric cod", `{"cod": 404, "list": []}`},
		{"success cod but empty list", forecastBody(`"200"`, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			_, err := c.GetForecast(context.Background(), "Paris")
			if !errors.Is(err, ErrNoForecast) {
				t.Errorf("GetForecast() error = %v, want ErrNoForecast", err)
			}
		})
	}
}

func TestGetForecast_MalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cod": "200", "list": [{`)
	})
	_, err := c.GetForecast(context.Background(), "Paris")
	if err == nil || !strings.Contains(err.Error(), "parse response") {
		t.Errorf("GetForecast() error = %v, want parse failure", err)
	}
}

func TestGetForecast_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, forecastBody(`"200"`, 1))
	}))
	defer srv.Close()

	c, err := NewOpenWeatherClient(testAPIKey, srv.URL, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewOpenWeatherClient: %v", err)
	}
	_, err = c.GetForecast(context.Background(), "Paris")
	if err == nil {
		t.Fatal("GetForecast() = nil error, want timeout")
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantErr     bool
		wantInvalid bool
	}{
		{"valid", http.StatusOK, false, false},
		{"unauthorized is fatal", http.StatusUnauthorized, true, true},
		{"server error is non-fatal", http.StatusInternalServerError, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCnt string
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotCnt = r.URL.Query().Get("cnt")
				w.WriteHeader(tt.status)
				if tt.status == http.StatusOK {
					fmt.Fprint(w, forecastBody(`"200"`, 1))
				}
			})

			err := c.ValidateAPIKey(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAPIKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantInvalid != errors.Is(err, ErrInvalidAPIKey) {
				t.Errorf("errors.Is(err, ErrInvalidAPIKey) = %v, want %v", !tt.wantInvalid, tt.wantInvalid)
			}
			if gotCnt != "1" {
				t.Errorf("validation cnt = %q, want 1", gotCnt)
			}
		})
	}
}

func TestCodString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"200"`, "200"},
		{`200`, "200"},
		{` "404" `, "404"},
		{``, ""},
	}
	for _, tt := range tests {
		if got := codString([]byte(tt.raw)); got != tt.want {
			t.Errorf("codString(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
