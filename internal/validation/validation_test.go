package validation

import (
	"errors"
	"testing"
)

func TestValidateRegion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxLen  int
		want    string
		wantErr error
	}{
		{"simple", "Goa", 120, "Goa", nil},
		{"trims whitespace", "  Northern Italy  ", 120, "Northern Italy", nil},
		{"comma and hyphen", "Aix-en-Provence, France", 120, "Aix-en-Provence, France", nil},
		{"unicode letters", "Québec", 120, "Québec", nil},
		{"digits allowed", "District 9", 120, "District 9", nil},
		{"empty", "", 120, "", ErrRegionEmpty},
		{"whitespace only", "   ", 120, "", ErrRegionEmpty},
		{"too long", "aaaaaa", 5, "", ErrRegionTooLong},
		{"angle brackets", "<script>", 120, "", ErrRegionInvalidChars},
		{"semicolon", "Goa; drop table", 120, "", ErrRegionInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRegion(tt.input, tt.maxLen)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateRegion(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateRegion(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "2025-06-01", false},
		{"trims", " 2025-06-01 ", false},
		{"wrong separator", "2025/06/01", true},
		{"short year", "25-06-01", true},
		{"impossible day", "2025-02-30", true},
		{"empty", "", true},
		{"text", "tomorrow", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("error = %v, want ErrInvalidDateFormat", err)
			}
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		wantDays int
		wantErr  error
	}{
		{"single day", "2025-06-01", "2025-06-01", 1, nil},
		{"three days inclusive", "2025-06-01", "2025-06-03", 3, nil},
		{"end before start", "2025-06-03", "2025-06-01", 0, ErrEndBeforeStart},
		{"bad start", "junk", "2025-06-01", 0, ErrInvalidDateFormat},
		{"bad end", "2025-06-01", "junk", 0, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, days, err := ValidateDateRange(tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateDateRange() error = %v, want %v", err, tt.wantErr)
			}
			if days != tt.wantDays {
				t.Errorf("days = %d, want %d", days, tt.wantDays)
			}
		})
	}
}

func TestValidatePreference(t *testing.T) {
	for _, ok := range []string{"1", "2", "3", " 2 "} {
		if err := ValidatePreference(ok); err != nil {
			t.Errorf("ValidatePreference(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"", "0", "4", "one", "12"} {
		if !errors.Is(ValidatePreference(bad), ErrInvalidPreference) {
			t.Errorf("ValidatePreference(%q) should fail", bad)
		}
	}
}
