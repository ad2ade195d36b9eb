package cache

import "testing"

func TestMemcachedKey(t *testing.T) {
	c := &MemcachedCache{}
	if got := c.key("new york-2025-06-01"); got != "forecast:new_york-2025-06-01" {
		t.Errorf("key() = %q", got)
	}
}

func TestParseAddrs(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"localhost:11211", 1},
		{"a:11211, b:11211", 2},
		{"", 0},
		{" , ", 0},
	}
	for _, tt := range tests {
		if got := parseAddrs(tt.in); len(got) != tt.want {
			t.Errorf("parseAddrs(%q) = %v, want %d addrs", tt.in, got, tt.want)
		}
	}
}
