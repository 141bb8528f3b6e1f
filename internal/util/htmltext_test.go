package util

import "testing"

func TestStripTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Hyde Park 5K", "Hyde Park 5K"},
		{"simple markup", "<p>Join us for a <strong>5K</strong> run.</p>", "Join us for a 5K run."},
		{"nested blocks", "<div><h2>Route</h2><p>Two laps of the park.</p></div>", "Route Two laps of the park."},
		{"script dropped", "<p>Details</p><script>alert(1)</script>", "Details"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.input); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
