package utils

import (
	"testing"
	"time"
)

func TestParseFlexibleTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{
			name:  "rfc3339 utc",
			value: "2025-03-01T12:30:00Z",
			want:  time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "rfc3339 with offset",
			value: "2025-03-01T12:30:00+07:00",
			want:  time.Date(2025, 3, 1, 12, 30, 0, 0, time.FixedZone("", 7*3600)),
			ok:    true,
		},
		{
			name:  "datetime without zone",
			value: "2025-03-01T12:30:00",
			want:  time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "empty",
			value: "",
			ok:    false,
		},
		{
			name:  "date only",
			value: "2025-03-01",
			ok:    false,
		},
		{
			name:  "garbage",
			value: "next tuesday",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexibleTime(tt.value)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
