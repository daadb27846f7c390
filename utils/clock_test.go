package utils

import (
	"testing"
	"time"
)

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 3, 15, 17, 42, 31, 999, time.UTC)
	got := Midnight(in)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight(%v) = %v, want %v", in, got, want)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "Wednesday",
			in:   time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Monday",
			in:   time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Sunday",
			in:   time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC),
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := FixedClock{Fixed: at}
	if !clock.Now().Equal(at) {
		t.Errorf("FixedClock.Now() = %v, want %v", clock.Now(), at)
	}
}
