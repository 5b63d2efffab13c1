package reservation

import (
	"testing"
	"time"
)

func TestTotalCharge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int64
		checkIn  time.Time
		checkOut time.Time
		want     int64
	}{
		{
			name:     "same-day stay counts as one night",
			rate:     100,
			checkIn:  day(2024, time.March, 1),
			checkOut: day(2024, time.March, 1),
			want:     100,
		},
		{
			name:     "inclusive three-day stay",
			rate:     100,
			checkIn:  day(2024, time.March, 1),
			checkOut: day(2024, time.March, 3),
			want:     300,
		},
		{
			name:     "range crossing a month boundary",
			rate:     50,
			checkIn:  day(2024, time.June, 29),
			checkOut: day(2024, time.July, 2),
			want:     200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalCharge(tt.rate, tt.checkIn, tt.checkOut); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
