package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeEnd(t *testing.T) {
	tests := []struct {
		name     string
		purchase time.Time
		want     time.Time
	}{
		{
			name:     "mid-month",
			purchase: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			want:     time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "crosses year boundary",
			purchase: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			want:     time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "leap february",
			purchase: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			want:     time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeEnd(tt.purchase))
		})
	}
}
