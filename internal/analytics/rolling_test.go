package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   []*float64
	}{
		{
			name:   "window of three",
			values: []float64{1, 2, 3, 4, 5},
			window: 3,
			want:   []*float64{nil, nil, floatPtr(2), floatPtr(3), floatPtr(4)},
		},
		{
			name:   "window equals length",
			values: []float64{2, 4, 6},
			window: 3,
			want:   []*float64{nil, nil, floatPtr(4)},
		},
		{
			name:   "window larger than series",
			values: []float64{1, 2},
			window: 10,
			want:   []*float64{nil, nil},
		},
		{
			name:   "empty series",
			values: nil,
			window: 5,
			want:   []*float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rollingMean(tt.values, tt.window)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				if tt.want[i] == nil {
					assert.Nil(t, got[i], "index %d", i)
				} else {
					require.NotNil(t, got[i], "index %d", i)
					assert.InDelta(t, *tt.want[i], *got[i], 1e-9, "index %d", i)
				}
			}
		})
	}
}

func TestRollingStd(t *testing.T) {
	// Sample standard deviation of {1,2,3} is 1.
	got := rollingStd([]float64{1, 2, 3, 4}, 3)

	require.Len(t, got, 4)
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])
	require.NotNil(t, got[2])
	assert.InDelta(t, 1.0, *got[2], 1e-9)
	require.NotNil(t, got[3])
	assert.InDelta(t, 1.0, *got[3], 1e-9)
}

func TestSampleStd(t *testing.T) {
	assert.Equal(t, 0.0, sampleStd(nil))
	assert.Equal(t, 0.0, sampleStd([]float64{5}))
	assert.InDelta(t, 2.0, sampleStd([]float64{2, 4, 6, 8}), 1e-6)
}

func TestMeanAndStd(t *testing.T) {
	mean, std := meanAndStd([]float64{10, 20, 30})
	assert.InDelta(t, 20.0, mean, 1e-9)
	assert.InDelta(t, 10.0, std, 1e-9)

	mean, std = meanAndStd(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "10.00%", formatPercent(0.10))
	assert.Equal(t, "-3.25%", formatPercent(-0.0325))
	assert.Equal(t, "0.00%", formatPercent(0))
}
