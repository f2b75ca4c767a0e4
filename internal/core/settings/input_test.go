package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{" 25 ", 25, false},
		{"99", 99, false},
		{"100", 0, true},
		{"-1", 0, true},
		{"ab", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMinutes(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSettingValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSeconds(t *testing.T) {
	got, err := ParseSeconds("59")
	require.NoError(t, err)
	assert.Equal(t, 59, got)

	_, err = ParseSeconds("60")
	assert.ErrorIs(t, err, ErrInvalidSettingValue)
}

func TestParseCycles(t *testing.T) {
	got, err := ParseCycles("4")
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	got, err = ParseCycles("")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = ParseCycles("0")
	assert.ErrorIs(t, err, ErrInvalidSettingValue)

	_, err = ParseCycles("21")
	assert.ErrorIs(t, err, ErrInvalidSettingValue)
}

func TestComposeDuration(t *testing.T) {
	assert.Equal(t, 25*60+30, ComposeDuration(25, 30, 1500))
	assert.Equal(t, 1500, ComposeDuration(0, 0, 1500))
}

func TestSplitDuration(t *testing.T) {
	minutes, seconds := SplitDuration(1530)
	assert.Equal(t, 25, minutes)
	assert.Equal(t, 30, seconds)

	minutes, seconds = SplitDuration(-4)
	assert.Zero(t, minutes)
	assert.Zero(t, seconds)
}
