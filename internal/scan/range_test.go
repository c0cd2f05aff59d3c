package scan

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Range
		wantErr bool
	}{
		{"single", []string{"100"}, Range{100, 100}, false},
		{"single zero", []string{"0"}, Range{0, 0}, false},
		{"pair", []string{"100", "102"}, Range{100, 102}, false},
		{"equal pair", []string{"7", "7"}, Range{7, 7}, false},
		{"whitespace", []string{" 5 ", "6\n"}, Range{5, 6}, false},
		{"max uint64", []string{"18446744073709551615"}, Range{math.MaxUint64, math.MaxUint64}, false},
		{"start after end", []string{"102", "100"}, Range{}, true},
		{"non numeric", []string{"x"}, Range{}, true},
		{"negative", []string{"-1"}, Range{}, true},
		{"hex", []string{"0x10"}, Range{}, true},
		{"overflow", []string{"18446744073709551616"}, Range{}, true},
		{"second non numeric", []string{"1", "two"}, Range{}, true},
		{"no args", nil, Range{}, true},
		{"three args", []string{"1", "2", "3"}, Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.args)
			if tt.wantErr {
				var usageErr *UsageError
				require.True(t, errors.As(err, &usageErr), "expected *UsageError, got %T: %v", err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRangeSingleIsDegenerate(t *testing.T) {
	for _, n := range []string{"1", "42", "840000"} {
		r, err := ParseRange([]string{n})
		require.NoError(t, err)
		assert.Equal(t, r.Start, r.End)
		assert.Equal(t, uint64(1), r.Len())
	}
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, uint64(3), Range{100, 102}.Len())
	assert.Equal(t, uint64(math.MaxUint64), Range{0, math.MaxUint64}.Len())
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "#5", Range{5, 5}.String())
	assert.Equal(t, "#5..#9", Range{5, 9}.String())
}
