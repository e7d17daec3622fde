package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandIDs(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []int
	}{
		{"single range", []string{"1-5"}, []int{1, 2, 3, 4, 5}},
		{"range then singles", []string{"1-5", "10", "23"}, []int{1, 2, 3, 4, 5, 10, 23}},
		{"token order preserved", []string{"10", "1-3"}, []int{10, 1, 2, 3}},
		{"duplicates preserved", []string{"4", "4", "3-5"}, []int{4, 4, 3, 4, 5}},
		{"degenerate range", []string{"7-7"}, []int{7}},
		{"empty input", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandIDs(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandIDsRejectsMalformedTokens(t *testing.T) {
	for _, tokens := range [][]string{
		{"abc"},
		{"1-x"},
		{"x-5"},
		{"1-2-3"},
		{"5-1"},
		{""},
	} {
		_, err := ExpandIDs(tokens)
		assert.Error(t, err, "tokens %v", tokens)
	}
}
