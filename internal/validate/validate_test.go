package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", " \t\n ", true},
		{"single character", "a", false},
		{"exactly max", strings.Repeat("x", MaxPromptLength), false},
		{"max after trimming is measured untrimmed", "  " + strings.Repeat("x", MaxPromptLength-2), false},
		{"one over max", strings.Repeat("x", MaxPromptLength+1), true},
		{"far over max", strings.Repeat("golf ", 1000), true},
		{"multibyte counted as characters", strings.Repeat("é", MaxPromptLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Prompt(tt.prompt)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPromptTooLongReportsLength(t *testing.T) {
	err := Prompt(strings.Repeat("x", 2500))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "2000 characters or fewer (got 2500)")
}

func TestAspectRatio(t *testing.T) {
	valid := AspectRatios()
	require.Len(t, valid, 10)
	for _, r := range valid {
		assert.NoError(t, AspectRatio(r), r)
	}

	for _, r := range []string{"", "1:2", "16:10", "1x1", "square", " 1:1", "21:9 "} {
		err := AspectRatio(r)
		assert.ErrorIs(t, err, ErrInvalidInput, r)
	}
}

func TestSize(t *testing.T) {
	valid := Sizes()
	require.Equal(t, []string{"1K", "2K", "4K"}, valid)
	for _, s := range valid {
		assert.NoError(t, Size(s), s)
	}

	for _, s := range []string{"", "1k", "8K", "small", "large"} {
		err := Size(s)
		require.ErrorIs(t, err, ErrInvalidInput, s)
		assert.Contains(t, err.Error(), "1K, 2K, 4K")
	}
}

func TestEnumerationsAreCopies(t *testing.T) {
	got := AspectRatios()
	got[0] = "mutated"
	assert.NoError(t, AspectRatio("1:1"))

	sz := Sizes()
	sz[0] = "mutated"
	assert.NoError(t, Size("1K"))
}
