// Package validate checks tool inputs before they reach the image provider.
package validate

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

const MaxPromptLength = 2000

var aspectRatios = []string{
	"1:1", "2:3", "3:2", "3:4", "4:3",
	"4:5", "5:4", "9:16", "16:9", "21:9",
}

// Sizes are the provider's small, medium and large tiers.
var sizes = []string{"1K", "2K", "4K"}

func AspectRatios() []string { return slices.Clone(aspectRatios) }

func Sizes() []string { return slices.Clone(sizes) }

func Prompt(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: prompt is required and must be non-empty", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(text); n > MaxPromptLength {
		return fmt.Errorf("%w: prompt must be %d characters or fewer (got %d)", ErrInvalidInput, MaxPromptLength, n)
	}
	return nil
}

func AspectRatio(ratio string) error {
	if !lo.Contains(aspectRatios, ratio) {
		return fmt.Errorf("%w: aspectRatio %q, valid values: %s", ErrInvalidInput, ratio, strings.Join(aspectRatios, ", "))
	}
	return nil
}

func Size(size string) error {
	if !lo.Contains(sizes, size) {
		return fmt.Errorf("%w: size %q, valid values: %s", ErrInvalidInput, size, strings.Join(sizes, ", "))
	}
	return nil
}
