package param

import (
	"context"
	"fmt"
)

// APIKey prefers a key set directly and falls back to the parameter at path.
// It returns "" when neither is configured.
func APIKey(ctx context.Context, direct, path string, fetcher Fetcher) (string, error) {
	if direct != "" {
		return direct, nil
	}
	if path == "" || fetcher == nil {
		return "", nil
	}
	key, err := fetcher.Fetch(ctx, path)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", path, err)
	}
	return key, nil
}
