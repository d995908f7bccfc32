package image

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGenerateReturnsInlineImage(t *testing.T) {
	models := &mockModels{resp: imageResponse([]byte{0x89, 'P', 'N', 'G'})}
	g := &GeminiGenerator{Client: models}

	got, err := g.Generate(context.Background(), Params{Prompt: "a gold trophy", AspectRatio: "16:9", Size: "2K"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got)

	assert.Equal(t, DefaultModel, models.model)
	assert.Equal(t, "a gold trophy", models.prompt)
	require.NotNil(t, models.config)
	assert.Equal(t, []string{"TEXT", "IMAGE"}, models.config.ResponseModalities)
	require.NotNil(t, models.config.ImageConfig)
	assert.Equal(t, "16:9", models.config.ImageConfig.AspectRatio)
	assert.Equal(t, "2K", models.config.ImageConfig.ImageSize)
}

func TestGenerateUsesConfiguredModel(t *testing.T) {
	models := &mockModels{resp: imageResponse([]byte("png"))}
	g := &GeminiGenerator{Client: models, Model: "gemini-3-pro-image-preview"}

	_, err := g.Generate(context.Background(), Params{Prompt: "x", AspectRatio: "1:1", Size: "1K"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-3-pro-image-preview", models.model)
}

func TestGenerateNoImage(t *testing.T) {
	tests := map[string]struct {
		resp   *genai.GenerateContentResponse
		reason string
	}{
		"nil response":  {resp: nil},
		"no candidates": {resp: &genai.GenerateContentResponse{}},
		"text only": {resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: "I can't draw that"}}},
			FinishReason: genai.FinishReasonStop,
		}}}},
		"safety": {
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				FinishReason: genai.FinishReasonSafety,
			}}},
			reason: string(genai.FinishReasonSafety),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			g := &GeminiGenerator{Client: &mockModels{resp: tc.resp}}
			_, err := g.Generate(context.Background(), Params{Prompt: "x"})
			require.ErrorIs(t, err, ErrNoImageReturned)
			if tc.reason != "" {
				assert.Contains(t, err.Error(), tc.reason)
			}
		})
	}
}

func TestGenerateTimeoutCancelsCall(t *testing.T) {
	models := &mockModels{block: true}
	g := &GeminiGenerator{Client: models, Timeout: 50 * time.Millisecond}

	start := time.Now()
	_, err := g.Generate(context.Background(), Params{Prompt: "slow"})
	require.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "0.05s")
	assert.ErrorIs(t, models.ctxErr, context.DeadlineExceeded, "in-flight call observed cancellation")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGenerateCallerDeadlineIsNotTimeout(t *testing.T) {
	models := &mockModels{block: true}
	g := &GeminiGenerator{Client: models, Timeout: time.Minute}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Generate(ctx, Params{Prompt: "slow"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateCallerCancelIsNotTimeout(t *testing.T) {
	g := &GeminiGenerator{Client: &mockModels{block: true}, Timeout: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, Params{Prompt: "x"})
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateProviderErrorPassesThrough(t *testing.T) {
	boom := errors.New("rpc error: quota exceeded")
	g := &GeminiGenerator{Client: &mockModels{err: boom}}

	_, err := g.Generate(context.Background(), Params{Prompt: "x"})
	assert.Equal(t, boom, err)
}

func TestMissingKeyIsCached(t *testing.T) {
	lookups := 0
	g := &GeminiGenerator{Key: func(context.Context) (string, error) {
		lookups++
		return "", nil
	}}

	for range 3 {
		_, err := g.Generate(context.Background(), Params{Prompt: "x"})
		require.ErrorIs(t, err, ErrConfiguration)
	}
	assert.Equal(t, 1, lookups)
	assert.Contains(t, ErrConfiguration.Error(), "GEMINI_API_KEY")
}

func TestKeyLookupErrorIsRetried(t *testing.T) {
	boom := errors.New("ssm unavailable")
	lookups := 0
	g := &GeminiGenerator{Key: func(context.Context) (string, error) {
		lookups++
		if lookups == 1 {
			return "", boom
		}
		return "test-key", nil
	}}

	_, err := g.Generate(context.Background(), Params{Prompt: "x"})
	assert.ErrorIs(t, err, boom)

	models, err := g.client(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, models)

	again, err := g.client(context.Background())
	require.NoError(t, err)
	assert.Same(t, models, again)
	assert.Equal(t, 2, lookups)
}

func TestNilKeySource(t *testing.T) {
	g := &GeminiGenerator{}
	_, err := g.Generate(context.Background(), Params{Prompt: "x"})
	assert.ErrorIs(t, err, ErrConfiguration)
}
