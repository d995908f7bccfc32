package image

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash-image"
	DefaultTimeout = 60 * time.Second
)

var (
	ErrConfiguration   = errors.New("GEMINI_API_KEY environment variable is not set, get a key from https://aistudio.google.com/apikey")
	ErrTimeout         = errors.New("image generation timed out")
	ErrNoImageReturned = errors.New("gemini returned no image data, the model may have refused the prompt or returned text only")
)

// ContentGenerator is the slice of *genai.Models used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// KeySource resolves the provider API key. An empty key is a configuration error.
type KeySource func(context.Context) (string, error)

type GeminiGenerator struct {
	// Client is built from Key on first use when nil.
	Client  ContentGenerator
	Key     KeySource
	Model   string
	Timeout time.Duration

	mu  sync.Mutex
	err error
}

func NewGeminiGenerator(i *do.Injector) (Generator, error) {
	return &GeminiGenerator{
		Key: func(context.Context) (string, error) {
			return do.InvokeNamed[string](i, "gemini_key")
		},
		Model:   do.MustInvokeNamed[string](i, "gemini_model"),
		Timeout: do.MustInvokeNamed[time.Duration](i, "generation_timeout"),
	}, nil
}

// client builds the provider client once a key resolves. A missing key is
// remembered; lookup and construction failures are retried on the next call.
func (g *GeminiGenerator) client(ctx context.Context) (ContentGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Client != nil {
		return g.Client, nil
	}
	if g.err != nil {
		return nil, g.err
	}
	if g.Key == nil {
		g.err = ErrConfiguration
		return nil, g.err
	}
	key, err := g.Key(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve api key: %w", err)
	}
	if key == "" {
		g.err = ErrConfiguration
		return nil, g.err
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.Client = client.Models
	return g.Client, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, params Params) ([]byte, error) {
	model := lo.Ternary(g.Model != "", g.Model, DefaultModel)
	timeout := lo.Ternary(g.Timeout > 0, g.Timeout, DefaultTimeout)
	log := log.FromContextOrDiscard(ctx).WithGroup("gemini").With(
		"model", model, "aspect_ratio", params.AspectRatio, "size", params.Size)

	models, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeoutCause(ctx, timeout, ErrTimeout)
	defer cancel()

	log.Info("generating image")
	resp, err := models.GenerateContent(ctx, model, genai.Text(params.Prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: params.AspectRatio,
			ImageSize:   params.Size,
		},
	})
	if err != nil {
		if errors.Is(context.Cause(ctx), ErrTimeout) {
			return nil, fmt.Errorf("%w after %gs", ErrTimeout, timeout.Seconds())
		}
		return nil, err
	}

	data, err := inlineImage(resp)
	if err != nil {
		return nil, err
	}
	log.Info("received image", "bytes", len(data))
	return data, nil
}

// inlineImage returns the first inline blob of the first candidate.
func inlineImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, ErrNoImageReturned
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return nil, ErrNoImageReturned
	default:
		return nil, fmt.Errorf("%w (finish reason: %s)", ErrNoImageReturned, candidate.FinishReason)
	}
}
