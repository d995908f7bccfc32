package image

import (
	"context"

	"google.golang.org/genai"
)

type mockModels struct {
	resp  *genai.GenerateContentResponse
	err   error
	block bool

	calls  int
	model  string
	prompt string
	config *genai.GenerateContentConfig
	ctxErr error
}

func (m *mockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.model = model
	m.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		m.prompt = contents[0].Parts[0].Text
	}
	if m.block {
		<-ctx.Done()
		m.ctxErr = ctx.Err()
		return nil, ctx.Err()
	}
	return m.resp, m.err
}

func imageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "here is your icon"},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
			}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}
