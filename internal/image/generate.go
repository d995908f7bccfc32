package image

import "context"

type Params struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	Size        string `json:"size"`
}

type Generator interface {
	Generate(context.Context, Params) ([]byte, error)
}
