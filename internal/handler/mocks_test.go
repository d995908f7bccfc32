package handler

import (
	"context"
	"errors"
	"sync"

	"github.com/dmorgan81/rcgraphics/internal/image"
)

var errProvider = errors.New("rpc error: quota exceeded")

type mockGenerator struct {
	mu    sync.Mutex
	calls []image.Params
	// fail maps a size to the error returned for it.
	fail map[string]error
}

func (m *mockGenerator) Generate(_ context.Context, params image.Params) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, params)
	if err, ok := m.fail[params.Size]; ok {
		return nil, err
	}
	return []byte("png:" + params.Size), nil
}
