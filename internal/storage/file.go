package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"agent-bridge/internal/relay"
)

// FileRecorder writes one JSON object per line.
type FileRecorder struct {
	path string
	mu   sync.Mutex
}

var _ relay.Listener = (*FileRecorder)(nil)

func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure transcript dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to init transcript file: %w", err)
	}
	_ = f.Close()
	return &FileRecorder{path: path}, nil
}

func (r *FileRecorder) Path() string { return r.path }

// MessageAccepted lets the recorder sit behind the gateway as a listener.
func (r *FileRecorder) MessageAccepted(_ context.Context, m relay.Message) error {
	return r.AppendMessage(m)
}

func (r *FileRecorder) AppendMessage(m relay.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("encode append: %w", err)
	}
	return nil
}
