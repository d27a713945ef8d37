package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

// File keeps every history in one JSON document: storage key -> orders.
type File struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

func NewFile(path string, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{path: path, logger: logger}
}

func (r *File) Load(_ context.Context, key string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.read()
	if err != nil {
		return nil, err
	}
	return doc[key], nil
}

func (r *File) Save(_ context.Context, key string, orders []domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.read()
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	doc[key] = orders
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode order file: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return err
	}
	r.logger.Debug("order repo: file saved", zap.String("key", key), zap.Int("count", len(orders)))
	return nil
}

func (r *File) read() (map[string][]domain.Order, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string][]domain.Order), nil
		}
		return nil, err
	}
	doc := make(map[string][]domain.Order)
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode order file %s: %w", r.path, err)
	}
	return doc, nil
}
