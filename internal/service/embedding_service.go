package service

import (
	"context"
	"time"

	"github.com/formdeck/formdeck/internal/ai"
)

// EmbeddingService is the process-wide embedding capability. It is
// constructed once at startup and injected into whatever needs vectors.
// When the provider failed to initialize (or none is configured) the
// service stays usable but reports itself unavailable; callers must
// degrade to an absent embedding rather than fail their request.
type EmbeddingService struct {
	embedder ai.IEmbedder
	timeout  time.Duration
}

func NewEmbeddingService(embedder ai.IEmbedder, timeout time.Duration) *EmbeddingService {
	return &EmbeddingService{embedder: embedder, timeout: timeout}
}

// NewDisabledEmbeddingService returns a permanently unavailable capability.
func NewDisabledEmbeddingService() *EmbeddingService {
	return &EmbeddingService{}
}

func (s *EmbeddingService) Available() bool {
	return s != nil && s.embedder != nil
}

func (s *EmbeddingService) ModelName() string {
	if !s.Available() {
		return ""
	}
	return s.embedder.ModelName()
}

// Embed generates a vector for text. Every call carries a deadline; a
// provider that never answers counts as unavailable, not as a hang.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if !s.Available() {
		return nil, ai.ErrUnavailable
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	values, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return values, nil
}
