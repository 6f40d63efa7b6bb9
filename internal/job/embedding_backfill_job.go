package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/formdeck/formdeck/internal/service"
)

// EmbeddingBackfillJob re-embeds FAQ records whose vector is absent,
// typically because the provider was down when the record was written.
// A run while the capability is unavailable is a no-op.
type EmbeddingBackfillJob struct {
	faqs *service.FAQService
}

func NewEmbeddingBackfillJob(faqs *service.FAQService) *EmbeddingBackfillJob {
	return &EmbeddingBackfillJob{faqs: faqs}
}

func (j *EmbeddingBackfillJob) Name() string {
	return "embedding_backfill"
}

func (j *EmbeddingBackfillJob) Run(ctx context.Context) error {
	filled, err := j.faqs.BackfillEmbeddings(ctx)
	if err != nil {
		return err
	}
	if filled > 0 {
		logutil.GetLogger(ctx).Info("backfilled faq embeddings", zap.Int("count", filled))
	}
	return nil
}
