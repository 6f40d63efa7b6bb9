package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/formdeck/formdeck/internal/docstore"
	"github.com/formdeck/formdeck/internal/model"
	appErr "github.com/formdeck/formdeck/internal/pkg/errors"
)

// FAQService is the CRUD surface for FAQ entries. It owns the embedding
// invariant: after any successful mutation the stored question_embedding
// is either derived from the stored question or absent, never stale.
type FAQService struct {
	faqs       *docstore.Collection[model.FAQ]
	embeddings *EmbeddingService
}

func NewFAQService(faqs *docstore.Collection[model.FAQ], embeddings *EmbeddingService) *FAQService {
	return &FAQService{faqs: faqs, embeddings: embeddings}
}

func (s *FAQService) List(ctx context.Context) ([]model.FAQ, error) {
	return s.faqs.Load(ctx)
}

// GetByID fails with ErrNotFound for unknown ids. Unlike schemas, absence
// is an error here; callers relying on the soft behavior must use List.
func (s *FAQService) GetByID(ctx context.Context, id string) (*model.FAQ, error) {
	records, err := s.faqs.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *FAQService) Create(ctx context.Context, faq model.FAQ) (*model.FAQ, error) {
	if faq.ID == "" {
		faq.ID = newID()
	}
	if err := faq.Validate(); err != nil {
		return nil, err
	}
	err := s.faqs.Update(ctx, func(records []model.FAQ) ([]model.FAQ, error) {
		for i := range records {
			if records[i].ID == faq.ID {
				return nil, appErr.ErrDuplicateID
			}
		}
		if faq.Question != "" && faq.QuestionEmbedding == nil {
			faq.QuestionEmbedding = s.embedQuestion(ctx, faq.ID, faq.Question)
		}
		return append(records, faq), nil
	})
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// Update replaces the record at id. The embedding is regenerated when the
// question text differs from the stored record, or when the incoming
// record carries a non-empty question without a vector (a client that
// edited the question and dropped the embedding, or never had one).
func (s *FAQService) Update(ctx context.Context, id string, faq model.FAQ) (*model.FAQ, error) {
	faq.ID = id
	if err := faq.Validate(); err != nil {
		return nil, err
	}
	err := s.faqs.Update(ctx, func(records []model.FAQ) ([]model.FAQ, error) {
		idx := -1
		for i := range records {
			if records[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, appErr.ErrNotFound
		}
		prev := records[idx]
		switch {
		case prev.Question != faq.Question:
			// A stale client-supplied vector is overwritten here; on
			// provider failure the embedding becomes absent.
			faq.QuestionEmbedding = s.embedQuestion(ctx, faq.ID, faq.Question)
		case faq.QuestionEmbedding == nil && faq.Question != "":
			faq.QuestionEmbedding = s.embedQuestion(ctx, faq.ID, faq.Question)
		}
		records[idx] = faq
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

func (s *FAQService) Delete(ctx context.Context, id string) error {
	return s.faqs.Update(ctx, func(records []model.FAQ) ([]model.FAQ, error) {
		for i := range records {
			if records[i].ID == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, appErr.ErrNotFound
	})
}

// BackfillEmbeddings retries embedding generation for records left without
// a vector by an earlier provider outage. Returns how many were filled.
func (s *FAQService) BackfillEmbeddings(ctx context.Context) (int, error) {
	if !s.embeddings.Available() {
		return 0, nil
	}
	filled := 0
	err := s.faqs.Update(ctx, func(records []model.FAQ) ([]model.FAQ, error) {
		for i := range records {
			if records[i].Question == "" || records[i].QuestionEmbedding != nil {
				continue
			}
			values, err := s.embeddings.Embed(ctx, records[i].Question)
			if err != nil {
				logutil.GetLogger(ctx).Warn("backfill embedding failed",
					zap.String("faq_id", records[i].ID), zap.Error(err))
				continue
			}
			records[i].QuestionEmbedding = values
			filled++
		}
		return records, nil
	})
	if err != nil {
		return 0, err
	}
	return filled, nil
}

// embedQuestion degrades to nil when the capability is unavailable or the
// call fails; embedding trouble never fails the enclosing mutation.
func (s *FAQService) embedQuestion(ctx context.Context, id, question string) []float32 {
	values, err := s.embeddings.Embed(ctx, question)
	if err != nil {
		logutil.GetLogger(ctx).Warn("embedding unavailable, storing faq without vector",
			zap.String("faq_id", id), zap.Error(err))
		return nil
	}
	return values
}
