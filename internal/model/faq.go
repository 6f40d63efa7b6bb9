package model

import (
	"fmt"

	appErr "github.com/formdeck/formdeck/internal/pkg/errors"
)

// FAQ is a question/answer pair. QuestionEmbedding is the vector derived
// from Question; nil means absent. The FAQ service keeps it in sync with
// the question text, so a present embedding is never stale.
type FAQ struct {
	ID                string    `json:"id,omitempty"`
	Question          string    `json:"question"`
	Answer            string    `json:"answer"`
	QuestionEmbedding []float32 `json:"question_embedding,omitempty"`
}

func (f FAQ) Validate() error {
	if f.Question == "" {
		return fmt.Errorf("%w: question required", appErr.ErrInvalid)
	}
	if f.Answer == "" {
		return fmt.Errorf("%w: answer required", appErr.ErrInvalid)
	}
	return nil
}
