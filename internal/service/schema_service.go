package service

import (
	"context"

	"github.com/formdeck/formdeck/internal/docstore"
	"github.com/formdeck/formdeck/internal/model"
	appErr "github.com/formdeck/formdeck/internal/pkg/errors"
)

// SchemaService is the CRUD surface for application schema definitions.
// Uniqueness invariants: schema ids are unique and immutable, schema
// names are unique across the collection.
type SchemaService struct {
	schemas *docstore.Collection[model.AppSchema]
}

func NewSchemaService(schemas *docstore.Collection[model.AppSchema]) *SchemaService {
	return &SchemaService{schemas: schemas}
}

func (s *SchemaService) List(ctx context.Context) ([]model.AppSchema, error) {
	return s.schemas.Load(ctx)
}

// GetByID returns nil without an error when the id is unknown; at this
// layer absence is a regular answer, not a failure.
func (s *SchemaService) GetByID(ctx context.Context, id string) (*model.AppSchema, error) {
	records, err := s.schemas.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (s *SchemaService) Create(ctx context.Context, schema model.AppSchema) (*model.AppSchema, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	err := s.schemas.Update(ctx, func(records []model.AppSchema) ([]model.AppSchema, error) {
		byID, byName := indexSchemas(records)
		if _, ok := byID[schema.ID]; ok {
			return nil, appErr.ErrDuplicateID
		}
		if _, ok := byName[schema.Name]; ok {
			return nil, appErr.ErrDuplicateName
		}
		return append(records, schema), nil
	})
	if err != nil {
		return nil, err
	}
	return &schema, nil
}

func (s *SchemaService) Update(ctx context.Context, id string, schema model.AppSchema) (*model.AppSchema, error) {
	schema.ID = id // the id is immutable, whatever the body carried
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	err := s.schemas.Update(ctx, func(records []model.AppSchema) ([]model.AppSchema, error) {
		byID, byName := indexSchemas(records)
		idx, ok := byID[id]
		if !ok {
			return nil, appErr.ErrNotFound
		}
		if other, ok := byName[schema.Name]; ok && records[other].ID != id {
			return nil, appErr.ErrDuplicateName
		}
		records[idx] = schema
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return &schema, nil
}

func (s *SchemaService) Delete(ctx context.Context, id string) error {
	return s.schemas.Update(ctx, func(records []model.AppSchema) ([]model.AppSchema, error) {
		byID, _ := indexSchemas(records)
		idx, ok := byID[id]
		if !ok {
			return nil, appErr.ErrNotFound
		}
		return append(records[:idx], records[idx+1:]...), nil
	})
}

func indexSchemas(records []model.AppSchema) (byID map[string]int, byName map[string]int) {
	byID = make(map[string]int, len(records))
	byName = make(map[string]int, len(records))
	for i := range records {
		byID[records[i].ID] = i
		byName[records[i].Name] = i
	}
	return byID, byName
}
