package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formdeck/formdeck/internal/docstore"
	"github.com/formdeck/formdeck/internal/model"
	appErr "github.com/formdeck/formdeck/internal/pkg/errors"
	"github.com/formdeck/formdeck/internal/service"
)

func newSchemaService(t *testing.T) (*service.SchemaService, *docstore.Collection[model.AppSchema]) {
	t.Helper()
	collection := docstore.NewCollection[model.AppSchema](t.TempDir(), "app_schemas")
	return service.NewSchemaService(collection), collection
}

func testSchema(id, name string) model.AppSchema {
	return model.AppSchema{
		ID:   id,
		Name: name,
		Fields: []model.FieldDefinition{
			{Name: "title", Label: "Title", Type: model.FieldTypeText, Required: true},
			{Name: "due", Label: "Due", Type: model.FieldTypeDate},
		},
	}
}

func TestSchemaServiceCreateAndGet(t *testing.T) {
	svc, _ := newSchemaService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, testSchema("app-1", "Tasks"))
	require.NoError(t, err)
	require.Equal(t, "app-1", created.ID)

	got, err := svc.GetByID(ctx, "app-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Tasks", got.Name)
	require.Len(t, got.Fields, 2)
}

func TestSchemaServiceGetAbsentIsNotAnError(t *testing.T) {
	svc, _ := newSchemaService(t)

	got, err := svc.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSchemaServiceCreateDuplicateID(t *testing.T) {
	svc, _ := newSchemaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testSchema("app-1", "Tasks"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, testSchema("app-1", "Other"))
	require.ErrorIs(t, err, appErr.ErrDuplicateID)

	schemas, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, schemas, 1, "failed create must leave the collection unchanged")
}

func TestSchemaServiceCreateDuplicateName(t *testing.T) {
	svc, _ := newSchemaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testSchema("app-1", "Tasks"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, testSchema("app-2", "Tasks"))
	require.ErrorIs(t, err, appErr.ErrDuplicateName)

	schemas, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, schemas, 1)
}

func TestSchemaServiceCreateRejectsUnknownFieldType(t *testing.T) {
	svc, _ := newSchemaService(t)

	schema := testSchema("app-1", "Tasks")
	schema.Fields[0].Type = "dropdown"
	_, err := svc.Create(context.Background(), schema)
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestSchemaServiceUpdateNotFound(t *testing.T) {
	svc, _ := newSchemaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testSchema("app-1", "Tasks"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "missing", testSchema("missing", "Renamed"))
	require.ErrorIs(t, err, appErr.ErrNotFound)

	schemas, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	require.Equal(t, "Tasks", schemas[0].Name)
}

func TestSchemaServiceUpdateNameConflict(t *testing.T) {
	svc, _ := newSchemaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testSchema("app-1", "Tasks"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, testSchema("app-2", "Contacts"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "app-2", testSchema("app-2", "Tasks"))
	require.ErrorIs(t, err, appErr.ErrDuplicateName)
}

func TestSchemaServiceUpdateKeepsOwnName(t *testing.T) {
	svc, _ := newSchemaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testSchema("app-1", "Tasks"))
	require.NoError(t, err)

	updated := testSchema("app-1", "Tasks")
	updated.Description = "task tracker"
	got, err := svc.Update(ctx, "app-1", updated)
	require.NoError(t, err)
	require.Equal(t, "task tracker", got.Description)
}

func TestSchemaServiceUpdateNeverAltersID(t *testing.T) {
	svc, _ := newSchemaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testSchema("app-1", "Tasks"))
	require.NoError(t, err)

	body := testSchema("sneaky-id", "Tasks v2")
	got, err := svc.Update(ctx, "app-1", body)
	require.NoError(t, err)
	require.Equal(t, "app-1", got.ID)

	stored, err := svc.GetByID(ctx, "app-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "Tasks v2", stored.Name)
}

func TestSchemaServiceDelete(t *testing.T) {
	svc, _ := newSchemaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testSchema("app-1", "Tasks"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "app-1"))
	require.ErrorIs(t, svc.Delete(ctx, "app-1"), appErr.ErrNotFound)

	schemas, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, schemas)
}
