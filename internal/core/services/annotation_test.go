package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

func TestAnnotationService_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, err := env.documents.OpenOrRegister(ctx, writeFile(t, "a.pdf"))
	require.NoError(t, err)

	created, err := env.annotations.Create(ctx, &domain.Annotation{
		DocumentID: doc.ID,
		Type:       domain.AnnotationRectangle,
		X:          10,
		Y:          20,
		Width:      100,
		Height:     50,
	})
	require.NoError(t, err)

	list, err := env.annotations.ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, domain.AnnotationRectangle, got.Type)
	assert.InDelta(t, 10.0, got.X, 1e-9)
	assert.InDelta(t, 20.0, got.Y, 1e-9)
	assert.InDelta(t, 100.0, got.Width, 1e-9)
	assert.InDelta(t, 50.0, got.Height, 1e-9)
	assert.Equal(t, "#FF0000", got.Color)
	assert.InDelta(t, 2.0, got.StrokeThickness, 1e-9)
}

func TestAnnotationService_CreateStampsTimestamps(t *testing.T) {
	env := newTestEnv(t)
	doc := env.openDoc(t, "a.pdf")
	stamp := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	env.annotations.now = func() time.Time { return stamp }

	a, err := env.annotations.Create(context.Background(), &domain.Annotation{
		DocumentID: doc.ID,
		Type:       "circle",
		CreatedAt:  time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, stamp, a.CreatedAt)
	assert.Equal(t, stamp, a.LastModified)
	assert.Equal(t, domain.AnnotationCircle, a.Type, "type is canonicalised")
}

func TestAnnotationService_CreateUsesConfiguredDefaults(t *testing.T) {
	env := newTestEnv(t)
	doc := env.openDoc(t, "a.pdf")
	require.NoError(t, env.settings.Set(KeyDefaultColor, "#00FF00"))
	require.NoError(t, env.settings.Set(KeyDefaultStroke, "4"))

	a, err := env.annotations.Create(context.Background(), &domain.Annotation{DocumentID: doc.ID, Type: "Arrow"})

	require.NoError(t, err)
	assert.Equal(t, "#00FF00", a.Color)
	assert.InDelta(t, 4.0, a.StrokeThickness, 1e-9)
}

func TestAnnotationService_CreateRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")

	tests := []struct {
		name string
		a    *domain.Annotation
		want error
	}{
		{"nil", nil, domain.ErrInvalidInput},
		{"missing document id", &domain.Annotation{Type: "Rectangle"}, domain.ErrInvalidInput},
		{"missing type", &domain.Annotation{DocumentID: doc.ID}, domain.ErrInvalidInput},
		{"unknown type", &domain.Annotation{DocumentID: doc.ID, Type: "Star"}, domain.ErrUnsupportedType},
		{"unknown document", &domain.Annotation{DocumentID: 404, Type: "Rectangle"}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.annotations.Create(ctx, tt.a)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := env.annotations.ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnnotationService_LenientTypes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")
	require.NoError(t, env.settings.Set(KeyStrictTypes, "false"))

	a, err := env.annotations.Create(ctx, &domain.Annotation{DocumentID: doc.ID, Type: "Star"})

	require.NoError(t, err)
	assert.Equal(t, domain.AnnotationType("Star"), a.Type)
}

func TestAnnotationService_ListOrderedAndFiltered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")
	other := env.openDoc(t, "b.pdf")

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	env.annotations.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	layers := []string{"Notes", "Redlines", "Notes", ""}
	for _, layer := range layers {
		_, err := env.annotations.Create(ctx, &domain.Annotation{DocumentID: doc.ID, Type: "Text", Layer: layer})
		require.NoError(t, err)
	}
	_, err := env.annotations.Create(ctx, &domain.Annotation{DocumentID: other.ID, Type: "Text", Layer: "Notes"})
	require.NoError(t, err)

	all, err := env.annotations.ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := range all {
		assert.Equal(t, doc.ID, all[i].DocumentID)
		assert.Equal(t, layers[i], all[i].Layer)
		if i > 0 {
			assert.True(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
		}
	}

	notes, err := env.annotations.ListForDocumentAndLayer(ctx, doc.ID, "Notes")
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	_, err = env.annotations.ListForDocumentAndLayer(ctx, doc.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	used, err := env.annotations.Layers(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Notes", "Redlines"}, used)
}

func TestAnnotationService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")

	a, err := env.annotations.Create(ctx, &domain.Annotation{DocumentID: doc.ID, Type: "Rectangle"})
	require.NoError(t, err)
	created := a.CreatedAt

	env.annotations.now = func() time.Time { return created.Add(time.Hour) }
	changed := *a
	changed.Color = "#0000FF"
	changed.CreatedAt = time.Time{}
	require.NoError(t, env.annotations.Update(ctx, &changed))

	got, err := env.annotations.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "#0000FF", got.Color)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), got.LastModified)

	missing := changed
	missing.ID = 999
	assert.ErrorIs(t, env.annotations.Update(ctx, &missing), domain.ErrNotFound)

	invalid := changed
	invalid.Type = "Star"
	assert.ErrorIs(t, env.annotations.Update(ctx, &invalid), domain.ErrUnsupportedType)
}

func TestAnnotationService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")

	a, err := env.annotations.Create(ctx, &domain.Annotation{DocumentID: doc.ID, Type: "Highlight"})
	require.NoError(t, err)

	require.NoError(t, env.annotations.Delete(ctx, a.ID))
	assert.ErrorIs(t, env.annotations.Delete(ctx, a.ID), domain.ErrNotFound)

	_, err = env.annotations.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationService_Draw(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")

	rect, err := env.annotations.Draw(ctx, doc.ID, driving.DrawRequest{
		Type: "rectangle", StartX: 110, StartY: 70, EndX: 10, EndY: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AnnotationRectangle, rect.Type)
	assert.Equal(t, domain.Rect{X: 10, Y: 20, Width: 100, Height: 50},
		domain.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height})
	assert.Equal(t, domain.LayerDefault, rect.Layer)

	arrow, err := env.annotations.Draw(ctx, doc.ID, driving.DrawRequest{
		Type: "Arrow", StartX: 100, StartY: 100, EndX: 40, EndY: 160, Layer: "Redlines",
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, arrow.X, 1e-9)
	assert.InDelta(t, -60.0, arrow.Width, 1e-9)
	assert.InDelta(t, 60.0, arrow.Height, 1e-9)
	assert.Equal(t, "Redlines", arrow.Layer)

	text, err := env.annotations.Draw(ctx, doc.ID, driving.DrawRequest{
		Type: "Text", StartX: 5, StartY: 6, EndX: 5, EndY: 6, Text: "note",
	})
	require.NoError(t, err)
	assert.Equal(t, "note", text.Text)
	assert.Zero(t, text.Width)
}

func TestAnnotationService_DrawTooSmall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")

	for _, req := range []driving.DrawRequest{
		{Type: "Rectangle", StartX: 0, StartY: 0, EndX: 5, EndY: 50},
		{Type: "Circle", StartX: 0, StartY: 0, EndX: 50, EndY: 4},
		{Type: "Arrow", StartX: 10, StartY: 10, EndX: 12, EndY: 12},
	} {
		_, err := env.annotations.Draw(ctx, doc.ID, req)
		assert.ErrorIs(t, err, domain.ErrTooSmall)
	}

	list, err := env.annotations.ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

type rejectingValidator struct {
	strict bool
}

func (v *rejectingValidator) Validate(_ *domain.Annotation, strict bool) error {
	v.strict = strict
	return domain.ErrInvalidInput
}

func TestAnnotationService_UsesValidator(t *testing.T) {
	env := newTestEnv(t)
	doc := env.openDoc(t, "a.pdf")
	v := &rejectingValidator{}
	env.annotations.validator = v

	_, err := env.annotations.Create(context.Background(), &domain.Annotation{DocumentID: doc.ID, Type: "Rectangle"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, v.strict)
}
