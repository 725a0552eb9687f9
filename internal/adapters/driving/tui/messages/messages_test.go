package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewOpen, "open"},
		{ViewDocuments, "documents"},
		{ViewAnnotations, "annotations"},
		{ViewDraw, "draw"},
		{ViewSettings, "settings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Ordering(t *testing.T) {
	assert.Equal(t, ViewType(0), ViewMenu)
	assert.Less(t, int(ViewMenu), int(ViewHelp))
}

func TestDocumentOpened(t *testing.T) {
	doc := &domain.Document{ID: 3, FileName: "plan.pdf"}
	msg := DocumentOpened{Document: doc}
	assert.Equal(t, int64(3), msg.Document.ID)
	assert.NoError(t, msg.Err)
}

func TestAnnotationsLoaded_WithError(t *testing.T) {
	msg := AnnotationsLoaded{DocumentID: 1, Err: errors.New("boom")}
	assert.Empty(t, msg.Annotations)
	assert.EqualError(t, msg.Err, "boom")
}
