package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/redliner/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/redliner/internal/core/services"
)

func TestNewPorts(t *testing.T) {
	store := memory.NewStore()
	document := services.NewDocumentService(store.DocumentStore(), nil, nil)
	annotation := services.NewAnnotationService(store.AnnotationStore(), store.DocumentStore(), nil, nil)

	ports := NewPorts(document, annotation)

	assert.Same(t, document, ports.Document)
	assert.Same(t, annotation, ports.Annotation)
	assert.Nil(t, ports.Renderer)
	assert.Nil(t, ports.Preference)
	assert.Nil(t, ports.Monitor)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	store := memory.NewStore()
	document := services.NewDocumentService(store.DocumentStore(), nil, nil)
	annotation := services.NewAnnotationService(store.AnnotationStore(), store.DocumentStore(), nil, nil)

	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{"missing document", &Ports{Annotation: annotation}, ErrMissingDocumentService},
		{"missing annotation", &Ports{Document: document}, ErrMissingAnnotationService},
		{"complete", &Ports{Document: document, Annotation: annotation}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPorts_ErrorMessages(t *testing.T) {
	assert.Contains(t, ErrMissingDocumentService.Error(), "document service")
	assert.Contains(t, ErrMissingAnnotationService.Error(), "annotation service")
}
