package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	RecentFunc         func(ctx context.Context, limit int) ([]domain.RecentDocument, error)
	OpenOrRegisterFunc func(ctx context.Context, path string) (*domain.Document, error)
	DeleteFunc         func(ctx context.Context, id int64) error
	RevealFunc         func(ctx context.Context, id int64) error
}

var _ driving.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) OpenOrRegister(ctx context.Context, path string) (*domain.Document, error) {
	if m.OpenOrRegisterFunc != nil {
		return m.OpenOrRegisterFunc(ctx, path)
	}
	return &domain.Document{ID: 1, FilePath: path}, nil
}

func (m *MockDocumentService) Get(_ context.Context, id int64) (*domain.Document, error) {
	return &domain.Document{ID: id}, nil
}

func (m *MockDocumentService) ListRecent(_ context.Context, _ int) ([]domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) Recent(ctx context.Context, limit int) ([]domain.RecentDocument, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	return []domain.RecentDocument{}, nil
}

func (m *MockDocumentService) Touch(_ context.Context, id int64) (*domain.Document, error) {
	return &domain.Document{ID: id}, nil
}

func (m *MockDocumentService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockDocumentService) IsValidExtension(path string) bool {
	return domain.FileTypeFromPath(path).IsTracked()
}

func (m *MockDocumentService) RevealInFolder(ctx context.Context, id int64) error {
	if m.RevealFunc != nil {
		return m.RevealFunc(ctx, id)
	}
	return nil
}

func recent(id int64, name string, exists bool) domain.RecentDocument {
	return domain.RecentDocument{
		Document: domain.Document{
			ID:           id,
			FilePath:     "/drawings/" + name,
			FileName:     name,
			FileType:     domain.FileTypeFromPath(name),
			LastModified: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		Exists: exists,
	}
}

func loadedView(t *testing.T, svc *MockDocumentService, docs ...domain.RecentDocument) *View {
	t.Helper()
	v := NewView(nil, svc)
	v.SetDimensions(100, 30)
	v.Update(messages.DocumentsLoaded{Documents: docs})
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, &MockDocumentService{})

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Empty(t, v.Documents())
	assert.Nil(t, v.Init())
	assert.Nil(t, v.SelectedDocument())
}

func TestView_Load(t *testing.T) {
	svc := &MockDocumentService{
		RecentFunc: func(_ context.Context, limit int) ([]domain.RecentDocument, error) {
			assert.Equal(t, 0, limit)
			return []domain.RecentDocument{recent(1, "plan.pdf", true)}, nil
		},
	}
	v := NewView(nil, svc)

	cmd := v.Load()
	require.NotNil(t, cmd)
	assert.True(t, v.Loading())
	assert.Contains(t, v.View(), "Loading documents...")

	msg, ok := cmd().(messages.DocumentsLoaded)
	require.True(t, ok)
	require.Len(t, msg.Documents, 1)

	v.Update(msg)
	assert.False(t, v.Loading())
	assert.Len(t, v.Documents(), 1)
}

func TestView_LoadWithoutService(t *testing.T) {
	v := NewView(nil, nil)

	msg := v.Load()()
	loaded, ok := msg.(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, errServiceUnavailable)
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil, &MockDocumentService{})
	v.Update(messages.DocumentsLoaded{Err: errors.New("store offline")})

	assert.EqualError(t, v.Err(), "store offline")
	assert.Contains(t, v.View(), "Error: store offline")
}

func TestView_Navigation(t *testing.T) {
	v := loadedView(t, &MockDocumentService{},
		recent(1, "a.pdf", true), recent(2, "b.dxf", true), recent(3, "c.dwg", true))

	v.Update(key("j"))
	v.Update(key("down"))
	v.Update(key("down"))
	assert.Equal(t, 2, v.SelectedIndex())

	v.Update(key("k"))
	assert.Equal(t, 1, v.SelectedIndex())
	assert.Equal(t, int64(2), v.SelectedDocument().ID)
}

func TestView_EnterOpensDocument(t *testing.T) {
	var opened string
	svc := &MockDocumentService{
		OpenOrRegisterFunc: func(_ context.Context, path string) (*domain.Document, error) {
			opened = path
			return &domain.Document{ID: 7, FilePath: path}, nil
		},
	}
	v := loadedView(t, svc, recent(7, "plan.pdf", true))

	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.DocumentOpened)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, int64(7), msg.Document.ID)
	assert.Equal(t, "/drawings/plan.pdf", opened)
}

func TestView_EnterOnMissingFile(t *testing.T) {
	svc := &MockDocumentService{
		OpenOrRegisterFunc: func(_ context.Context, _ string) (*domain.Document, error) {
			return nil, domain.ErrFileNotFound
		},
	}
	v := loadedView(t, svc, recent(7, "gone.pdf", false))

	_, cmd := v.Update(key("enter"))
	msg := cmd().(messages.DocumentOpened)
	assert.ErrorIs(t, msg.Err, domain.ErrFileNotFound)
}

func TestView_EnterOnEmptyList(t *testing.T) {
	v := loadedView(t, &MockDocumentService{})

	_, cmd := v.Update(key("enter"))
	assert.Nil(t, cmd)
}

func TestView_RemoveReloads(t *testing.T) {
	var deleted int64
	svc := &MockDocumentService{
		DeleteFunc: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	v := loadedView(t, svc, recent(4, "plan.pdf", true))

	_, cmd := v.Update(key("d"))
	require.NotNil(t, cmd)
	msg := cmd().(messages.DocumentRemoved)
	assert.Equal(t, int64(4), deleted)
	require.NoError(t, msg.Err)

	_, reload := v.Update(msg)
	require.NotNil(t, reload)
	assert.True(t, v.Loading())
	assert.IsType(t, messages.DocumentsLoaded{}, reload())
}

func TestView_RemoveError(t *testing.T) {
	v := loadedView(t, &MockDocumentService{}, recent(4, "plan.pdf", true))

	_, cmd := v.Update(messages.DocumentRemoved{ID: 4, Err: domain.ErrNotFound})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
}

func TestView_Reveal(t *testing.T) {
	svc := &MockDocumentService{}
	v := loadedView(t, svc, recent(4, "plan.pdf", true))

	_, cmd := v.Update(key("o"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.StatusChanged{Text: "Opened containing folder"}, cmd())

	svc.RevealFunc = func(_ context.Context, _ int64) error { return domain.ErrFileNotFound }
	_, cmd = v.Update(key("o"))
	msg, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, domain.ErrFileNotFound)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := loadedView(t, &MockDocumentService{})

	_, cmd := v.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_ViewRendersList(t *testing.T) {
	v := loadedView(t, &MockDocumentService{},
		recent(1, "plan.pdf", true), recent(2, "site.dxf", false))

	out := v.View()
	assert.Contains(t, out, "Recent Documents (2)")
	assert.Contains(t, out, "plan.pdf")
	assert.Contains(t, out, "site.dxf (Missing)")
	assert.Contains(t, out, "[d] remove")
}

func TestView_ViewEmpty(t *testing.T) {
	v := loadedView(t, &MockDocumentService{})
	assert.Contains(t, v.View(), "No documents opened yet.")
}

func TestView_SelectionClampedAfterReload(t *testing.T) {
	v := loadedView(t, &MockDocumentService{}, recent(1, "a.pdf", true), recent(2, "b.pdf", true))
	v.Update(key("down"))
	require.Equal(t, 1, v.SelectedIndex())

	v.Update(messages.DocumentsLoaded{Documents: []domain.RecentDocument{recent(1, "a.pdf", true)}})
	assert.Equal(t, 0, v.SelectedIndex())
}

func TestView_Scrolling(t *testing.T) {
	docs := make([]domain.RecentDocument, 20)
	for i := range docs {
		docs[i] = recent(int64(i+1), "doc.pdf", true)
	}
	v := NewView(nil, &MockDocumentService{})
	v.SetDimensions(80, 12)
	v.Update(messages.DocumentsLoaded{Documents: docs})

	for range 10 {
		v.Update(key("down"))
	}
	assert.Equal(t, 10, v.SelectedIndex())
	assert.Equal(t, 7, v.offset)
	assert.Contains(t, v.View(), "[8-11 of 20]")
}
