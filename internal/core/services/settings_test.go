package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/redliner/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyRecentLimit, int64(20))
	_ = store.Set(KeyDefaultStroke, int64(3))
	_ = store.Set(KeyStrictTypes, false)
	_ = store.Set(KeyDefaultLayer, "Notes")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 20, settings.Documents.RecentLimit)
	assert.InDelta(t, 3.0, settings.Annotations.DefaultStroke, 1e-9)
	assert.False(t, settings.Annotations.StrictTypes)
	assert.Equal(t, "Notes", settings.Annotations.DefaultLayer)
	assert.Equal(t, domain.DefaultViewerDPI, settings.Viewer.DPI)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	settings := service.GetDefaults()
	settings.Viewer.DPI = 300
	settings.Annotations.DefaultColor = "#123456"

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_SaveRejectsInvalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	settings := service.GetDefaults()
	settings.Viewer.DPI = -1

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.Set(KeyRecentLimit, "25"))
	require.NoError(t, service.Set(KeyDefaultStroke, "1.5"))
	require.NoError(t, service.Set(KeyStrictTypes, "false"))
	require.NoError(t, service.Set(KeyViewerDPI, " 200 "))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 25, settings.Documents.RecentLimit)
	assert.InDelta(t, 1.5, settings.Annotations.DefaultStroke, 1e-9)
	assert.False(t, settings.Annotations.StrictTypes)
	assert.Equal(t, 200, settings.Viewer.DPI)
	assert.NoError(t, service.Validate())
}

func TestSettingsService_SetRejects(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct{ key, value string }{
		{KeyRecentLimit, "ten"},
		{KeyRecentLimit, "0"},
		{KeyViewerDPI, "99999"},
		{KeyDefaultStroke, "-2"},
		{KeyStrictTypes, "maybe"},
		{KeyDefaultColor, "red"},
		{"unknown.key", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Len(t, keys, 6)
	assert.Contains(t, keys, KeyViewerDPI)
}
