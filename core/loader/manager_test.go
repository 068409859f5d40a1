package loader_test

import (
	"errors"
	"testing"

	"rom-curator/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestLoadAll(t *testing.T) {
	app := fiber.New()
	manager := loader.NewManager(zap.NewNop())

	enabled := &stubFeature{name: "catalog", enabled: true}
	disabled := &stubFeature{name: "integrity", enabled: false}
	manager.Register(enabled)
	manager.Register(disabled)

	require.NoError(t, manager.LoadAll(app))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestLoadAllPropagatesError(t *testing.T) {
	app := fiber.New()
	manager := loader.NewManager(zap.NewNop())

	failing := &stubFeature{name: "catalog", enabled: true, loadErr: errors.New("boom")}
	manager.Register(failing)

	err := manager.LoadAll(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog")
}
