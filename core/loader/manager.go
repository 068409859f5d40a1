package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature is one loadable application module.
type Feature interface {
	// Name returns the feature's name, for logging.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes.
	Load(app fiber.Router) error
}

// Manager holds the registry of available features.
type Manager struct {
	features []Feature
	logger   *zap.Logger
}

// NewManager creates a new feature manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// Register adds a feature to the registry.
func (m *Manager) Register(feature Feature) {
	m.features = append(m.features, feature)
}

// LoadAll loads every enabled feature, in registration order.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, feature := range m.features {
		if !feature.IsEnabled() {
			if m.logger != nil {
				m.logger.Info("Feature disabled", zap.String("feature", feature.Name()))
			}
			continue
		}
		if err := feature.Load(app); err != nil {
			return fmt.Errorf("load feature %s: %w", feature.Name(), err)
		}
		if m.logger != nil {
			m.logger.Info("Feature loaded", zap.String("feature", feature.Name()))
		}
	}
	return nil
}
