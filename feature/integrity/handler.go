package integrity

import (
	"rom-curator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/references", h.HandleReferenceCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck runs every check and returns a combined report.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if refs, err := h.service.CheckReferences(); err != nil {
		report["references"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["references"] = map[string]interface{}{"status": statusOf(refs.Clean()), "report": refs}
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = map[string]interface{}{"status": statusOf(schema.Clean()), "report": schema}
	}

	if unresolved, err := h.service.CountUnresolved(); err != nil {
		report["disagreements"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["disagreements"] = map[string]interface{}{"status": statusOf(unresolved == 0), "unresolved": unresolved}
	}

	return c.JSON(report)
}

// HandleReferenceCheck runs the referential check.
func (h *Handler) HandleReferenceCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckReferences()
	if err != nil {
		l.Error("Reference check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Clean() {
		l.Warn("Dangling references detected",
			zap.Int("releases_missing_work", len(report.ReleasesMissingWork)),
			zap.Int("releases_missing_platform", len(report.ReleasesMissingPlatform)),
			zap.Int("media_missing_release", len(report.MediaMissingRelease)),
		)
	}

	return c.JSON(fiber.Map{
		"status": statusOf(report.Clean()),
		"report": report,
	})
}

// HandleSchemaCheck runs the schema check.
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status": statusOf(report.Clean()),
		"report": report,
	})
}

func statusOf(clean bool) string {
	if clean {
		return "ok"
	}
	return "attention"
}
