package catalog

import (
	"errors"
	"strconv"

	"rom-curator/core/logger"
	"rom-curator/feature/catalog/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/stats", h.HandleStats)
	group.Get("/releases", h.HandleSearchReleases)
	group.Get("/releases/:id", h.HandleGetRelease)
	group.Get("/media", h.HandleLookupMedia)
	group.Get("/disagreements", h.HandleListDisagreements)
	group.Post("/disagreements/:id/resolve", h.HandleResolveDisagreement)
	group.Post("/reconcile", h.HandleReconcile)
}

// HandleStats returns per-entity row counts.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Stats()
	if err != nil {
		l.Error("Catalog stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(stats)
}

// HandleSearchReleases searches releases by title substring.
func (h *Handler) HandleSearchReleases(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	query := c.Query("q")
	limit := c.QueryInt("limit", 50)

	releases, err := h.service.SearchReleases(query, limit)
	if err != nil {
		l.Error("Release search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(releases)
}

// HandleGetRelease returns one release with its media.
func (h *Handler) HandleGetRelease(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "release id must be an integer",
		})
	}

	release, err := h.service.GetRelease(id)
	if err != nil {
		l.Error("Release lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if release == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "release not found",
		})
	}
	return c.JSON(release)
}

// HandleLookupMedia finds media rows by crc, sha1, or serial query parameter.
func (h *Handler) HandleLookupMedia(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	crc := c.Query("crc")
	sha1 := c.Query("sha1")
	serial := c.Query("serial")
	if crc == "" && sha1 == "" && serial == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "one of crc, sha1, or serial is required",
		})
	}

	media, err := h.service.LookupMedia(crc, sha1, serial)
	if err != nil {
		l.Error("Media lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(media)
}

// HandleListDisagreements lists disagreement rows, unresolved only unless
// all=true.
func (h *Handler) HandleListDisagreements(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	all := c.QueryBool("all", false)

	rows, err := h.service.ListDisagreements(!all)
	if err != nil {
		l.Error("Disagreement listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(rows)
}

// HandleResolveDisagreement marks one disagreement resolved.
func (h *Handler) HandleResolveDisagreement(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "disagreement id must be an integer",
		})
	}

	if err := h.service.ResolveDisagreement(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "disagreement not found",
			})
		}
		l.Error("Disagreement resolution failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"resolved": id})
}

// reconcileRequest is the POST /catalog/reconcile body.
type reconcileRequest struct {
	DryRun      bool    `json:"dry_run"`
	PlatformIDs []int64 `json:"platform_ids"`
}

// HandleReconcile runs the work deduplication engine.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req reconcileRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	plan, err := h.service.Reconcile(reconcile.Options{
		PlatformIDs: req.PlatformIDs,
		DryRun:      req.DryRun,
	})
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(plan)
}
