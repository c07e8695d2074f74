package vessel

import (
	"errors"

	"vessel-manager/core/logger"
	"vessel-manager/core/reconcile"
	"vessel-manager/feature/vessel/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for vessel enhancement.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the vessel and merge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/vessels")
	group.Get("/candidates", h.HandleCandidates)
	group.Get("/:id/opportunities", h.HandleOpportunities)
	group.Get("/:id/history", h.HandleHistory)
	group.Post("/:id/enhance", h.HandleEnhance)
	group.Post("/:id/apply", h.HandleApply)

	app.Group("/reconcile").Post("/merge", h.HandleMerge)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrVesselNotFound), errors.Is(err, reconcile.ErrNoMatch), errors.Is(err, ErrNoOpportunity):
		return fiber.StatusNotFound
	case errors.Is(err, reconcile.ErrSourceUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, reconcile.ErrIdentifierLocked):
		return fiber.StatusConflict
	case errors.Is(err, reconcile.ErrUnknownField), errors.Is(err, reconcile.ErrInvalidValue), errors.Is(err, ErrSourceNotConfigured):
		return fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrMergeFailed):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func vesselID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("invalid vessel id")
	}
	return uint(id), nil
}

// HandleOpportunities lists the lookups available for a vessel.
// @Summary List Enhancement Opportunities
// @Description Returns the source lookups a vessel's identifiers allow, best first.
// @Tags vessels
// @Produce json
// @Param id path int true "Vessel ID"
// @Success 200 {array} reconcile.EnhancementOpportunity "Opportunities"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Vessel Not Found"
// @Router /vessels/{id}/opportunities [get]
func (h *Handler) HandleOpportunities(c *fiber.Ctx) error {
	id, err := vesselID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	opps, err := h.service.Opportunities(c.Context(), id)
	if err != nil {
		return h.fail(c, "Opportunity lookup failed", err)
	}
	return c.JSON(opps)
}

// HandleEnhance fetches a candidate and previews the merge.
// @Summary Enhance Vessel
// @Description Fetches a candidate from a source and merges it against the stored vessel. Nothing is written.
// @Tags vessels
// @Accept json
// @Produce json
// @Param id path int true "Vessel ID"
// @Param request body models.EnhanceRequest false "Source and identifier (optional)"
// @Success 200 {object} models.EnhanceResult "Merge Preview"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Source Unavailable"
// @Router /vessels/{id}/enhance [post]
func (h *Handler) HandleEnhance(c *fiber.Ctx) error {
	id, err := vesselID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req models.EnhanceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}

	res, err := h.service.Enhance(c.Context(), id, req)
	if err != nil {
		return h.fail(c, "Enhancement failed", err)
	}
	return c.JSON(res)
}

// HandleApply merges candidate fields and writes the outcome.
// @Summary Apply Enhancement
// @Description Merges the given candidate fields against the stored vessel and writes the selected changes. Writes only happen when confirmed is true.
// @Tags vessels
// @Accept json
// @Produce json
// @Param id path int true "Vessel ID"
// @Param request body models.ApplyRequest true "Candidate and apply options"
// @Success 200 {object} models.ApplyResult "Apply Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Vessel Not Found"
// @Failure 409 {object} map[string]string "Identifier Locked"
// @Router /vessels/{id}/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	id, err := vesselID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req models.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.service.ApplyCandidate(c.Context(), id, req)
	if err != nil {
		return h.fail(c, "Apply failed", err)
	}

	logger.WithRayID(h.service.logger, c).Info("Apply handled",
		zap.Uint("vessel_id", id),
		zap.Int("applied", res.Applied),
		zap.Int("pending", len(res.Plan.Pending)),
	)
	return c.JSON(res)
}

// HandleHistory lists a vessel's applied patches.
// @Summary Enhancement History
// @Tags vessels
// @Produce json
// @Param id path int true "Vessel ID"
// @Success 200 {array} models.EnhancementLog "History"
// @Failure 404 {object} map[string]string "Vessel Not Found"
// @Router /vessels/{id}/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	id, err := vesselID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	logs, err := h.service.History(c.Context(), id)
	if err != nil {
		return h.fail(c, "History lookup failed", err)
	}
	return c.JSON(logs)
}

// HandleCandidates lists vessels worth enhancing.
// @Summary Batch Candidates
// @Description Vessels with an IMO or MMSI number that miss length, builder or year built.
// @Tags vessels
// @Produce json
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {array} models.Vessel "Vessels"
// @Router /vessels/candidates [get]
func (h *Handler) HandleCandidates(c *fiber.Ctx) error {
	vessels, err := h.service.Candidates(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return h.fail(c, "Candidate listing failed", err)
	}
	return c.JSON(vessels)
}

// HandleMerge merges raw records without touching storage.
// @Summary Merge Records
// @Description Coerces and merges an existing record with candidate records in order.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body models.MergeRequest true "Records to merge"
// @Success 200 {object} models.MergeResponse "Merge Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /reconcile/merge [post]
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	var req models.MergeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(req.Candidates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at least one candidate is required"})
	}
	for _, cand := range req.Candidates {
		if cand.Source == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "every candidate needs a source"})
		}
	}

	resp := h.service.Merge(req)
	if !resp.Result.Success {
		logger.WithRayID(h.service.logger, c).Error("Merge failed", zap.String("error", resp.Result.Error))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}
	return c.JSON(resp)
}
