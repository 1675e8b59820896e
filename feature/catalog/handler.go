package catalog

import (
	"catalog-sync/core/logger"
	catalogsync "catalog-sync/feature/catalog/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SyncRequest is the body accepted by POST /sync. Query parameters override it.
type SyncRequest struct {
	Mode  string `json:"mode" query:"mode" example:"prices"`
	SetID string `json:"setId" query:"setId" example:"base1"`
	Limit int    `json:"limit" query:"limit" example:"10"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message"`
}

// Handler handles HTTP requests for catalog sync.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/", h.HandleSync)
	group.Get("/", h.HandleSync)
}

// HandleSync runs one sync mode.
// @Summary Run Sync
// @Description Run one sync mode. Chunked modes (prices, card-metadata) process one chunk of one set per call.
// @Tags sync
// @Accept json
// @Produce json
// @Param mode query string false "Sync mode" Enums(full, sets, single-set, prices, card-metadata, card-metadata-all)
// @Param setId query string false "Set id, required for single-set"
// @Param limit query int false "Maximum number of sets for full mode"
// @Param request body SyncRequest false "Sync request"
// @Success 200 {object} catalogsync.Result "Sync result"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} catalogsync.Result "Sync failed"
// @Router /sync [post]
// @Router /sync [get]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SyncRequest
	if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body: " + err.Error()})
		}
	}
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid query: " + err.Error()})
	}

	res, err := h.service.Run(c.UserContext(), req.Mode, req.SetID, req.Limit)
	if err != nil {
		if catalogsync.IsInvalid(err) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		}
		l.Error("Sync request failed", zap.String("mode", req.Mode), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}

	return c.JSON(res)
}

// HandleStatus returns the sync status overview.
// @Summary Sync Status
// @Description Last run of every mode and the cursor progress of every set.
// @Tags sync
// @Produce json
// @Success 200 {object} catalogsync.Status "Sync status"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	st, err := h.service.Status(c.UserContext())
	if err != nil {
		l.Error("Sync status failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: err.Error()})
	}

	return c.JSON(st)
}
