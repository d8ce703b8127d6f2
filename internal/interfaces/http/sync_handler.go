package http

import (
	"github.com/gofiber/fiber/v2"
	appsync "github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/sync"
)

// SyncHandler maneja la reconciliación de catálogo contra el POS (protegido,
// solo roles privilegiados vía router).
type SyncHandler struct {
	rc *appsync.Reconciler
}

// NewSyncHandler construye el handler.
func NewSyncHandler(rc *appsync.Reconciler) *SyncHandler {
	return &SyncHandler{rc: rc}
}

// ReconcileAll godoc
// @Summary      Reconciliar todo el catálogo contra Poster
// @Description  Secciones, ingredientes y proveedores en orden. El fallo de un
// @Description  tipo se reporta en su resultado y no aborta los demás.
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncSummaryResponse
// @Router       /api/sync [post]
func (h *SyncHandler) ReconcileAll(c *fiber.Ctx) error {
	out, err := h.rc.ReconcileAll(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reconciliar un tipo de entidad contra Poster
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "sections | ingredients | suppliers"
// @Success      200   {object}  dto.SyncResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sync/{type} [post]
func (h *SyncHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.rc.Reconcile(c.UserContext(), GetRestaurantID(c), c.Params("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de frescura de la sincronización
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SyncStatusResponse
// @Router       /api/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	out, err := h.rc.Status(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
