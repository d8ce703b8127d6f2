package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/usecase"
)

// SectionHandler maneja las peticiones HTTP para Section (protegido).
type SectionHandler struct {
	uc *usecase.SectionUseCase
}

// NewSectionHandler construye el handler.
func NewSectionHandler(uc *usecase.SectionUseCase) *SectionHandler {
	return &SectionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sección
// @Tags         sections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSectionRequest  true  "Datos de la sección"
// @Success      201   {object}  dto.SectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sections [post]
func (h *SectionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sección por ID
// @Tags         sections
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sección"
// @Success      200  {object}  dto.SectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sections/{id} [get]
func (h *SectionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar secciones
// @Tags         sections
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SectionListResponse
// @Router       /api/sections [get]
func (h *SectionHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), GetRestaurantID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sección
// @Tags         sections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la sección"
// @Param        body  body  dto.UpdateSectionRequest  true  "cambio parcial"
// @Success      200   {object}  dto.SectionResponse
// @Router       /api/sections/{id} [put]
func (h *SectionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar sección
// @Tags         sections
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sección"
// @Success      204
// @Router       /api/sections/{id} [delete]
func (h *SectionHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetRestaurantID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
