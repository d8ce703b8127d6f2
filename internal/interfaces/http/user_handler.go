package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/usecase"
)

// UserHandler maneja la administración de usuarios y sus capacidades por
// sección (protegido, solo roles privilegiados vía router).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios del restaurante
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), GetRestaurantID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignSection godoc
// @Summary      Conceder capacidades de una sección a un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.AssignSectionRequest  true  "sección y capacidades"
// @Success      200   {object}  dto.AssignmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/sections [post]
func (h *UserHandler) AssignSection(c *fiber.Ctx) error {
	var in dto.AssignSectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SectionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "section_id es requerido"})
	}
	out, err := h.uc.AssignSection(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAssignments godoc
// @Summary      Listar las capacidades por sección de un usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.AssignmentResponse
// @Router       /api/users/{id}/sections [get]
func (h *UserHandler) ListAssignments(c *fiber.Ctx) error {
	out, err := h.uc.ListAssignments(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RevokeSection godoc
// @Summary      Retirar las capacidades de un usuario sobre una sección
// @Tags         users
// @Security     Bearer
// @Param        id          path  string  true  "ID del usuario"
// @Param        section_id  path  string  true  "ID de la sección"
// @Success      204
// @Router       /api/users/{id}/sections/{section_id} [delete]
func (h *UserHandler) RevokeSection(c *fiber.Ctx) error {
	if err := h.uc.RevokeSection(c.UserContext(), GetRestaurantID(c), c.Params("id"), c.Params("section_id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
