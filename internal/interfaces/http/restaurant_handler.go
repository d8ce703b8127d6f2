package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/usecase"
)

// RestaurantHandler maneja la vinculación de cuentas Poster y la
// administración del restaurante actual.
type RestaurantHandler struct {
	uc *usecase.RestaurantUseCase
}

// NewRestaurantHandler construye el handler.
func NewRestaurantHandler(uc *usecase.RestaurantUseCase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

// Link godoc
// @Summary      Vincular una cuenta Poster como restaurante
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LinkRestaurantRequest  true  "nombre, cuenta y token Poster"
// @Success      201   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/restaurants/link [post]
func (h *RestaurantHandler) Link(c *fiber.Ctx) error {
	var in dto.LinkRestaurantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.PosterAccount == "" || in.PosterToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, poster_account y poster_token son requeridos"})
	}
	out, err := h.uc.Link(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener el restaurante actual
// @Tags         restaurants
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RestaurantResponse
// @Router       /api/restaurants/me [get]
func (h *RestaurantHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar el restaurante actual
// @Tags         restaurants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateRestaurantRequest  true  "cambio parcial"
// @Success      200   {object}  dto.RestaurantResponse
// @Router       /api/restaurants/me [put]
func (h *RestaurantHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRestaurantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar el restaurante actual
// @Tags         restaurants
// @Security     Bearer
// @Success      204
// @Router       /api/restaurants/me [delete]
func (h *RestaurantHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetRestaurantID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
