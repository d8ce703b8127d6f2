package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/orders"
)

// OrderHandler maneja el ciclo de vida de pedidos (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido (nace en pending)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "departamento, nota e ítems"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Department == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "department es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetRestaurantID(c), actorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos visibles para el usuario
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  []string  false  "Filtrar por estado"  collectionFormat(multi)
// @Param        limit   query  int       false  "Límite"   default(50)
// @Param        offset  query  int       false  "Offset"   default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.ListOrdersRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	out, err := h.uc.List(c.UserContext(), GetRestaurantID(c), actorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetRestaurantID(c), actorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar pedido (cambio parcial y/o transición de estado)
// @Description  Los campos omitidos conservan su valor. Un fallo del POS al
// @Description  registrar la entrega aparece en warnings, no como error.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest true  "cambio parcial"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetRestaurantID(c), actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkUpdate godoc
// @Summary      Llevar varios pedidos al mismo estado destino
// @Description  Tolerancia por pedido: los fallos individuales van en failed
// @Description  y no impiden el resto del lote.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateOrdersRequest  true  "ids, estado destino y correcciones"
// @Success      200   {object}  dto.BulkUpdateOrdersResponse
// @Router       /api/orders/bulk [post]
func (h *OrderHandler) BulkUpdate(c *fiber.Ctx) error {
	var in dto.BulkUpdateOrdersRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.OrderIDs) == 0 || in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_ids y status son requeridos"})
	}
	out, err := h.uc.BulkUpdate(c.UserContext(), GetRestaurantID(c), actorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Descargar la hoja de compra del pedido en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) ExportPDF(c *fiber.Ctx) error {
	data, err := h.uc.ExportPDF(c.UserContext(), GetRestaurantID(c), actorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pedido-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}
