package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/application/usecase"
)

// MessageHandler mensajería interna.
type MessageHandler struct {
	uc *usecase.MessageUseCase
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar mensaje
// @Tags         messages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendMessageRequest  true  "Mensaje"
// @Success      201   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Send(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Inbox godoc
// @Summary      Bandeja de entrada
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageListResponse
// @Router       /api/messages [get]
func (h *MessageHandler) Inbox(c *fiber.Ctx) error {
	out, err := h.uc.Inbox(c.UserContext(), actor(c), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sent godoc
// @Summary      Mensajes enviados
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageListResponse
// @Router       /api/messages/sent [get]
func (h *MessageHandler) Sent(c *fiber.Ctx) error {
	out, err := h.uc.Sent(c.UserContext(), actor(c), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UnreadCount godoc
// @Summary      Mensajes sin leer
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Router       /api/messages/unread-count [get]
func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	out, err := h.uc.UnreadCount(c.UserContext(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar como leído (solo destinatario)
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del mensaje"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkRead(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
