package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geo-directory/internal/pkg/errors"
)

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse - ответ на create/update/delete
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// SendSuccess отдаёт data с кодом 200
func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

// SendStatus отдаёт data с указанным кодом
func SendStatus(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// SendMessage - {"message": "..."} и опционально id
func SendMessage(c *fiber.Ctx, status int, message, id string) error {
	return c.Status(status).JSON(MessageResponse{Message: message, ID: id})
}

// SendError маппит AppError в статус и конверт ошибки.
// Остальные ошибки отдаются как 500 без внутренних подробностей.
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer.Message,
		Code:  errors.ErrInternalServer.Code,
	})
}
