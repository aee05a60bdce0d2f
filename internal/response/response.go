package response

import (
	"errors"
	"log"

	"fruitshop-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// Envelope: tüm uç noktaların ortak cevap zarfı. Hata durumunda data null,
// message insan okunur hata metnini taşır.
type Envelope struct {
	Data    any     `json:"data"`
	Message *string `json:"message"`
}

func Success(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Data: data})
}

func SuccessMsg(c *fiber.Ctx, data any, msg string) error {
	return c.JSON(Envelope{Data: data, Message: &msg})
}

func Created(c *fiber.Ctx, data any, msg string) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Data: data, Message: &msg})
}

// ErrorHandler: servislerden dönen hata taksonomisini HTTP koduna ve
// {data, message} zarfına çevirir.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return fail(c, fiber.StatusBadRequest, ve.Msg)
	}

	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return fail(c, fiber.StatusNotFound, nf.Msg)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, fe.Message)
	}

	log.Println("Beklenmeyen hata:", err)
	return fail(c, fiber.StatusInternalServerError, "Beklenmeyen sunucu hatası")
}

func fail(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(Envelope{Message: &msg})
}
