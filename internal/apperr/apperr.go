package apperr

import "fmt"

// ValidationError: eksik veya geçersiz istek verisi. Akışlar herhangi bir
// yan etki üretmeden önce bu hatayla erken döner.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError: bilinmeyen ürün, sipariş, stok kaydı vs.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}
