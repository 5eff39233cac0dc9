package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"shopapi/internal/validator"
)

// HTTPError はusecaseの失敗をHTTPステータスつきで表す。
// Fields は入力検証の明細（空なら省略される）。
type HTTPError struct {
	Status  int
	Message string
	Fields  []validator.FieldError
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// NewValidationError は検証エラー一覧つきの400を返す。
func NewValidationError(fields []validator.FieldError) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: fields[0].Message,
		Fields:  fields,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
