package validator

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// 支払い方法
var validPayments = map[string]struct{}{
	"credit_card":   {},
	"paypal":        {},
	"bank_transfer": {},
}

// FieldError は1フィールド分の検証エラー。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserInput は会員登録・更新の検証対象。
type UserInput struct {
	Name            string
	LastNameFather  string
	LastNameMother  string
	Address         string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Payment         string
	Role            int
}

// ValidateUser は全フィールドを検証してエラー一覧を返す。
// 空スライスなら合格。
func ValidateUser(in UserInput) []FieldError {
	var errs []FieldError

	if IsBlank(in.Name) {
		errs = append(errs, FieldError{Field: "name", Message: "name cannot be empty"})
	}
	if IsBlank(in.LastNameFather) {
		errs = append(errs, FieldError{Field: "lstF", Message: "lstF cannot be empty"})
	}
	if IsBlank(in.LastNameMother) {
		errs = append(errs, FieldError{Field: "lstM", Message: "lstM cannot be empty"})
	}
	if IsBlank(in.Address) {
		errs = append(errs, FieldError{Field: "address", Message: "address cannot be empty"})
	}

	if IsBlank(in.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email cannot be empty"})
	} else if !IsValidEmail(in.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "invalid email format"})
	}

	if len(in.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters long"})
	}
	if in.Password != in.ConfirmPassword {
		errs = append(errs, FieldError{Field: "c_pass", Message: "passwords do not match"})
	}

	if !IsValidPhone(in.Phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "invalid phone number format"})
	}
	if !IsValidPayment(in.Payment) {
		errs = append(errs, FieldError{Field: "payment", Message: "invalid payment method"})
	}
	if in.Role != 0 && in.Role != 1 {
		errs = append(errs, FieldError{Field: "role", Message: "invalid role"})
	}

	return errs
}

// IsBlank は空か空白のみか
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func IsValidPayment(payment string) bool {
	_, ok := validPayments[payment]
	return ok
}
