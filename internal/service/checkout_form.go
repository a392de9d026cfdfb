package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/models"

	"github.com/go-playground/validator/v10"
)

// CheckoutForm 结账表单
type CheckoutForm struct {
	FullName      string `json:"full_name" form:"full_name" validate:"required,max=100"`
	Email         string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	Phone         string `json:"phone" form:"phone" validate:"required,max=20"`
	City          string `json:"city" form:"city" validate:"required,max=100"`
	Address       string `json:"address" form:"address" validate:"required,max=1000"`
	PostalCode    string `json:"postal_code" form:"postal_code" validate:"max=20"`
	PaymentMethod string `json:"payment_method" form:"payment_method" validate:"required,oneof=debit credit cash paypal wallet"`
}

var (
	checkoutValidatorOnce sync.Once
	checkoutValidator     *validator.Validate
)

func formValidator() *validator.Validate {
	checkoutValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		checkoutValidator = v
	})
	return checkoutValidator
}

// Normalize 去除空白并补齐默认支付方式
func (f CheckoutForm) Normalize() CheckoutForm {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Phone = strings.TrimSpace(f.Phone)
	f.City = strings.TrimSpace(f.City)
	f.Address = strings.TrimSpace(f.Address)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.PaymentMethod = strings.ToLower(strings.TrimSpace(f.PaymentMethod))
	if f.PaymentMethod == "" {
		f.PaymentMethod = constants.PaymentMethodDebit
	}
	return f
}

// Validate 校验表单，失败时返回 *ValidationError
func (f CheckoutForm) Validate() error {
	err := formValidator().Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	return buildValidationError(fieldErrs)
}

// CheckoutFormFromUser 用用户资料预填结账表单
func CheckoutFormFromUser(user *models.User) CheckoutForm {
	form := CheckoutForm{PaymentMethod: constants.PaymentMethodDebit}
	if user == nil {
		return form
	}
	form.Email = user.Email
	form.Phone = user.Phone
	if name := strings.TrimSpace(user.FirstName + " " + user.LastName); name != "" {
		form.FullName = name
	}
	return form
}

func buildValidationError(fieldErrs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]FieldError, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		if _, exists := fields[name]; exists {
			continue
		}
		field := FieldError{Key: validationMessageKey(fe.Tag())}
		if fe.Tag() == "max" {
			field.Param = fe.Param()
		}
		fields[name] = field
	}
	return &ValidationError{Fields: fields}
}

func validationMessageKey(tag string) string {
	switch tag {
	case "required":
		return "field.required"
	case "email":
		return "field.email"
	case "max":
		return "field.max"
	case "oneof":
		return "field.oneof"
	default:
		return "field.invalid"
	}
}
