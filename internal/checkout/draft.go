package checkout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/wichananm65/soko-storefront/internal/order"
	"github.com/wichananm65/soko-storefront/internal/validation"
)

// Areas are the neighbourhoods the shop delivers to.
var Areas = []string{"Parklands", "Highridge", "Santonia", "Mountain View", "Westlands", "Kasarani"}

const (
	DefaultArea          = "Parklands"
	DefaultPaymentMethod = string(order.MethodMpesa)
)

// Draft is the checkout form as the customer fills it in.
type Draft struct {
	FullName      string `json:"fullName" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Area          string `json:"area" validate:"required,delivery_area"`
	Address       string `json:"address" validate:"required"`
	Notes         string `json:"notes,omitempty"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=mpesa cash_on_delivery"`
}

func NewDraft() Draft {
	return Draft{Area: DefaultArea, PaymentMethod: DefaultPaymentMethod}
}

func (d Draft) normalized() Draft {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Address = strings.TrimSpace(d.Address)
	d.Notes = strings.TrimSpace(d.Notes)
	if d.Area == "" {
		d.Area = DefaultArea
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = DefaultPaymentMethod
	}
	return d
}

// ValidationError carries per-field messages keyed by json name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid checkout details: " + strings.Join(keys, ", ")
}

func newValidator() *validator.Validate {
	v := validation.New()
	if err := v.RegisterValidation("delivery_area", func(fl validator.FieldLevel) bool {
		return isArea(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("checkout: register delivery_area rule: %v", err))
	}
	return v
}

func isArea(s string) bool {
	for _, a := range Areas {
		if a == s {
			return true
		}
	}
	return false
}

func validateDraft(v *validator.Validate, d Draft) error {
	if err := v.Struct(d); err != nil {
		fields := validation.Errors(err)
		if _, ok := fields["area"]; ok && d.Area != "" {
			fields["area"] = "area must be one of: " + strings.Join(Areas, ", ")
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}
