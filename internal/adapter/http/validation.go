package http

import (
	"reflect"
	"strings"

	"asset-custody/internal/domain/assignment"
	"asset-custody/internal/domain/product"
	"asset-custody/internal/domain/request"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("product_status", func(fl validator.FieldLevel) bool {
		return product.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("assignment_status", func(fl validator.FieldLevel) bool {
		return assignment.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("request_kind", func(fl validator.FieldLevel) bool {
		return request.Kind(fl.Field().String()).Valid()
	})

	// an assignment needs a person or a location
	v.RegisterStructValidation(holderRule, assignReq{}, updateAssignmentReq{})

	return &CustomValidator{v: v}
}

func holderRule(sl validator.StructLevel) {
	cur := sl.Current()
	person := cur.FieldByName("PersonID")
	location := cur.FieldByName("LocationID")
	if person.IsNil() && location.IsNil() {
		sl.ReportError(nil, "person_id", "PersonID", "holder", "")
	}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "holder":
			out = append(out, FieldError{Field: field, Message: "person_id or location_id is required"})
		case "product_status":
			out = append(out, FieldError{Field: field, Message: "must be one of available, assigned, in_maintenance, awaiting_repair, scrapped, inactive"})
		case "assignment_status":
			out = append(out, FieldError{Field: field, Message: "must be one of active, returned, lost"})
		case "request_kind":
			out = append(out, FieldError{Field: field, Message: "is not a known request kind"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
