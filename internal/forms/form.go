// Package forms holds the property form definition: which fields the form
// renders, how submitted values bind, and how they validate.
package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation messages shown next to a field.
const (
	MsgRequired      = "Required"
	MsgMustBeNumber  = "Must be a number"
	MsgInvalidOption = "Invalid value"
)

// EstimateRequest binds the eight property form fields. All values arrive as
// strings; the numeric ones are checked to parse as numbers before submission.
type EstimateRequest struct {
	SurfaceTotal   string `form:"surface_total_in_m2"   json:"surface_total_in_m2"   validate:"required,numeric"`
	SurfaceCovered string `form:"surface_covered_in_m2" json:"surface_covered_in_m2" validate:"required,numeric"`
	Lat            string `form:"lat"                   json:"lat"                   validate:"required,numeric"`
	Lon            string `form:"lon"                   json:"lon"                   validate:"required,numeric"`
	PropertyType   string `form:"property_type"         json:"property_type"         validate:"required,oneof=apartment house store PH"`
	Estado         string `form:"estado"                json:"estado"                validate:"required"`
	Municipio      string `form:"municipio"             json:"municipio"             validate:"required"`
	Localidad      string `form:"localidad"             json:"localidad"             validate:"required"`
}

// Values returns the request as a field-name map, used to re-render the form
// with the entered values intact.
func (r EstimateRequest) Values() map[string]string {
	return map[string]string{
		"surface_total_in_m2":   r.SurfaceTotal,
		"surface_covered_in_m2": r.SurfaceCovered,
		"lat":                   r.Lat,
		"lon":                   r.Lon,
		"property_type":         r.PropertyType,
		"estado":                r.Estado,
		"municipio":             r.Municipio,
		"localidad":             r.Localidad,
	}
}

// validate reports failed fields by their form name, so errors attach to the
// rendered inputs rather than the Go struct fields.
var validate = newValidator()

func newValidator() *validator.Validate {
	vld := validator.New()
	vld.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return strings.TrimSpace(name)
	})

	return vld
}

// Validate checks the request against the form rules and returns field-level
// error messages keyed by field name. An empty map means the request is valid.
func Validate(req EstimateRequest) map[string]string {
	fieldErrors := make(map[string]string)

	err := validate.Struct(req)
	if err == nil {
		return fieldErrors
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-validation failure (e.g. an invalid struct); attach nothing.
		return fieldErrors
	}

	for _, ferr := range verrs {
		switch ferr.Tag() {
		case "required":
			fieldErrors[ferr.Field()] = MsgRequired
		case "numeric":
			fieldErrors[ferr.Field()] = MsgMustBeNumber
		default:
			fieldErrors[ferr.Field()] = MsgInvalidOption
		}
	}

	return fieldErrors
}
