package models

import "time"

// PropertyType enumerates the kinds of properties the valuation model accepts.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeStore     PropertyType = "store"
	PropertyTypePH        PropertyType = "PH"
)

// PropertyTypes lists the accepted property types in display order.
func PropertyTypes() []PropertyType {
	return []PropertyType{PropertyTypeApartment, PropertyTypeHouse, PropertyTypeStore, PropertyTypePH}
}

// Estimate is the outcome of a successful valuation request.
type Estimate struct {
	Prediction float64 // Prediction is the raw amount returned by the valuation service.
	Formatted  string  // Formatted is the prediction rendered as es-MX MXN currency.
}

// Valuation is a completed valuation stored in the history log.
type Valuation struct {
	ID             int       // ID is the unique identifier of the history row.
	SurfaceTotal   float64   // SurfaceTotal is the total surface in square meters.
	SurfaceCovered float64   // SurfaceCovered is the covered surface in square meters.
	Latitude       float64   // Latitude of the property.
	Longitude      float64   // Longitude of the property.
	PropertyType   string    // PropertyType is one of the accepted property kinds.
	Estado         string    // Estado is the Mexican state.
	Municipio      string    // Municipio is the municipality.
	Localidad      string    // Localidad is the locality.
	Prediction     float64   // Prediction is the estimated value in MXN.
	CreatedAt      time.Time // CreatedAt is when the valuation completed.
}
