package forms

import "github.com/hiwaldo89/admon-software-client/internal/models"

// FieldKind distinguishes how an input renders.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindSelect FieldKind = "select"
)

// Field describes one rendered form input.
type Field struct {
	Name    string    // Name is the submitted field name.
	Label   string    // Label is the text shown next to the input.
	Kind    FieldKind // Kind selects the input widget.
	Numeric bool      // Numeric marks fields that must parse as numbers.
	Options []string  // Options lists the choices for select fields.
}

// PropertyFields returns the form fields in display order.
func PropertyFields() []Field {
	types := models.PropertyTypes()
	options := make([]string, 0, len(types))
	for _, pt := range types {
		options = append(options, string(pt))
	}

	return []Field{
		{Name: "surface_total_in_m2", Label: "Total surface (m2)", Kind: KindText, Numeric: true},
		{Name: "surface_covered_in_m2", Label: "Covered surface (m2)", Kind: KindText, Numeric: true},
		{Name: "lat", Label: "Latitude", Kind: KindText, Numeric: true},
		{Name: "lon", Label: "Longitude", Kind: KindText, Numeric: true},
		{Name: "property_type", Label: "Property type", Kind: KindSelect, Options: options},
		{Name: "estado", Label: "Estado", Kind: KindText},
		{Name: "municipio", Label: "Municipio", Kind: KindText},
		{Name: "localidad", Label: "Localidad", Kind: KindText},
	}
}
