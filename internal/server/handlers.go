package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hiwaldo89/admon-software-client/internal/forms"
	"github.com/hiwaldo89/admon-software-client/internal/geocoding"
	"github.com/hiwaldo89/admon-software-client/internal/metrics"
	"github.com/hiwaldo89/admon-software-client/internal/models"
	"github.com/hiwaldo89/admon-software-client/internal/service"
)

// Handler serves the property form and the JSON API around it.
type Handler struct {
	log          *slog.Logger
	svc          *service.ValuationService
	geocoder     geocoding.Provider
	metrics      *metrics.Metrics
	historyLimit int
}

// NewHandler creates a new Handler.
func NewHandler(
	log *slog.Logger,
	svc *service.ValuationService,
	geocoder geocoding.Provider,
	appMetrics *metrics.Metrics,
	historyLimit int,
) *Handler {
	return &Handler{
		log:          log,
		svc:          svc,
		geocoder:     geocoder,
		metrics:      appMetrics,
		historyLimit: historyLimit,
	}
}

// formPage is the data passed to the form template.
type formPage struct {
	Fields  []forms.Field
	Values  map[string]string
	Errors  map[string]string
	Result  *service.Result
	History []models.Valuation
}

// errorResponse is the standard JSON error format.
type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Index handles GET / and renders an empty form.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "form", formPage{
		Fields:  forms.PropertyFields(),
		Values:  map[string]string{},
		Errors:  map[string]string{},
		History: h.svc.Recent(c.Request.Context(), h.historyLimit),
	})
}

// Estimate handles POST /estimate, the HTML form submission.
// Invalid fields re-render the form with inline errors and the entered values.
// A failed upstream call keeps the values for retry; a successful one resets
// the form and shows the estimate banner.
func (h *Handler) Estimate(c *gin.Context) {
	var req forms.EstimateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to bind form submission", "error", err)
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	result, fieldErrors := h.svc.Submit(c.Request.Context(), req)

	page := formPage{
		Fields:  forms.PropertyFields(),
		Values:  req.Values(),
		Errors:  fieldErrors,
		History: h.svc.Recent(c.Request.Context(), h.historyLimit),
	}

	if len(fieldErrors) > 0 {
		c.HTML(http.StatusOK, "form", page)
		return
	}

	page.Result = &result
	if result.OK {
		// Fields reset only on confirmed success.
		page.Values = map[string]string{}
	}

	c.HTML(http.StatusOK, "form", page)
}

// estimateResponse is the JSON API success payload.
type estimateResponse struct {
	Prediction float64 `json:"prediction"`
	Formatted  string  `json:"formatted"`
	Message    string  `json:"message"`
}

// APIEstimate handles POST /api/v1/estimate, the JSON flavor of the form
// submission for programmatic clients.
func (h *Handler) APIEstimate(c *gin.Context) {
	var req forms.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	result, fieldErrors := h.svc.Submit(c.Request.Context(), req)

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation failed",
			Details: fieldErrors,
		})
		return
	}

	if !result.OK {
		c.JSON(http.StatusBadGateway, errorResponse{Error: result.Message})
		return
	}

	c.JSON(http.StatusOK, estimateResponse{
		Prediction: result.Estimate.Prediction,
		Formatted:  result.Estimate.Formatted,
		Message:    result.Message,
	})
}

// geocodeRequest binds the location parts of GET /api/v1/geocode.
type geocodeRequest struct {
	Estado    string `form:"estado"`
	Municipio string `form:"municipio"`
	Localidad string `form:"localidad"`
}

// geocodeResponse carries the resolved coordinates as strings, ready to be
// placed into the lat/lon form inputs.
type geocodeResponse struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode handles GET /api/v1/geocode. It resolves the three location fields
// to coordinates so the form can prefill lat/lon.
func (h *Handler) Geocode(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
		return
	}

	place := joinPlace(req.Localidad, req.Municipio, req.Estado)
	if place == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "at least one of estado, municipio, localidad is required"})
		return
	}

	coords, err := h.geocoder.Geocode(c.Request.Context(), place)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to geocode place", "place", place, "error", err)
		h.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		c.JSON(http.StatusBadGateway, errorResponse{Error: "could not resolve location"})
		return
	}

	h.metrics.GeocodeRequests.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, geocodeResponse{
		Lat: fmt.Sprintf("%.6f", coords.Latitude),
		Lon: fmt.Sprintf("%.6f", coords.Longitude),
	})
}

// joinPlace builds a comma-separated place query from most to least specific,
// skipping empty parts.
func joinPlace(parts ...string) string {
	place := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if place != "" {
			place += ", "
		}
		place += part
	}

	return place
}
