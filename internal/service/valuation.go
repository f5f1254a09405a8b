package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/hiwaldo89/admon-software-client/internal/forms"
	"github.com/hiwaldo89/admon-software-client/internal/metrics"
	"github.com/hiwaldo89/admon-software-client/internal/models"
	"github.com/hiwaldo89/admon-software-client/internal/repository"
	"github.com/hiwaldo89/admon-software-client/internal/valuation"
)

// Messages shown in the result banner after a submission completes.
const (
	msgEstimatePrefix = "The value is estimated at: "
	// MsgSubmitFailed is the banner shown for any failed submission.
	MsgSubmitFailed = "Something went wrong. Please try again."
)

// Submission statuses used as metric labels.
const (
	statusOK              = "ok"
	statusValidationError = "validation_error"
	statusUpstreamError   = "upstream_error"
)

// Result is the outcome of one submission attempt. A new submission replaces
// any prior result.
type Result struct {
	OK       bool             // OK reports whether the valuation succeeded.
	Message  string           // Message is the banner text to display.
	Estimate *models.Estimate // Estimate carries the prediction on success.
}

// ValuationService implements the property form contract: validate the
// submitted fields, issue at most one request to the valuation API, and
// produce the result banner. Completed valuations are recorded to the
// optional history repository.
type ValuationService struct {
	log       *slog.Logger         // Logger for logging service activities
	repo      repository.Interface // Optional history store, nil when disabled
	estimator valuation.Estimator  // Client for the remote valuation API
	metrics   *metrics.Metrics     // Metrics for tracking service performance
}

// NewValuationService creates a new instance of ValuationService.
// The repository may be nil, which disables valuation history.
func NewValuationService(
	log *slog.Logger,
	repo repository.Interface,
	estimator valuation.Estimator,
	metrics *metrics.Metrics,
) *ValuationService {
	return &ValuationService{
		log:       log,
		repo:      repo,
		estimator: estimator,
		metrics:   metrics,
	}
}

// Submit runs one submission attempt. When validation fails it returns the
// field-level errors and makes no upstream call. Otherwise it issues exactly
// one request to the valuation API and returns the success or error result.
func (vs *ValuationService) Submit(ctx context.Context, req forms.EstimateRequest) (Result, map[string]string) {
	if fieldErrors := forms.Validate(req); len(fieldErrors) > 0 {
		vs.metrics.Submissions.WithLabelValues(statusValidationError).Inc()
		vs.log.DebugContext(ctx, "Submission rejected by validation", "fields", len(fieldErrors))
		return Result{}, fieldErrors
	}

	vs.metrics.InFlight.Inc()
	defer vs.metrics.InFlight.Dec()

	startTime := time.Now()
	prediction, err := vs.estimator.Estimate(ctx, valuation.Request{
		SurfaceTotal:   req.SurfaceTotal,
		SurfaceCovered: req.SurfaceCovered,
		Lat:            req.Lat,
		Lon:            req.Lon,
		PropertyType:   req.PropertyType,
		Estado:         req.Estado,
		Municipio:      req.Municipio,
		Localidad:      req.Localidad,
	})
	vs.metrics.RequestSeconds.WithLabelValues("predict").Observe(time.Since(startTime).Seconds())

	if err != nil {
		vs.log.ErrorContext(ctx, "Failed to get valuation", "error", err)
		vs.metrics.Submissions.WithLabelValues(statusUpstreamError).Inc()
		vs.metrics.UpstreamErrors.Inc()
		return Result{OK: false, Message: MsgSubmitFailed}, nil
	}

	vs.metrics.Submissions.WithLabelValues(statusOK).Inc()

	estimate := &models.Estimate{
		Prediction: prediction,
		Formatted:  valuation.FormatMXN(prediction),
	}

	vs.recordValuation(ctx, req, prediction)

	return Result{
		OK:       true,
		Message:  msgEstimatePrefix + estimate.Formatted,
		Estimate: estimate,
	}, nil
}

// Recent returns the most recent completed valuations for the form page.
// It returns nothing when history is disabled.
func (vs *ValuationService) Recent(ctx context.Context, limit int) []models.Valuation {
	if vs.repo == nil {
		return nil
	}

	valuations, err := vs.repo.RecentValuations(ctx, limit)
	if err != nil {
		vs.log.ErrorContext(ctx, "Failed to load recent valuations", "error", err)
		return nil
	}

	return valuations
}

// recordValuation stores a completed valuation. History is best-effort:
// failures are logged and never surfaced to the user.
func (vs *ValuationService) recordValuation(ctx context.Context, req forms.EstimateRequest, prediction float64) {
	if vs.repo == nil {
		return
	}

	// The numeric fields passed validation, so parse failures cannot happen here.
	surfaceTotal, _ := strconv.ParseFloat(req.SurfaceTotal, 64)
	surfaceCovered, _ := strconv.ParseFloat(req.SurfaceCovered, 64)
	lat, _ := strconv.ParseFloat(req.Lat, 64)
	lon, _ := strconv.ParseFloat(req.Lon, 64)

	val := models.Valuation{
		SurfaceTotal:   surfaceTotal,
		SurfaceCovered: surfaceCovered,
		Latitude:       lat,
		Longitude:      lon,
		PropertyType:   req.PropertyType,
		Estado:         req.Estado,
		Municipio:      req.Municipio,
		Localidad:      req.Localidad,
		Prediction:     prediction,
	}

	if err := vs.repo.SaveValuation(ctx, val); err != nil {
		vs.log.ErrorContext(ctx, "Failed to record valuation", "error", err)
	}
}
