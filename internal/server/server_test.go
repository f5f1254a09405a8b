package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hiwaldo89/admon-software-client/internal/metrics"
	"github.com/hiwaldo89/admon-software-client/internal/models"
	"github.com/hiwaldo89/admon-software-client/internal/server"
	"github.com/hiwaldo89/admon-software-client/internal/service"
	"github.com/hiwaldo89/admon-software-client/internal/valuation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient stands in for the valuation API transport.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
	calls  int
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.doFunc(req)
}

// fakeGeocoder stands in for the coordinate lookup provider.
type fakeGeocoder struct {
	coords *models.Coordinates
	err    error
	place  string
}

func (f *fakeGeocoder) Geocode(_ context.Context, place string) (*models.Coordinates, error) {
	f.place = place
	return f.coords, f.err
}

func newEngine(t *testing.T, upstream *mockHTTPClient, geocoder *fakeGeocoder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.Default()
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	client := valuation.NewClientWithClient(
		upstream, "https://admon-software.onrender.com/predict", rate.NewLimiter(rate.Inf, 0), logger,
	)
	svc := service.NewValuationService(logger, nil, client, appMetrics)
	handler := server.NewHandler(logger, svc, geocoder, appMetrics, 10)

	return server.New(handler, "local")
}

func okUpstream(prediction string) *mockHTTPClient {
	return &mockHTTPClient{
		doFunc: func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"prediction":` + prediction + `}`)),
			}, nil
		},
	}
}

func validForm() url.Values {
	form := url.Values{}
	form.Set("surface_total_in_m2", "120")
	form.Set("surface_covered_in_m2", "95")
	form.Set("lat", "19.4326")
	form.Set("lon", "-99.1332")
	form.Set("property_type", "house")
	form.Set("estado", "Ciudad de México")
	form.Set("municipio", "Cuauhtémoc")
	form.Set("localidad", "Roma Norte")
	return form
}

func postForm(engine *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	engine := newEngine(t, okUpstream("1"), &fakeGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="surface_total_in_m2"`)
	assert.Contains(t, body, `name="property_type"`)
	assert.Contains(t, body, `<option value="apartment">`)
	assert.Contains(t, body, `<option value="PH">`)
	assert.NotContains(t, body, "banner")
}

func TestEstimate_HTMLForm(t *testing.T) {
	t.Run("missing required field shows Required and makes no upstream call", func(t *testing.T) {
		upstream := okUpstream("1234567")
		engine := newEngine(t, upstream, &fakeGeocoder{})

		form := validForm()
		form.Set("estado", "")
		rec := postForm(engine, form)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Required")
		assert.Zero(t, upstream.calls)
	})

	t.Run("non-numeric field shows Must be a number and makes no upstream call", func(t *testing.T) {
		upstream := okUpstream("1234567")
		engine := newEngine(t, upstream, &fakeGeocoder{})

		form := validForm()
		form.Set("lat", "north")
		rec := postForm(engine, form)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Must be a number")
		// Entered values stay in the form.
		assert.Contains(t, rec.Body.String(), `value="120"`)
		assert.Zero(t, upstream.calls)
	})

	t.Run("successful estimate shows banner and clears fields", func(t *testing.T) {
		upstream := okUpstream("1234567")
		engine := newEngine(t, upstream, &fakeGeocoder{})

		rec := postForm(engine, validForm())

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "The value is estimated at: $1,234,567.00")
		assert.Contains(t, body, "banner-success")
		// All fields reset to empty.
		assert.NotContains(t, body, `value="120"`)
		assert.Contains(t, body, `name="estado" id="estado" value=""`)
		assert.Equal(t, 1, upstream.calls)
	})

	t.Run("upstream failure shows error banner and keeps values", func(t *testing.T) {
		upstream := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}
		engine := newEngine(t, upstream, &fakeGeocoder{})

		rec := postForm(engine, validForm())

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Something went wrong. Please try again.")
		assert.Contains(t, body, "banner-error")
		// Entered values remain for retry.
		assert.Contains(t, body, `value="120"`)
		assert.Contains(t, body, `value="Roma Norte"`)
	})

	t.Run("non-200 upstream status shows error banner", func(t *testing.T) {
		upstream := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(bytes.NewBufferString(`boom`)),
				}, nil
			},
		}
		engine := newEngine(t, upstream, &fakeGeocoder{})

		rec := postForm(engine, validForm())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong. Please try again.")
	})
}

func TestAPIEstimate(t *testing.T) {
	t.Run("valid request returns prediction", func(t *testing.T) {
		engine := newEngine(t, okUpstream("2500000.5"), &fakeGeocoder{})

		payload := `{
			"surface_total_in_m2": "120",
			"surface_covered_in_m2": "95",
			"lat": "19.4326",
			"lon": "-99.1332",
			"property_type": "apartment",
			"estado": "Jalisco",
			"municipio": "Guadalajara",
			"localidad": "Centro"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.InEpsilon(t, 2500000.5, resp["prediction"], 0.0001)
		assert.Equal(t, "$2,500,000.50", resp["formatted"])
		assert.Equal(t, "The value is estimated at: $2,500,000.50", resp["message"])
	})

	t.Run("validation errors return 422 with field details", func(t *testing.T) {
		upstream := okUpstream("1")
		engine := newEngine(t, upstream, &fakeGeocoder{})

		payload := `{"surface_total_in_m2": "lots", "lat": "19.4"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "validation failed", resp.Error)
		assert.Equal(t, "Must be a number", resp.Details["surface_total_in_m2"])
		assert.Equal(t, "Required", resp.Details["estado"])
		assert.Zero(t, upstream.calls)
	})

	t.Run("upstream failure returns 502", func(t *testing.T) {
		upstream := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}
		engine := newEngine(t, upstream, &fakeGeocoder{})

		payload := `{
			"surface_total_in_m2": "120",
			"surface_covered_in_m2": "95",
			"lat": "19.4326",
			"lon": "-99.1332",
			"property_type": "house",
			"estado": "Jalisco",
			"municipio": "Guadalajara",
			"localidad": "Centro"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong. Please try again.")
	})
}

func TestGeocode(t *testing.T) {
	t.Run("resolves location to coordinates", func(t *testing.T) {
		geocoder := &fakeGeocoder{coords: &models.Coordinates{Latitude: 19.4326, Longitude: -99.1332}}
		engine := newEngine(t, okUpstream("1"), geocoder)

		req := httptest.NewRequest(
			http.MethodGet,
			"/api/v1/geocode?estado=Ciudad+de+M%C3%A9xico&municipio=Cuauht%C3%A9moc&localidad=Roma+Norte",
			nil,
		)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Lat string `json:"lat"`
			Lon string `json:"lon"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "19.432600", resp.Lat)
		assert.Equal(t, "-99.133200", resp.Lon)
		// Most specific component first.
		assert.Equal(t, "Roma Norte, Cuauhtémoc, Ciudad de México", geocoder.place)
	})

	t.Run("missing location returns 400", func(t *testing.T) {
		engine := newEngine(t, okUpstream("1"), &fakeGeocoder{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/geocode", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider failure returns 502", func(t *testing.T) {
		geocoder := &fakeGeocoder{err: assert.AnError}
		engine := newEngine(t, okUpstream("1"), geocoder)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/geocode?estado=Jalisco", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "could not resolve location")
	})
}
