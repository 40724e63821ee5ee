package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking_booking/internal/catalog"
	"parking_booking/internal/domain"
	"parking_booking/internal/repository/memory"
	"parking_booking/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.StatusBoard) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	locations := memory.NewLocationRepository(catalog.Seed())
	board := service.NewStatusBoard(3, nil)
	r := SetupRouter(Services{
		Parking:     service.NewParkingService(locations),
		BookingFlow: service.NewBookingFlowService(memory.NewBookingFlowRepository(), locations),
		Payment:     service.NewPaymentService(memory.NewPaymentRepository(), locations, 10*time.Millisecond, nil, nil),
		Status:      board,
		Voice:       service.NewVoiceService(board),
	})
	return r, board
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatus_GetAndUpdate(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Empty", "Empty", "Empty"}, decode[[]string](t, rec))

	rec = do(r, http.MethodPut, "/status/slots/2", gin.H{"occupied": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Empty", "Occupied", "Empty"}, decode[[]string](t, rec))

	rec = do(r, http.MethodPut, "/status/slots/9", gin.H{"occupied": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPut, "/status/slots/1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPut, "/status", []string{"Occupied", "Occupied", "Occupied"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodPut, "/status", []string{"Occupied", "Gone", "Empty"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodGet, "/status", nil)
	assert.Equal(t, []string{"Occupied", "Occupied", "Occupied"}, decode[[]string](t, rec))
}

func TestLocations(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodGet, "/api/v1/locations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	locs := decode[[]domain.ParkingLocation](t, rec)
	require.Len(t, locs, 5)
	assert.Equal(t, "downtown", locs[0].ID)
	assert.Nil(t, locs[0].Slots)

	rec = do(r, http.MethodGet, "/api/v1/locations?q=AIRPORT", nil)
	locs = decode[[]domain.ParkingLocation](t, rec)
	require.Len(t, locs, 1)
	assert.Equal(t, "airport", locs[0].ID)

	rec = do(r, http.MethodGet, "/api/v1/locations/riverside", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	loc := decode[domain.ParkingLocation](t, rec)
	assert.Len(t, loc.Slots, 40)

	rec = do(r, http.MethodGet, "/api/v1/locations/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/api/v1/locations/station/slots", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.ParkingSlot](t, rec), 30)
}

func TestParkingDetail(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodGet, "/parking/unknown", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = do(r, http.MethodGet, "/parking/downtown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[parkingDetailView](t, rec)
	require.Len(t, view.Slots, 50)
	assert.Equal(t, "green", view.Slots[0].Color)
	assert.True(t, view.Slots[0].Selectable)
	assert.Equal(t, "red", view.Slots[49].Color)
	assert.False(t, view.Slots[49].Selectable)
}

type parkingDetailView struct {
	Location domain.ParkingLocation `json:"location"`
	Slots    []struct {
		domain.ParkingSlot
		Color      string `json:"color"`
		Selectable bool   `json:"selectable"`
	} `json:"slots"`
}

func TestMapMarkers(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodGet, "/api/v1/map/markers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[domain.MapView](t, rec)
	assert.Equal(t, service.DefaultMapCenter, view.Center)
	assert.Equal(t, 13, view.Zoom)
	require.Len(t, view.Markers, 5)
	assert.Equal(t, domain.MarkerYellow, view.Markers[0].Color)

	rec = do(r, http.MethodGet, "/api/v1/map/markers?lat=48.85&lng=2.35", nil)
	view = decode[domain.MapView](t, rec)
	assert.Equal(t, domain.Position{Lat: 48.85, Lng: 2.35}, view.Center)

	rec = do(r, http.MethodGet, "/api/v1/map/markers?lat=abc&lng=2", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/dashboard?q=mall", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Locations []domain.ParkingLocation `json:"locations"`
		Map       domain.MapView           `json:"map"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Locations, 1)
	assert.Equal(t, "mall", view.Locations[0].ID)
	assert.Len(t, view.Map.Markers, 5)
}

func TestBookingFlow_EndToEnd(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodPost, "/api/v1/booking-flows", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	flow := decode[domain.BookingFlow](t, rec)
	base := "/api/v1/booking-flows/" + flow.ID

	// occupied slot: nothing happens
	rec = do(r, http.MethodPost, base+"/select", gin.H{"location_id": "downtown", "slot_id": "dt-30"})
	require.Equal(t, http.StatusOK, rec.Code)
	sel := decode[domain.SelectSlotResponse](t, rec)
	assert.False(t, sel.Selected)
	assert.Equal(t, domain.FlowIdle, sel.Flow.State)

	rec = do(r, http.MethodPut, base+"/hours", gin.H{"hours": 3})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, http.MethodPost, base+"/select", gin.H{"location_id": "downtown", "slot_id": "dt-1"})
	sel = decode[domain.SelectSlotResponse](t, rec)
	require.True(t, sel.Selected)
	assert.Equal(t, domain.FlowReviewing, sel.Flow.State)

	rec = do(r, http.MethodPut, base+"/hours", gin.H{"hours": 30})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 24, decode[domain.BookingFlow](t, rec).Hours)

	rec = do(r, http.MethodPut, base+"/hours", gin.H{"delta": -21})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[domain.BookingFlow](t, rec).Hours)

	rec = do(r, http.MethodPut, base+"/hours", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, base+"/confirm", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	conf := decode[domain.ConfirmFlowResponse](t, rec)
	assert.Equal(t, domain.FlowConfirmed, conf.Flow.State)
	assert.Equal(t, "/booking/confirm?hours=3&location=downtown&slot=dt-1", conf.ConfirmURL)

	rec = do(r, http.MethodPost, base+"/dismiss", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, http.MethodGet, "/api/v1/booking-flows/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodPost, base+"/select", gin.H{"location_id": "downtown"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmationPage(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodGet, "/booking/confirm?slot=dt-3&location=downtown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[domain.ConfirmationView](t, rec)
	assert.Equal(t, 1, view.Hours)
	assert.Equal(t, "1 hour", view.DurationLabel)
	assert.Equal(t, "3", view.SlotLabel)
	assert.Equal(t, "2.95", view.Display.Total)
	assert.Equal(t, "Pay $2.95", view.PayLabel)

	rec = do(r, http.MethodGet, "/booking/confirm?slot=dt-3&location=downtown&hours=2abc", nil)
	view = decode[domain.ConfirmationView](t, rec)
	assert.Equal(t, 2, view.Hours)
	assert.Equal(t, "5.90", view.Display.Total)

	rec = do(r, http.MethodGet, "/booking/confirm?slot=dt-3&location=downtown&hours=abc", nil)
	assert.Equal(t, 1, decode[domain.ConfirmationView](t, rec).Hours)

	for _, path := range []string{"/booking/confirm?slot=x-1&location=moon&hours=2", "/booking/confirm?slot=dt-1"} {
		rec = do(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"), path)
	}
}

func TestQuote(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodPost, "/api/v1/quotes", gin.H{"location_id": "downtown", "hours": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	q := decode[domain.QuoteResponse](t, rec)
	assert.Equal(t, "5.00", q.Display.ParkingFee)
	assert.Equal(t, "0.50", q.Display.ServiceFee)
	assert.Equal(t, "0.40", q.Display.Tax)
	assert.Equal(t, "5.90", q.Display.Total)

	rec = do(r, http.MethodPost, "/api/v1/quotes", gin.H{"hours": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/v1/quotes", gin.H{"rate": -1, "hours": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayment(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodPost, "/api/v1/payments", gin.H{"slot": "dt-3", "location": "downtown", "hours": 2, "method": "bank"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	payment := decode[domain.Payment](t, rec)
	assert.Equal(t, domain.PaymentProcessing, payment.Step)

	require.Eventually(t, func() bool {
		rec := do(r, http.MethodGet, "/api/v1/payments/"+payment.ID, nil)
		var got domain.Payment
		return rec.Code == http.StatusOK &&
			json.Unmarshal(rec.Body.Bytes(), &got) == nil &&
			got.Step == domain.PaymentSuccess
	}, time.Second, 5*time.Millisecond)

	rec = do(r, http.MethodPost, "/api/v1/payments", gin.H{"location": "downtown", "method": "cheque"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/v1/payments", gin.H{"location": "moon"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/api/v1/payments/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVoiceCommands(t *testing.T) {
	r, board := newTestRouter(t)
	_, err := board.SetSlot(1, true)
	require.NoError(t, err)

	rec := do(r, http.MethodPost, "/api/v1/voice/commands", gin.H{"utterance": "Find available slot"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Slot 2 is available.", decode[domain.VoiceCommandResult](t, rec).Speech)

	rec = do(r, http.MethodPost, "/api/v1/voice/commands", gin.H{"utterance": "book slot 4"})
	assert.Equal(t, "Booking slot 4.", decode[domain.VoiceCommandResult](t, rec).Speech)

	rec = do(r, http.MethodPost, "/api/v1/voice/commands", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVoiceCommands_StatusUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	locations := memory.NewLocationRepository(catalog.Seed())
	r := SetupRouter(Services{
		Parking:     service.NewParkingService(locations),
		BookingFlow: service.NewBookingFlowService(memory.NewBookingFlowRepository(), locations),
		Payment:     service.NewPaymentService(memory.NewPaymentRepository(), locations, time.Millisecond, nil, nil),
		Status:      service.NewStatusBoard(1, nil),
		Voice:       service.NewVoiceService(service.NewHTTPStatusSource("http://127.0.0.1:1/status")),
	})

	rec := do(r, http.MethodPost, "/api/v1/voice/commands", gin.H{"utterance": "find available slot"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVoiceScriptServed(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/static/voice_navigation.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/voice/commands")
	assert.NotContains(t, rec.Body.String(), "API_KEY")
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodOptions, "/api/v1/quotes", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
