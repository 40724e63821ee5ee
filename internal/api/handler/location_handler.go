package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
	"parking_booking/internal/service"
)

type LocationHandler struct {
	parkingService *service.ParkingService
}

func NewLocationHandler(ps *service.ParkingService) *LocationHandler {
	return &LocationHandler{parkingService: ps}
}

type slotView struct {
	domain.ParkingSlot
	Title      string `json:"title"`
	Color      string `json:"color"`
	Selectable bool   `json:"selectable"`
}

type parkingDetailView struct {
	Location domain.ParkingLocation `json:"location"`
	Slots    []slotView             `json:"slots"`
}

type dashboardView struct {
	Query     string                   `json:"query,omitempty"`
	Locations []domain.ParkingLocation `json:"locations"`
	Map       *domain.MapView          `json:"map"`
}

// GET /api/v1/locations?q=
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.parkingService.ListLocations(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to list locations")
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GET /api/v1/locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	loc, err := h.parkingService.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load location")
		return
	}
	c.JSON(http.StatusOK, loc)
}

// GET /api/v1/locations/:id/slots
func (h *LocationHandler) GetSlots(c *gin.Context) {
	slots, err := h.parkingService.GetSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load slots")
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GET /api/v1/map/markers?lat=&lng=
func (h *LocationHandler) MapMarkers(c *gin.Context) {
	pos, ok := userPosition(c)
	if !ok {
		return
	}
	view, err := h.parkingService.MapView(c.Request.Context(), pos)
	if err != nil {
		respondError(c, err, "Failed to build map")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /dashboard?q=&lat=&lng=
func (h *LocationHandler) Dashboard(c *gin.Context) {
	pos, ok := userPosition(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	query := c.Query("q")
	locations, err := h.parkingService.ListLocations(ctx, query)
	if err != nil {
		respondError(c, err, "Failed to list locations")
		return
	}
	view, err := h.parkingService.MapView(ctx, pos)
	if err != nil {
		respondError(c, err, "Failed to build map")
		return
	}
	c.JSON(http.StatusOK, dashboardView{Query: query, Locations: locations, Map: view})
}

// GET /parking/:id. Unknown ids go back to the dashboard.
func (h *LocationHandler) ParkingDetail(c *gin.Context) {
	loc, err := h.parkingService.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		respondError(c, err, "Failed to load location")
		return
	}

	slots := make([]slotView, 0, len(loc.Slots))
	for _, s := range loc.Slots {
		slots = append(slots, slotView{
			ParkingSlot: s,
			Title:       s.Title(),
			Color:       s.Status.Color(),
			Selectable:  s.Selectable(),
		})
	}
	c.JSON(http.StatusOK, parkingDetailView{Location: loc.Summary(), Slots: slots})
}

// userPosition reads the optional lat/lng pair. It writes a 400 and returns
// false when either value is present but malformed.
func userPosition(c *gin.Context) (*domain.Position, bool) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" && lngStr == "" {
		return nil, true
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must both be valid coordinates"})
		return nil, false
	}
	return &domain.Position{Lat: lat, Lng: lng}, true
}
