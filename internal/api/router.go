package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_booking/internal/api/handler"
	"parking_booking/internal/api/middleware"
	"parking_booking/internal/service"
)

//go:embed static/voice_navigation.js
var voiceNavigationJS []byte

// Services bundles what the router wires into handlers.
type Services struct {
	Parking     *service.ParkingService
	BookingFlow *service.BookingFlowService
	Payment     *service.PaymentService
	Status      *service.StatusBoard
	Voice       *service.VoiceService
	WebSocket   *handler.WebSocketManager
}

func SetupRouter(s Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/static/voice_navigation.js", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/javascript; charset=utf-8", voiceNavigationJS)
	})

	if s.WebSocket != nil {
		wsHandler := handler.NewWebSocketHandler(s.WebSocket)
		r.GET("/ws", wsHandler.HandleWebSocket)
	}

	statusH := handler.NewStatusHandler(s.Status)
	r.GET("/status", statusH.GetStatus)
	r.PUT("/status", statusH.ReplaceStatus)
	r.PUT("/status/slots/:index", statusH.UpdateSlot)

	locationH := handler.NewLocationHandler(s.Parking)
	paymentH := handler.NewPaymentHandler(s.Payment)

	// Views of the booking screens.
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
	r.GET("/dashboard", locationH.Dashboard)
	r.GET("/parking/:id", locationH.ParkingDetail)
	r.GET("/booking/confirm", paymentH.ConfirmationPage)

	v1 := r.Group("/api/v1")
	{
		locationRoutes := v1.Group("/locations")
		{
			locationRoutes.GET("", locationH.ListLocations)
			locationRoutes.GET("/:id", locationH.GetLocation)
			locationRoutes.GET("/:id/slots", locationH.GetSlots)
		}
		v1.GET("/map/markers", locationH.MapMarkers)
		v1.POST("/quotes", paymentH.Quote)

		flowH := handler.NewBookingFlowHandler(s.BookingFlow)
		flowRoutes := v1.Group("/booking-flows")
		{
			flowRoutes.POST("", flowH.CreateFlow)
			flowRoutes.GET("/:id", flowH.GetFlow)
			flowRoutes.POST("/:id/select", flowH.SelectSlot)
			flowRoutes.PUT("/:id/hours", flowH.SetHours)
			flowRoutes.POST("/:id/dismiss", flowH.Dismiss)
			flowRoutes.POST("/:id/confirm", flowH.Confirm)
		}

		paymentRoutes := v1.Group("/payments")
		{
			paymentRoutes.POST("", paymentH.SubmitPayment)
			paymentRoutes.GET("/:id", paymentH.GetPayment)
		}

		voiceH := handler.NewVoiceHandler(s.Voice)
		v1.POST("/voice/commands", voiceH.Interpret)
	}
	return r
}
