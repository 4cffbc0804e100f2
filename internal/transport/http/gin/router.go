package httpgin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tixgo/seatengine/internal/service"
	"github.com/tixgo/seatengine/internal/service/admin"
	"github.com/tixgo/seatengine/internal/service/query"
	"github.com/tixgo/seatengine/internal/service/reservation"
)

// NewRouter wires the three engine operations (numAvailable, findAndHold,
// reserve) plus venue catalog admin onto a Gin engine, mirroring the
// teacher's transport/http/gin router shape.
func NewRouter(
	svcs *service.Services,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/venues/:id", handleGetVenue(svcs))
	r.GET("/venues/:id/availability", handleGetAvailability(svcs))
	r.POST("/venues/:id/holds", handleCreateHold(svcs))
	r.POST("/venues/:id/holds/:holdId/reserve", handleReserveHold(svcs))
	r.GET("/venues/:id/holds/:holdId", handleGetHold(svcs))

	adminGroup := r.Group("/admin")
	{
		adminGroup.POST("/venues", handleCreateVenue(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Create venue
// @Param    req body  CreateVenueRequest true "payload"
// @Success  201 {object} CreateVenueResponse
// @Router   /admin/venues [post]
func handleCreateVenue(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVenueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		id, err := svcs.Admin.CreateVenue(c.Request.Context(), req.Name, req.Rows, req.Cols)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, CreateVenueResponse{VenueID: id})
	}
}

// @Summary  Get venue
// @Param    id  path  int  true  "Venue ID"
// @Success  200  {object}  domain.Venue
// @Failure  404  {object}  ErrorResponse
// @Router   /venues/{id} [get]
func handleGetVenue(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		v, err := svcs.Query.GetVenue(c.Request.Context(), venueID)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, v, "public, max-age=60", true)
	}
}

// @Summary  numAvailable — seats not currently held or reserved
// @Param    id  path  int  true  "Venue ID"
// @Success  200  {object}  AvailabilityResponse
// @Router   /venues/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		n, err := svcs.Query.Availability(c.Request.Context(), venueID)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(
			c,
			http.StatusOK,
			AvailabilityResponse{VenueID: venueID, Available: n},
			"public, max-age=2",
			true,
		)
	}
}

// @Summary  findAndHold — hold N seats for a customer
// @Param    id   path  int                true  "Venue ID"
// @Param    req  body  CreateHoldRequest  true  "payload"
// @Success  201 {object} CreateHoldResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "out of capacity"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /venues/{id}/holds [post]
func handleCreateHold(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req CreateHoldRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		rlKey := "ip:" + c.ClientIP()

		h, err := svcs.Reservation.FindAndHold(
			c.Request.Context(),
			venueID,
			req.Seats,
			req.Email,
			rlKey,
		)
		if err != nil {
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
				return
			}
			respondErr(c, err)
			return
		}

		if h == nil {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "not enough seats available"})
			return
		}

		seats := make([]string, h.SeatCount())
		for i, s := range h.Seats {
			seats[i] = fmt.Sprintf("%d:%d", s.Row, s.Col)
		}

		c.JSON(http.StatusCreated, CreateHoldResponse{
			HoldID:    h.ID,
			SeatCount: h.SeatCount(),
			Seats:     seats,
			ExpiresAt: h.ExpiresAt.Format(time.RFC3339),
		})
	}
}

// @Summary  reserve — commit a hold to a permanent reservation
// @Param    id      path  int                 true  "Venue ID"
// @Param    holdId  path  int                 true  "Hold ID"
// @Param    req     body  ReserveHoldRequest  true  "payload"
// @Success  201 {object} ReserveHoldResponse
// @Failure  404 {object} ErrorResponse "hold not found, expired, or email mismatch"
// @Router   /venues/{id}/holds/{holdId}/reserve [post]
func handleReserveHold(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		holdID, ok := parseInt32Param(c, "holdId")
		if !ok {
			return
		}

		var req ReserveHoldRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		order, err := svcs.Reservation.Reserve(c.Request.Context(), venueID, holdID, req.Email)
		if err != nil {
			respondErr(c, err)
			return
		}

		if order == nil {
			// NotFound / AuthMismatch / Expired are intentionally
			// indistinguishable to the caller — spec §7.
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "hold not found"})
			return
		}

		c.JSON(http.StatusCreated, ReserveHoldResponse{
			OrderID:      order.ID.String(),
			Confirmation: order.Confirmation,
		})
	}
}

// @Summary  Debug read of a live hold (operator tooling)
// @Param    id      path  int  true  "Venue ID"
// @Param    holdId  path  int  true  "Hold ID"
// @Success  200 {object} HoldDebugResponse
// @Router   /venues/{id}/holds/{holdId} [get]
func handleGetHold(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		holdID, ok := parseInt32Param(c, "holdId")
		if !ok {
			return
		}

		h, found, err := svcs.Reservation.PeekHold(c.Request.Context(), venueID, holdID)
		if err != nil {
			respondErr(c, err)
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "hold not found"})
			return
		}

		c.JSON(http.StatusOK, HoldDebugResponse{
			HoldID:    h.ID,
			SeatCount: h.SeatCount(),
			Seats:     h.DebugString(),
		})
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseInt32Param(c *gin.Context, name string) (int32, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return int32(v), true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && (errors.Is(err, reservation.ErrRateLimited) || strings.Contains(err.Error(), "rate limited"))
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	case errors.Is(err, admin.ErrVenueConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "venue conflict"})
	case errors.Is(err, admin.ErrBadArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad argument"})
	case errors.Is(err, query.ErrVenueNotFound), errors.Is(err, reservation.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "venue not found"})
	case errors.Is(err, reservation.ErrBadArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad argument"})
	case errors.Is(err, reservation.ErrNullArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email is required"})
	case errors.Is(err, reservation.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
