package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/delgrossoviaggi/bus-booking/internal/service"
)

// TripHandler exposes the destination catalog.  Listing is public so
// the booking form can populate its destination select; mutations are
// registered behind the admin middleware by the router.
type TripHandler struct {
	Trips *service.TripService
}

// NewTripHandler constructs a TripHandler.
func NewTripHandler(trips *service.TripService) *TripHandler {
	if trips == nil {
		panic("nil service passed to NewTripHandler")
	}
	return &TripHandler{Trips: trips}
}

// List handles GET /v1/trips.  Trips are ordered by date ascending
// with dateless trips last.  This is the one route the Redis response
// cache sits in front of.
func (h *TripHandler) List(c echo.Context) error {
	trips, err := h.Trips.List(c.Request().Context())
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": trips})
}

type tripReq struct {
	Name string  `json:"name"`
	Date *string `json:"date,omitempty"` // YYYY-MM-DD, optional
}

// Create handles POST /v1/trips (admin only).
func (h *TripHandler) Create(c echo.Context) error {
	var req tripReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	trip, err := h.Trips.Create(c.Request().Context(), sessionFrom(c), req.Name, req.Date)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"trip": trip})
}

// Update handles PUT /v1/trips/:id (admin only).
func (h *TripHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	var req tripReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	trip, err := h.Trips.Update(c.Request().Context(), sessionFrom(c), id, req.Name, req.Date)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"trip": trip})
}

// Delete handles DELETE /v1/trips/:id (admin only).  Absent ids are a
// success; existing bookings keep the destination text they copied.
func (h *TripHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	if err := h.Trips.Delete(c.Request().Context(), sessionFrom(c), id); err != nil {
		return writeEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
