package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/delgrossoviaggi/bus-booking/internal/layout"
	"github.com/delgrossoviaggi/bus-booking/internal/model"
	"github.com/delgrossoviaggi/bus-booking/internal/service"
)

// BookingHandler exposes seat availability and the booking flow.  Seat
// submission is public (passengers book their own seats); cancellation
// is registered behind the admin middleware by the router.
type BookingHandler struct {
	Bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

// seatView is one slot in the rendered seatmap.  A null entry in the
// row array is an empty padding slot.
type seatView struct {
	ID     int              `json:"id"`
	Label  string           `json:"label"`
	Status model.SeatStatus `json:"status"`
}

// Seatmap handles GET /v1/buses/:busType/seatmap?selected=N.  It
// fetches the authoritative reservation list, rebuilds the index and
// returns the full grid with every slot classified, plus the booked
// count and the advisory full flag.  Clients call this again after
// every mutation or conflict; the seatmap is never cached.
func (h *BookingHandler) Seatmap(c echo.Context) error {
	capacity, ok := capacityParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown bus type"})
	}
	selected := 0
	if s := c.QueryParam("selected"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid selected seat"})
		}
		selected = n
	}

	bookings, err := h.Bookings.ListBookings(c.Request().Context(), capacity)
	if err != nil {
		return writeEngineError(c, err)
	}
	idx := layout.BuildIndex(capacity, bookings)
	grid := layout.Generate(capacity.Seats())

	rows := make([][]*seatView, len(grid))
	for r, row := range grid {
		rows[r] = make([]*seatView, model.RowWidth)
		for s, seat := range row {
			if seat == nil {
				continue
			}
			rows[r][s] = &seatView{
				ID:     seat.ID,
				Label:  seat.Label,
				Status: idx.Classify(seat.ID, selected),
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"bus_type": capacity.BusType(),
		"capacity": capacity.Seats(),
		"booked":   idx.Booked(),
		"full":     service.IsFull(capacity, idx.Booked()),
		"rows":     rows,
	})
}

// List handles GET /v1/buses/:busType/bookings.  It returns the
// reservation list ordered by seat, the snapshot clients build their
// index from.
func (h *BookingHandler) List(c echo.Context) error {
	capacity, ok := capacityParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown bus type"})
	}
	bookings, err := h.Bookings.ListBookings(c.Request().Context(), capacity)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": bookings,
		"count": len(bookings),
	})
}

type createBookingReq struct {
	Seat           int    `json:"seat"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	DeparturePlace string `json:"departure_place"`
	DepartureDate  string `json:"departure_date"`
	Destination    string `json:"destination"`
	BusType        string `json:"bus_type"`
}

// Create handles POST /v1/bookings.  The engine validates locally,
// then lets the store's unique key arbitrate concurrent claims; a 409
// tells the client to re-fetch the seatmap and pick again.  The
// handler passes no snapshot index: over HTTP the client owns the
// snapshot, and skipping the server-side pre-check costs one doomed
// insert at most.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	capacity, _ := model.ParseCapacity(req.BusType)

	booking, err := h.Bookings.AttemptBook(c.Request().Context(), service.BookingRequest{
		Seat:           req.Seat,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		DeparturePlace: req.DeparturePlace,
		DepartureDate:  req.DepartureDate,
		Destination:    req.Destination,
		Capacity:       capacity,
	}, nil)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// Delete handles DELETE /v1/bookings/:id (admin only).  Deleting an id
// that no longer exists is a success, so two operators cancelling the
// same booking both see 204.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Bookings.Cancel(c.Request().Context(), id, sessionFrom(c)); err != nil {
		return writeEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
