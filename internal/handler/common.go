package handler // handler defines http handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/delgrossoviaggi/bus-booking/internal/auth"
	"github.com/delgrossoviaggi/bus-booking/internal/model"
	"github.com/delgrossoviaggi/bus-booking/internal/repository"
	"github.com/delgrossoviaggi/bus-booking/internal/service"
)

// sessionFrom rebuilds the caller's session from the role claim that
// JWTAuth stored in the context.  Requests outside the protected
// groups have no claim and get the zero (unprivileged) session, so
// services stay the sole authority on what a session may do.
func sessionFrom(c echo.Context) auth.Session {
	role, _ := c.Get("role").(string)
	return auth.Session{Privileged: role == "ADMIN"}
}

// capacityParam parses the :busType path parameter ("53", "63") into a
// Capacity.
func capacityParam(c echo.Context) (model.Capacity, bool) {
	return model.ParseCapacity(c.Param("busType"))
}

// writeEngineError maps the service error taxonomy onto HTTP
// responses.  Conflict responses carry "refresh": true so the client
// knows its availability snapshot is stale and must be re-fetched
// before the next attempt; store faults carry it too, since the engine
// cannot tell how much of the snapshot is still trustworthy.
func writeEngineError(c echo.Context, err error) error {
	switch {
	case service.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrSeatTaken):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   "seat just taken, please refresh",
			"refresh": true,
		})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrTripNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
	case errors.Is(err, service.ErrTimeout):
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "store timeout", "refresh": true})
	default:
		log.Printf("handler: store error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error", "refresh": true})
	}
}
