package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *gin.Context) model.Actor {
	actor, _ := middleware.CurrentActor(c)
	return actor
}

func orderID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainErrors.ErrInvalidID
	}
	return id, nil
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.Error(message))
}

// failWith maps domain errors to HTTP responses. Unknown errors are reported
// as 500 without details.
func failWith(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, domainErrors.ErrInvalidID):
		fail(c, http.StatusBadRequest, "Invalid id: "+c.Param("id"))
	case errors.Is(err, domainErrors.ErrNotFound):
		if id := c.Param("id"); id != "" {
			fail(c, http.StatusNotFound, "Order not found with this id: "+id)
			return
		}
		fail(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domainErrors.ErrOrderDelivered):
		fail(c, http.StatusBadRequest, "Order has already been delivered!")
	case errors.Is(err, domainErrors.ErrInvalidOrderStatus),
		errors.Is(err, domainErrors.ErrInvalidOrder):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, domainErrors.ErrForbidden):
		fail(c, http.StatusForbidden, "Role is not allowed to access this resource")
	default:
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}
