package http

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"

	actorContextKey = "actor"
)

// ResolveActor reads the caller identity set by the authentication proxy in front
// of the service. The identity is trusted as given.
func ResolveActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := kernel.UUIDFromString(c.Request().Header.Get(headerActorID))
			if err != nil {
				return errs.NewValueIsInvalidErrorWithCause(headerActorID, err)
			}

			actor, err := order.NewActor(id, order.Role(c.Request().Header.Get(headerActorRole)))
			if err != nil {
				return err
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) order.Actor {
	actor, _ := c.Get(actorContextKey).(order.Actor)
	return actor
}
