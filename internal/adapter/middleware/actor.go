package middleware

import (
	"errors"
	"net/http"

	"asset-custody/internal/domain/audit"
	"asset-custody/internal/domain/user"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HeaderUserID carries the caller's user id, set by the auth proxy in front of us.
const HeaderUserID = "X-User-Id"

const ctxUserKey = "custody.user"

// Actor resolves X-User-Id to a known user and attaches it to the request
// context, where usecases pick it up for audit entries.
func Actor(users user.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := parseUserID(c.Request().Header.Get(HeaderUserID))
			if !ok {
				return c.JSON(http.StatusUnauthorized, errBody("missing or invalid X-User-Id"))
			}
			req := c.Request()
			u, err := users.GetByID(req.Context(), id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.JSON(http.StatusUnauthorized, errBody("unknown user"))
				}
				logrus.WithError(err).WithField("user_id", id).Error("user lookup failed")
				return c.JSON(http.StatusInternalServerError, errBody("internal error"))
			}
			ctx := audit.WithActor(req.Context(), audit.Actor{
				UserID:    u.ID,
				UserName:  u.Name,
				IPAddress: c.RealIP(),
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
			})
			c.SetRequest(req.WithContext(ctx))
			c.Set(ctxUserKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Actor, or nil.
func CurrentUser(c echo.Context) *user.User {
	u, _ := c.Get(ctxUserKey).(*user.User)
	return u
}
