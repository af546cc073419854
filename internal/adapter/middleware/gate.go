package middleware

import (
	"context"
	"net/http"

	"asset-custody/internal/domain/user"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Actions checked by the gate.
const (
	ActRead    = "read"
	ActCreate  = "create"
	ActUpdate  = "update"
	ActDelete  = "delete"
	ActApprove = "approve"
	ActReject  = "reject"
	ActStatus  = "status"
)

// PermissionGate decides whether a user may perform action on an entity type.
type PermissionGate interface {
	Authorize(ctx context.Context, userID uint64, entity, action string) bool
}

// RoleGate grants by role. Anything not listed needs at least RoleUser.
type RoleGate struct {
	Users user.Repository
	Rules map[string]user.Role // "entity:action" -> minimum role
}

func DefaultRules() map[string]user.Role {
	return map[string]user.Role{
		"talep:" + ActApprove: user.RoleManager,
		"talep:" + ActReject:  user.RoleManager,
		"talep:" + ActDelete:  user.RoleManager,
		"urun:" + ActStatus:   user.RoleManager,
		"urun:" + ActDelete:   user.RoleAdmin,
		"zimmet:" + ActDelete: user.RoleManager,
		"denetim:" + ActRead:  user.RoleManager,
	}
}

func NewRoleGate(users user.Repository) *RoleGate {
	return &RoleGate{Users: users, Rules: DefaultRules()}
}

func (g *RoleGate) Authorize(ctx context.Context, userID uint64, entity, action string) bool {
	u, err := g.Users.GetByID(ctx, userID)
	if err != nil {
		return false
	}
	need, ok := g.Rules[entity+":"+action]
	if !ok {
		need = user.RoleUser
	}
	return u.Role.AtLeast(need)
}

// Require returns a route middleware that asks gate about the current actor.
// It must run after Actor.
func Require(gate PermissionGate) func(entity, action string) echo.MiddlewareFunc {
	return func(entity, action string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				u := CurrentUser(c)
				if u == nil {
					return c.JSON(http.StatusUnauthorized, errBody("not authenticated"))
				}
				if !gate.Authorize(c.Request().Context(), u.ID, entity, action) {
					logrus.WithFields(logrus.Fields{
						"user_id": u.ID,
						"entity":  entity,
						"action":  action,
					}).Info("permission denied")
					return c.JSON(http.StatusForbidden, errBody("permission denied"))
				}
				return next(c)
			}
		}
	}
}
