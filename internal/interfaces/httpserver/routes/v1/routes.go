package v1

import (
	"github.com/gin-gonic/gin"

	"media-registry/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	group.POST("/media", r.handlers.Registry.Register)
	group.GET("/media/count", r.handlers.Registry.Count)
	group.GET("/media/:id", r.handlers.Registry.Get)

	group.GET("/origins/:chain/:contract/:token", r.handlers.Registry.GetByOrigin)
	group.GET("/origins/:chain/:contract/:token/can-overwrite", r.handlers.Registry.CanOverwrite)

	admin := group.Group("/admin")
	admin.GET("/config", r.handlers.Admin.GetPolicy)
	admin.PUT("/config/schema-version", r.handlers.Admin.SetSchemaVersion)
	admin.PUT("/config/max-subcomponents", r.handlers.Admin.SetMaxSubComponents)
	admin.PUT("/config/enforce-max-subcomponents", r.handlers.Admin.SetEnforceMaxSubComponents)
	admin.PUT("/config/require-authorized-writer", r.handlers.Admin.SetRequireAuthorizedWriter)
	admin.POST("/pause", r.handlers.Admin.Pause)
	admin.POST("/unpause", r.handlers.Admin.Unpause)
	admin.POST("/roles", r.handlers.Admin.GrantRole)
	admin.DELETE("/roles", r.handlers.Admin.RevokeRole)
	admin.GET("/roles/:identity", r.handlers.Admin.ListRoles)
}
