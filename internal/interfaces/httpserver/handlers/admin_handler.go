package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "media-registry/internal/domain/registry"
	"media-registry/internal/infrastructure/auth"
	"media-registry/internal/infrastructure/metrics"
	"media-registry/internal/infrastructure/rbac"
	"media-registry/internal/interfaces/httpserver/requests"
	"media-registry/internal/interfaces/httpserver/responses"
)

// AdminHandler exposes policy setters, pause control, and role
// bookkeeping. Role checks for the policy operations happen inside the
// domain service; the role endpoints are gated here on the admin role.
type AdminHandler struct {
	service domain.Service
	roles   *rbac.Store
	log     zerolog.Logger
}

func NewAdminHandler(service domain.Service, roles *rbac.Store, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		roles:   roles,
		log:     log.With().Str("component", "admin-handler").Logger(),
	}
}

// GetPolicy godoc
// @Summary      Get current registry policy
// @Tags         admin
// @Produce      json
// @Success      200  {object}  responses.PolicyResponse
// @Router       /v1/admin/config [get]
func (h *AdminHandler) GetPolicy(c *gin.Context) {
	policy, err := h.service.CurrentPolicy(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to load policy")
		return
	}
	c.JSON(http.StatusOK, responses.BuildPolicyResponse(policy))
}

// SetSchemaVersion godoc
// @Summary      Set schema version
// @Description  Requires the upgrade authority role.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  requests.SetSchemaVersionRequest  true  "New version"
// @Success      204  "updated"
// @Failure      401  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/config/schema-version [put]
func (h *AdminHandler) SetSchemaVersion(c *gin.Context) {
	var req requests.SetSchemaVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	caller := auth.CallerIdentity(c)
	if err := h.service.SetSchemaVersion(c.Request.Context(), caller, req.Version); err != nil {
		responses.HandleError(c, err, "failed to set schema version")
		return
	}
	metrics.RecordPolicyUpdate("schema_version")
	c.Status(http.StatusNoContent)
}

// SetMaxSubComponents godoc
// @Summary      Set sub-component cap
// @Description  Requires the admin role. The cap is an exclusive upper bound.
// @Tags         admin
// @Accept       json
// @Param        request  body  requests.SetMaxSubComponentsRequest  true  "New cap"
// @Success      204  "updated"
// @Failure      401  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/config/max-subcomponents [put]
func (h *AdminHandler) SetMaxSubComponents(c *gin.Context) {
	var req requests.SetMaxSubComponentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	caller := auth.CallerIdentity(c)
	if err := h.service.SetMaxSubComponents(c.Request.Context(), caller, req.Max); err != nil {
		responses.HandleError(c, err, "failed to set sub-component cap")
		return
	}
	metrics.RecordPolicyUpdate("max_sub_components")
	c.Status(http.StatusNoContent)
}

// SetEnforceMaxSubComponents godoc
// @Summary      Toggle cap enforcement
// @Tags         admin
// @Accept       json
// @Param        request  body  requests.SetToggleRequest  true  "Toggle"
// @Success      204  "updated"
// @Failure      401  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/config/enforce-max-subcomponents [put]
func (h *AdminHandler) SetEnforceMaxSubComponents(c *gin.Context) {
	var req requests.SetToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	caller := auth.CallerIdentity(c)
	if err := h.service.SetEnforceMaxSubComponents(c.Request.Context(), caller, *req.Enabled); err != nil {
		responses.HandleError(c, err, "failed to toggle cap enforcement")
		return
	}
	metrics.RecordPolicyUpdate("enforce_max_sub_components")
	c.Status(http.StatusNoContent)
}

// SetRequireAuthorizedWriter godoc
// @Summary      Toggle writer allowlist
// @Tags         admin
// @Accept       json
// @Param        request  body  requests.SetToggleRequest  true  "Toggle"
// @Success      204  "updated"
// @Failure      401  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/config/require-authorized-writer [put]
func (h *AdminHandler) SetRequireAuthorizedWriter(c *gin.Context) {
	var req requests.SetToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	caller := auth.CallerIdentity(c)
	if err := h.service.SetRequireAuthorizedWriter(c.Request.Context(), caller, *req.Enabled); err != nil {
		responses.HandleError(c, err, "failed to toggle writer allowlist")
		return
	}
	metrics.RecordPolicyUpdate("require_authorized_writer")
	c.Status(http.StatusNoContent)
}

// Pause godoc
// @Summary      Pause registrations
// @Description  Requires the pause authority role. Lookups and setters stay available.
// @Tags         admin
// @Success      204  "paused"
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/pause [post]
func (h *AdminHandler) Pause(c *gin.Context) {
	caller := auth.CallerIdentity(c)
	if err := h.service.Pause(c.Request.Context(), caller); err != nil {
		responses.HandleError(c, err, "failed to pause registry")
		return
	}
	metrics.RecordPolicyUpdate("paused")
	c.Status(http.StatusNoContent)
}

// Unpause godoc
// @Summary      Resume registrations
// @Tags         admin
// @Success      204  "resumed"
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/unpause [post]
func (h *AdminHandler) Unpause(c *gin.Context) {
	caller := auth.CallerIdentity(c)
	if err := h.service.Unpause(c.Request.Context(), caller); err != nil {
		responses.HandleError(c, err, "failed to unpause registry")
		return
	}
	metrics.RecordPolicyUpdate("paused")
	c.Status(http.StatusNoContent)
}

// GrantRole godoc
// @Summary      Grant a role
// @Description  Requires the admin role.
// @Tags         admin
// @Accept       json
// @Param        request  body  requests.RoleRequest  true  "Role grant"
// @Success      204  "granted"
// @Failure      401  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/roles [post]
func (h *AdminHandler) GrantRole(c *gin.Context) {
	var req requests.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	caller := auth.CallerIdentity(c)
	if err := h.requireAdmin(c, caller); err != nil {
		responses.HandleError(c, err, "admin role required")
		return
	}
	if err := h.roles.Grant(c.Request.Context(), domain.Role(req.Role), req.Identity, caller); err != nil {
		responses.HandleError(c, err, "failed to grant role")
		return
	}
	c.Status(http.StatusNoContent)
}

// RevokeRole godoc
// @Summary      Revoke a role
// @Description  Requires the admin role.
// @Tags         admin
// @Accept       json
// @Param        request  body  requests.RoleRequest  true  "Role revocation"
// @Success      204  "revoked"
// @Failure      401  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/roles [delete]
func (h *AdminHandler) RevokeRole(c *gin.Context) {
	var req requests.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	caller := auth.CallerIdentity(c)
	if err := h.requireAdmin(c, caller); err != nil {
		responses.HandleError(c, err, "admin role required")
		return
	}
	if err := h.roles.Revoke(c.Request.Context(), domain.Role(req.Role), req.Identity); err != nil {
		responses.HandleError(c, err, "failed to revoke role")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRoles godoc
// @Summary      List roles of an identity
// @Tags         admin
// @Produce      json
// @Param        identity  path  string  true  "Caller identity"
// @Success      200  {object}  responses.RolesResponse
// @Router       /v1/admin/roles/{identity} [get]
func (h *AdminHandler) ListRoles(c *gin.Context) {
	identity := c.Param("identity")
	roles, err := h.roles.RolesOf(c.Request.Context(), identity)
	if err != nil {
		responses.HandleError(c, err, "failed to list roles")
		return
	}
	c.JSON(http.StatusOK, responses.BuildRolesResponse(identity, roles))
}

func (h *AdminHandler) requireAdmin(c *gin.Context, caller string) error {
	ok, err := h.roles.HasRole(c.Request.Context(), domain.RoleAdmin, caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.KindUnauthorized, "caller %q lacks role %s", caller, domain.RoleAdmin)
	}
	return nil
}
