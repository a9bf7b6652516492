package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "media-registry/internal/domain/registry"
	"media-registry/internal/infrastructure/auth"
	"media-registry/internal/infrastructure/metrics"
	"media-registry/internal/infrastructure/observability"
	"media-registry/internal/interfaces/httpserver/requests"
	"media-registry/internal/interfaces/httpserver/responses"
)

// RegistryHandler exposes media registration and lookup endpoints.
type RegistryHandler struct {
	service domain.Service
	log     zerolog.Logger
}

func NewRegistryHandler(service domain.Service, log zerolog.Logger) *RegistryHandler {
	return &RegistryHandler{
		service: service,
		log:     log.With().Str("component", "registry-handler").Logger(),
	}
}

// Register godoc
// @Summary      Register media
// @Description  Registers a creative-work record with optional sub-components and origin link.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request  body      requests.RegisterMediaRequest  true  "Registration request"
// @Success      201      {object}  responses.RegisterResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      401      {object}  responses.ErrorResponse
// @Failure      409      {object}  responses.ErrorResponse
// @Failure      422      {object}  responses.ErrorResponse
// @Failure      503      {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/media [post]
func (h *RegistryHandler) Register(c *gin.Context) {
	var req requests.RegisterMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	caller := auth.CallerIdentity(c)
	params := req.ToDomain(caller)

	ctx, span := observability.StartRegistrationSpan(
		c.Request.Context(), caller, len(params.SubComponents), params.Origin != nil)
	defer span.End()

	media, err := h.service.RegisterMedia(ctx, params)
	if err != nil {
		observability.RecordError(span, err)
		metrics.RecordRejection(rejectionReason(err))
		h.log.Debug().Err(err).Str("creator", caller).Msg("registration rejected")
		responses.HandleError(c, err, "failed to register media")
		return
	}

	observability.AddRegisteredEvent(span, media.ID)
	metrics.RecordRegistration()
	c.JSON(http.StatusCreated, responses.BuildRegisterResponse(media))
}

// Get godoc
// @Summary      Get media by ID
// @Tags         media
// @Produce      json
// @Param        id   path      int  true  "Media ID"
// @Success      200  {object}  responses.MediaResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/media/{id} [get]
func (h *RegistryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.HandleBindError(c, err)
		return
	}

	ctx, span := observability.StartLookupSpan(c.Request.Context(), "id")
	defer span.End()

	media, lookupErr := h.service.GetMedia(ctx, id)
	if lookupErr != nil {
		observability.RecordError(span, lookupErr)
		metrics.RecordLookup("id", lookupResult(lookupErr))
		responses.HandleError(c, lookupErr, "failed to get media")
		return
	}
	metrics.RecordLookup("id", "hit")
	c.JSON(http.StatusOK, responses.BuildMediaResponse(media))
}

// GetByOrigin godoc
// @Summary      Get media by origin key
// @Description  Resolves the origin index. The index is last-write-wins per key.
// @Tags         media
// @Produce      json
// @Param        chain     path      string  true  "Origin chain ID"
// @Param        contract  path      string  true  "Origin contract"
// @Param        token     path      string  true  "Origin token ID"
// @Success      200  {object}  responses.MediaResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/origins/{chain}/{contract}/{token} [get]
func (h *RegistryHandler) GetByOrigin(c *gin.Context) {
	key := originKeyFromPath(c)
	ctx, span := observability.StartLookupSpan(c.Request.Context(), "origin")
	defer span.End()

	media, err := h.service.GetMediaByOrigin(ctx, key)
	if err != nil {
		observability.RecordError(span, err)
		metrics.RecordLookup("origin", lookupResult(err))
		responses.HandleError(c, err, "failed to resolve origin")
		return
	}
	metrics.RecordLookup("origin", "hit")
	c.JSON(http.StatusOK, responses.BuildMediaResponse(media))
}

// Count godoc
// @Summary      Count registered media
// @Tags         media
// @Produce      json
// @Success      200  {object}  responses.CountResponse
// @Router       /v1/media/count [get]
func (h *RegistryHandler) Count(c *gin.Context) {
	count, err := h.service.MediaCount(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to count media")
		return
	}
	c.JSON(http.StatusOK, responses.CountResponse{Count: count})
}

// CanOverwrite godoc
// @Summary      Origin overwrite preflight
// @Description  Reports whether the caller may act on the record indexed at the origin key.
// @Tags         media
// @Produce      json
// @Param        chain     path      string  true  "Origin chain ID"
// @Param        contract  path      string  true  "Origin contract"
// @Param        token     path      string  true  "Origin token ID"
// @Success      200  {object}  responses.CanOverwriteResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/origins/{chain}/{contract}/{token}/can-overwrite [get]
func (h *RegistryHandler) CanOverwrite(c *gin.Context) {
	key := originKeyFromPath(c)
	caller := auth.CallerIdentity(c)

	err := h.service.CanOverwriteOrigin(c.Request.Context(), caller, key)
	if err != nil {
		if domain.IsKind(err, domain.KindForbidden) {
			c.JSON(http.StatusOK, responses.CanOverwriteResponse{Allowed: false})
			return
		}
		responses.HandleError(c, err, "failed to check overwrite authorization")
		return
	}
	c.JSON(http.StatusOK, responses.CanOverwriteResponse{Allowed: true})
}

func originKeyFromPath(c *gin.Context) domain.OriginKey {
	return domain.OriginKey{
		ChainID:  c.Param("chain"),
		Contract: c.Param("contract"),
		TokenID:  c.Param("token"),
	}
}

func rejectionReason(err error) string {
	if kind := domain.KindOf(err); kind != "" {
		return string(kind)
	}
	return "INTERNAL"
}

func lookupResult(err error) string {
	if domain.IsKind(err, domain.KindNotFound) {
		return "miss"
	}
	return "error"
}
