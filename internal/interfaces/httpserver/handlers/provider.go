package handlers

import (
	"github.com/rs/zerolog"

	domain "media-registry/internal/domain/registry"
	"media-registry/internal/infrastructure/rbac"
)

// Provider wires HTTP handlers.
type Provider struct {
	Registry *RegistryHandler
	Admin    *AdminHandler
}

func NewProvider(service domain.Service, roles *rbac.Store, log zerolog.Logger) *Provider {
	return &Provider{
		Registry: NewRegistryHandler(service, log),
		Admin:    NewAdminHandler(service, roles, log),
	}
}
