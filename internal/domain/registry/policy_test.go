package registry_test

import (
	"errors"
	"testing"

	registry "media-registry/internal/domain/registry"
)

func TestDefaultPolicy(t *testing.T) {
	p := registry.DefaultPolicy()

	if p.SchemaVersion != registry.DefaultSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", p.SchemaVersion, registry.DefaultSchemaVersion)
	}
	if p.MaxSubComponents != registry.DefaultMaxSubComponents {
		t.Errorf("MaxSubComponents = %d, want %d", p.MaxSubComponents, registry.DefaultMaxSubComponents)
	}
	if !p.EnforceMaxSubComponents {
		t.Error("EnforceMaxSubComponents should default to true")
	}
	if p.RequireAuthorizedWriter {
		t.Error("RequireAuthorizedWriter should default to false")
	}
	if p.Paused {
		t.Error("a fresh registry must not start paused")
	}
}

func TestPolicy_PauseTransitions(t *testing.T) {
	p := registry.DefaultPolicy()

	if err := p.Pause(); err != nil {
		t.Fatalf("Pause() on active registry: %v", err)
	}
	if !p.Paused {
		t.Fatal("Pause() did not set Paused")
	}
	if err := p.Pause(); !errors.Is(err, registry.ErrAlreadyPaused) {
		t.Errorf("second Pause() = %v, want ErrAlreadyPaused", err)
	}

	if err := p.Unpause(); err != nil {
		t.Fatalf("Unpause() on paused registry: %v", err)
	}
	if p.Paused {
		t.Fatal("Unpause() did not clear Paused")
	}
	if err := p.Unpause(); !errors.Is(err, registry.ErrNotPaused) {
		t.Errorf("second Unpause() = %v, want ErrNotPaused", err)
	}
}

func TestOriginKind_IsValid(t *testing.T) {
	tests := []struct {
		kind  registry.OriginKind
		valid bool
	}{
		{registry.OriginKindPrimary, true},
		{registry.OriginKindSecondary, true},
		{"", false},
		{"tertiary", false},
		{"PRIMARY", false},
	}

	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.valid {
			t.Errorf("OriginKind(%q).IsValid() = %v, want %v", tt.kind, got, tt.valid)
		}
	}
}

func TestOriginLink_Verifiable(t *testing.T) {
	tests := []struct {
		name string
		link registry.OriginLink
		want bool
	}{
		{"token and contract", registry.OriginLink{TokenID: "1", Contract: "0xabc"}, true},
		{"missing token", registry.OriginLink{Contract: "0xabc"}, false},
		{"missing contract", registry.OriginLink{TokenID: "1"}, false},
		{"empty", registry.OriginLink{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.link.Verifiable(); got != tt.want {
				t.Errorf("Verifiable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	base := registry.NewError(registry.KindDuplicatePrimary, "origin %s taken", "1/0xabc/7")

	if !registry.IsKind(base, registry.KindDuplicatePrimary) {
		t.Error("IsKind should match the error's own kind")
	}
	if registry.IsKind(base, registry.KindNotFound) {
		t.Error("IsKind should not match a different kind")
	}
	if registry.KindOf(errors.New("plain")) != "" {
		t.Error("KindOf on a non-registry error should be empty")
	}

	wrapped := registry.NewError(registry.KindNotFound, "lookup failed").WithCause(base)
	if !errors.Is(wrapped, wrapped) || wrapped.Unwrap() != base {
		t.Error("WithCause should chain the underlying error")
	}
	if registry.KindOf(wrapped) != registry.KindNotFound {
		t.Errorf("KindOf(wrapped) = %q, want outer kind", registry.KindOf(wrapped))
	}
}
