package registry

import "errors"

// Default policy values applied when no policy row exists yet.
const (
	DefaultSchemaVersion    = 1
	DefaultMaxSubComponents = 1200
)

// ErrAlreadyPaused is returned when pausing an already paused registry.
var ErrAlreadyPaused = errors.New("registry already paused")

// ErrNotPaused is returned when unpausing an active registry.
var ErrNotPaused = errors.New("registry not paused")

// Policy is the process-wide registry configuration. It is mutated only
// through role-gated setters and takes effect for the next call.
type Policy struct {
	// SchemaVersion is stamped into every new record at registration
	// time; existing records keep the version they were created under.
	SchemaVersion int `json:"schema_version"`
	// MaxSubComponents is an exclusive upper bound: a registration with
	// len(subComponents) >= MaxSubComponents is rejected when enforced.
	MaxSubComponents        int  `json:"max_sub_components"`
	EnforceMaxSubComponents bool `json:"enforce_max_sub_components"`
	RequireAuthorizedWriter bool `json:"require_authorized_writer"`
	Paused                  bool `json:"paused"`
}

// DefaultPolicy returns the policy a fresh registry starts with.
func DefaultPolicy() Policy {
	return Policy{
		SchemaVersion:           DefaultSchemaVersion,
		MaxSubComponents:        DefaultMaxSubComponents,
		EnforceMaxSubComponents: true,
		RequireAuthorizedWriter: false,
		Paused:                  false,
	}
}

// Pause transitions Active -> Paused.
func (p *Policy) Pause() error {
	if p.Paused {
		return ErrAlreadyPaused
	}
	p.Paused = true
	return nil
}

// Unpause transitions Paused -> Active.
func (p *Policy) Unpause() error {
	if !p.Paused {
		return ErrNotPaused
	}
	p.Paused = false
	return nil
}
