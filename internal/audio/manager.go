package audio

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// Preference is the order backends are tried in when none is named.
var Preference = []string{"pulse", "command", NoopName}

// Manager handles audio backend selection
type Manager struct {
	backend Backend
}

// NewManager creates a manager with the named backend.
// If backendName is empty, it tries backends in order of preference
// and falls back to noop when none can reach a device.
func NewManager(backendName string) (*Manager, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return newManager(registered, backendName)
}

func newManager(reg factories, backendName string) (*Manager, error) {
	if backendName != "" {
		backend, err := reg.create(backendName)
		if err != nil {
			return nil, errors.Wrap(err, "creating audio backend")
		}
		if !backend.IsEnabled() {
			zlog.Warn().Str("backend", backendName).Msg("Audio backend has no output device, playback will fail")
		}
		return &Manager{backend: backend}, nil
	}

	var backend Backend
	for _, name := range Preference {
		b, err := reg.create(name)
		if err != nil {
			continue
		}
		if b.IsEnabled() {
			backend = b
			break
		}
	}

	if backend == nil {
		backend = NewNoopBackend()
	}
	zlog.Debug().Str("backend", backend.Name()).Msg("Selected audio backend")

	return &Manager{backend: backend}, nil
}

// Backend returns the current backend
func (m *Manager) Backend() Backend {
	return m.backend
}

// Name returns the name of the current backend
func (m *Manager) Name() string {
	return m.backend.Name()
}

// IsEnabled returns whether the current backend can produce sound
func (m *Manager) IsEnabled() bool {
	return m.backend.IsEnabled()
}
