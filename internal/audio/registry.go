package audio

import (
	"maps"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrBackendNotRegistered is returned when no factory exists for a backend name.
var ErrBackendNotRegistered = errors.New("audio backend not registered")

// factories maps backend names to constructors.
type factories map[string]BackendFactory

func (f factories) create(name string) (Backend, error) {
	factory, ok := f[name]
	if !ok {
		return nil, errors.Wrapf(ErrBackendNotRegistered, "backend %s", name)
	}
	return factory(), nil
}

// Backends register themselves from init, so the table is only written
// before main runs.
var (
	registryMu sync.RWMutex
	registered = factories{}
)

// Register makes a backend available under name. Names are unique.
func Register(name string, factory BackendFactory) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registered[name]; ok {
		return errors.Newf("backend %s already registered", name)
	}
	registered[name] = factory
	return nil
}

// CreateBackend instantiates the backend registered under name.
func CreateBackend(name string) (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registered.create(name)
}

// ListBackends returns the registered backend names, sorted.
func ListBackends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registered))
}
