package tensor

import (
	"errors"
	"fmt"
	"sync"
)

// Backend resolution errors.
var (
	// ErrNoBackend is returned when no backend is registered for a device.
	ErrNoBackend = errors.New("tensor: no backend registered")

	// ErrDeviceMismatch is returned when tensors passed together live on
	// different devices.
	ErrDeviceMismatch = errors.New("tensor: tensors on different devices")
)

var registry = struct {
	sync.RWMutex
	factories map[Device]func() Backend
}{factories: make(map[Device]func() Backend)}

// RegisterBackend makes a backend available for tensors on device.
// A later registration for the same device replaces the earlier one.
func RegisterBackend(device Device, factory func() Backend) {
	if factory == nil {
		panic("tensor: RegisterBackend factory is nil")
	}
	registry.Lock()
	defer registry.Unlock()
	registry.factories[device] = factory
}

// ResolveBackend returns the backend registered for the device the given
// tensors live on. All tensors must share one device.
func ResolveBackend(tensors ...*RawTensor) (Backend, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("%w: no tensors given", ErrNoBackend)
	}

	device := tensors[0].Device()
	for _, t := range tensors[1:] {
		if t.Device() != device {
			return nil, fmt.Errorf("%w: %s and %s", ErrDeviceMismatch, device, t.Device())
		}
	}

	registry.RLock()
	factory, ok := registry.factories[device]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: device %s", ErrNoBackend, device)
	}
	return factory(), nil
}
