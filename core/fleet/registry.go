package fleet

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/yielddrive/fleetyield/core/model"
)

// ErrUnknownVehicle is returned when an id is not in the registry.
var ErrUnknownVehicle = errors.New("unknown vehicle")

// Filter narrows List results.
type Filter struct {
	// Mode keeps only vehicles currently in this mode.
	Mode model.VehicleMode
	// Allows keeps only vehicles permitted to operate in this mode.
	Allows model.VehicleMode
}

// Registry holds the fleet's latest snapshots. Snapshots are read-only
// inputs for the optimizer; the registry never mutates them.
type Registry interface {
	Get(id string) (model.VehicleSnapshot, error)
	Put(v model.VehicleSnapshot) error
	List(f Filter) []model.VehicleSnapshot
}

// MemoryRegistry is an in-memory Registry safe for concurrent use.
type MemoryRegistry struct {
	mu   sync.RWMutex
	data map[string]model.VehicleSnapshot
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{data: map[string]model.VehicleSnapshot{}}
}

func (r *MemoryRegistry) Get(id string) (model.VehicleSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[id]
	if !ok {
		return model.VehicleSnapshot{}, fmt.Errorf("%w: %s", ErrUnknownVehicle, id)
	}
	return v, nil
}

func (r *MemoryRegistry) Put(v model.VehicleSnapshot) error {
	if err := v.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.data[v.ID] = v
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) List(f Filter) []model.VehicleSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]model.VehicleSnapshot, 0, len(r.data))
	for _, v := range r.data {
		if f.Mode != "" && v.Mode != f.Mode {
			continue
		}
		if f.Allows != "" && !v.Allows(f.Allows) {
			continue
		}
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}
