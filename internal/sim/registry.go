package sim

import (
	"fmt"

	"github.com/san-kum/mitosis/internal/scene"
)

// Registry is the ordered set of live objects. Removal compacts the order;
// ids are never reused.
type Registry struct {
	objects []*Object
	byID    map[int]*Object
	nextID  int
}

func NewRegistry() *Registry {
	return &Registry{
		objects: make([]*Object, 0),
		byID:    make(map[int]*Object),
	}
}

// Add appends o, assigning an id and a phase seed if it has none. An
// explicit id that is already live is rejected with ErrDuplicateID.
func (r *Registry) Add(o *Object) error {
	if _, ok := r.byID[o.ID]; ok && o.ID != 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateID, o.ID)
	}
	if o.ID == 0 {
		r.nextID++
		o.ID = r.nextID
	} else if o.ID > r.nextID {
		r.nextID = o.ID
	}
	if o.PhaseSeed == 0 {
		o.PhaseSeed = o.ID
	}
	r.objects = append(r.objects, o)
	r.byID[o.ID] = o
	return nil
}

// RemoveAt removes the object at index i and returns it, or nil when i is
// out of range.
func (r *Registry) RemoveAt(i int) *Object {
	if i < 0 || i >= len(r.objects) {
		return nil
	}
	o := r.objects[i]
	copy(r.objects[i:], r.objects[i+1:])
	r.objects[len(r.objects)-1] = nil
	r.objects = r.objects[:len(r.objects)-1]
	delete(r.byID, o.ID)
	return o
}

// IndexOf returns the index of the object owning m, or -1.
func (r *Registry) IndexOf(m *scene.Mesh) int {
	for i, o := range r.objects {
		if o.Mesh == m {
			return i
		}
	}
	return -1
}

func (r *Registry) At(i int) *Object {
	if i < 0 || i >= len(r.objects) {
		return nil
	}
	return r.objects[i]
}

func (r *Registry) Get(id int) *Object { return r.byID[id] }

// All returns the live objects in order. The slice must not be modified.
func (r *Registry) All() []*Object { return r.objects }
func (r *Registry) Len() int       { return len(r.objects) }

func (r *Registry) Meshes() []*scene.Mesh {
	meshes := make([]*scene.Mesh, len(r.objects))
	for i, o := range r.objects {
		meshes[i] = o.Mesh
	}
	return meshes
}
