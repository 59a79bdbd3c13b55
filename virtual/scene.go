package virtual

import (
	"iter"

	"github.com/cargorun/playmode/entity"
	"github.com/cargorun/playmode/game"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Scene keeps track of all instances placed in a level, in the order they were added.
type Scene struct {
	log *logrus.Logger

	instances *orderedmap.OrderedMap[entity.InstanceID, entity.Instance]
	nextID    entity.InstanceID
}

// NewScene creates a new, empty scene.
func NewScene(log *logrus.Logger) *Scene {
	return &Scene{
		log:       log,
		instances: orderedmap.NewOrderedMap[entity.InstanceID, entity.Instance](),
	}
}

// Add adds a new instance to the scene.
func (s *Scene) Add(name string, shape entity.Shape, t entity.Transform) entity.Instance {
	s.nextID++
	inst := entity.Instance{ID: s.nextID, Name: name, Shape: shape, Transform: t}
	s.instances.Set(inst.ID, inst)
	return inst
}

// Find returns the first instance added with the name passed.
func (s *Scene) Find(name string) (entity.Instance, bool) {
	for el := s.instances.Front(); el != nil; el = el.Next() {
		if el.Value.Name == name {
			return el.Value, true
		}
	}
	return entity.Instance{}, false
}

// Instantiate adds a new instance drawn the same way as the prototype passed.
func (s *Scene) Instantiate(proto entity.Instance, t entity.Transform, name string) entity.Instance {
	return s.Add(name, proto.Shape, t)
}

// Place moves an instance to the transform passed.
func (s *Scene) Place(id entity.InstanceID, t entity.Transform) {
	inst, ok := s.instances.Get(id)
	if !ok {
		s.log.Errorf("failed to place unknown instance %d", id)
		return
	}
	inst.Transform = t
	s.instances.Set(id, inst)
}

// Hide parks an instance below the level at zero scale.
func (s *Scene) Hide(id entity.InstanceID) {
	inst, ok := s.instances.Get(id)
	if !ok {
		s.log.Errorf("failed to hide unknown instance %d", id)
		return
	}
	s.Place(id, inst.Transform.Hidden(game.HiddenPosition))
}

// Instance returns the instance with the ID passed.
func (s *Scene) Instance(id entity.InstanceID) (entity.Instance, bool) {
	return s.instances.Get(id)
}

// Visible iterates over all instances that have not been hidden, in the order they were added.
func (s *Scene) Visible() iter.Seq[entity.Instance] {
	return func(yield func(entity.Instance) bool) {
		for el := s.instances.Front(); el != nil; el = el.Next() {
			if IsHidden(el.Value) {
				continue
			}
			if !yield(el.Value) {
				return
			}
		}
	}
}

// Len returns the amount of instances ever added to the scene, including hidden ones.
func (s *Scene) Len() int {
	return s.instances.Len()
}

// IsHidden returns true if an instance was hidden.
func IsHidden(inst entity.Instance) bool {
	return inst.Transform.Scale == (mgl32.Vec3{}) && inst.Transform.Position == game.HiddenPosition
}
