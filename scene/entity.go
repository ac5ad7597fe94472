package scene

import (
	"github.com/google/uuid"

	"github.com/fourslice/engine/math4"
	"github.com/fourslice/engine/physics"
)

// Material is the per-entity render color/opacity the slicing kernel
// interpolates across triangle vertices.
type Material struct {
	R, G, B, A float32
}

// DirtyFlag is a bit in Entity.Dirty; the GPU bridge consults these to
// decide which entities need a fresh buffer upload this frame.
type DirtyFlag uint8

const (
	DirtyTransform DirtyFlag = 1 << iota
	DirtyMesh
	DirtyMaterial
)

// AllDirty marks every flag; used when an entity is first inserted so its
// full geometry and material upload on the next GPU sync.
const AllDirty = DirtyTransform | DirtyMesh | DirtyMaterial

// Entity ties a shape, material, and 4D transform together, with an
// optional backing rigid body. Shape may be shared across many entities
// (single underlying geometry, e.g. many instances of the same tesseract)
// or uniquely owned.
type Entity struct {
	Transform math4.Transform4D
	Shape     math4.ConvexShape4D
	Material  Material

	BodyKey *physics.BodyKey

	Dirty DirtyFlag
	Name  string
	Tags  []string
}

// NewEntity constructs an entity at the identity transform with every
// dirty flag set, so its first GPU sync uploads everything. Its Name
// starts as a generated debug label.
func NewEntity(shape math4.ConvexShape4D, material Material) Entity {
	return Entity{
		Transform: math4.IdentityTransform(),
		Shape:     shape,
		Material:  material,
		Dirty:     AllDirty,
		Name:      "entity-" + uuid.NewString(),
	}
}

// SetTransform replaces the entity's transform and marks it Transform-dirty.
func (e *Entity) SetTransform(t math4.Transform4D) {
	e.Transform = t
	e.Dirty |= DirtyTransform
}

// SetMaterial replaces the entity's material and marks it Material-dirty.
func (e *Entity) SetMaterial(m Material) {
	e.Material = m
	e.Dirty |= DirtyMaterial
}

// SetShape replaces the entity's shape and marks it Mesh-dirty.
func (e *Entity) SetShape(s math4.ConvexShape4D) {
	e.Shape = s
	e.Dirty |= DirtyMesh
}

func (e Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (e *Entity) clearDirty() {
	e.Dirty = 0
}
