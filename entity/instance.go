package entity

// InstanceID identifies a visual instance owned by a scene.
type InstanceID uint32

// Instance is a named visual instance in a scene. Shape describes how the instance is drawn and is copied as
// is when an instance is cloned from a prototype.
type Instance struct {
	ID        InstanceID
	Name      string
	Shape     Shape
	Transform Transform
}

// Shape is the drawing descriptor of an instance.
type Shape struct {
	// Mesh is the name of the mesh drawn for the instance.
	Mesh string
	// Colour is an RGBA colour used when the instance is drawn flat.
	Colour [4]uint8
	// Radius is the radius of the instance's footprint when drawn from above.
	Radius float32
}
