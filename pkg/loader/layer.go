package loader

// Layer is one source of units and resources. Tables, code locations and
// whole scopes are layers, so scopes nest.
type Layer interface {
	// FindUnit returns ErrUnitNotFound (possibly wrapped) when the layer
	// does not define name.
	FindUnit(name string) (*Unit, error)
	FindResource(name string) (string, bool)
	FindResources(name string) ([]string, error)
}
