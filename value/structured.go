package value

// Property is a data property descriptor.
type Property struct {
	Value        any
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// Locked reports whether p can be neither redefined nor reassigned.
func (p Property) Locked() bool {
	return !p.Writable && !p.Configurable
}

// Structured is the accessor surface shared by structured values and their tracking wrappers.
//
// Get and Has follow the prototype chain. HasOwn, OwnKeys and OwnProperty only
// look at own properties. Reading an absent key yields nil.
type Structured interface {
	Get(k Key) any
	Has(k Key) bool
	HasOwn(k Key) bool
	OwnKeys() []Key
	OwnProperty(k Key) (Property, bool)
	Set(k Key, v any) bool
	Delete(k Key) bool
}

// Cloner is implemented by structured values that may hold locked properties.
type Cloner interface {
	// HasLockedProperty reports whether any own property is Locked.
	HasLockedProperty() bool
	// CloneConfigurable returns a copy whose own properties are all configurable.
	CloneConfigurable() Structured
}
