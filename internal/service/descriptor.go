package service

import "fmt"

// Descriptor is the capability set a dictionary service exposes. One
// singleton descriptor per service is registered at startup; after
// registration a descriptor is never mutated except for its assigned
// list index.
type Descriptor interface {
	// Name is the stable short service name, unique in the registry.
	Name() string
	// Summary is the human-readable service description.
	Summary() string
	// ConfSpec maps option names to their default values. The hash of
	// the resolved option values participates in the lookup cache key.
	ConfSpec() map[string]any
	// NewTask builds a lookup task for one language pair and text.
	NewTask(langFrom, langTo, text string) *Task
	// Languages returns the service's language catalog.
	Languages() Catalog

	// ID is the dense zero-based index assigned by the registry.
	ID() int
	// SetID is called by the registry when re-numbering descriptors.
	SetID(id int)
	// Order is the stable sort key used to arrange the services list.
	Order() int
}

// Base provides descriptor identity bookkeeping and loud defaults for
// the capabilities a service must implement itself. A service embeds
// *Base and overrides every capability it supports; accessing a missing
// one is a programmer error and panics at first use.
type Base struct {
	id    int
	order int
}

// NewBase creates descriptor bookkeeping with the given sort key.
func NewBase(order int) *Base {
	return &Base{order: order}
}

func (b *Base) ID() int      { return b.id }
func (b *Base) SetID(id int) { b.id = id }
func (b *Base) Order() int   { return b.order }

func (b *Base) Name() string {
	panic(notImplemented("Name"))
}

func (b *Base) Summary() string {
	panic(notImplemented("Summary"))
}

func (b *Base) ConfSpec() map[string]any {
	panic(notImplemented("ConfSpec"))
}

func (b *Base) NewTask(langFrom, langTo, text string) *Task {
	panic(notImplemented("NewTask"))
}

func (b *Base) Languages() Catalog {
	panic(notImplemented("Languages"))
}

func notImplemented(capability string) string {
	return fmt.Sprintf("service: capability %s not implemented", capability)
}

// Options resolves configured option values for a service. The
// configuration layer implements it; descriptors use it to read their
// own settings at task-creation time.
type Options interface {
	ServiceOption(service, key string) any
	ServiceString(service, key string) string
	ServiceBool(service, key string) bool
}
