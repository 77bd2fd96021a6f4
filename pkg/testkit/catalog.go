package testkit

import (
	"reflect"
	"sync"
)

// Type is a declared type together with its tags.
type Type struct {
	// Name is the simple name of the type, used as the test group.
	Name string
	// Module is the package path declaring the type.
	Module string
	// Reflect is the pointer type whose method set holds the tagged methods.
	Reflect reflect.Type

	tags []Tag
}

// Tags returns the type's tags in declaration order.
func (t *Type) Tags() []Tag {
	return append([]Tag(nil), t.tags...)
}

// Methods returns the names of tagged methods in order of first appearance.
func (t *Type) Methods() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tag := range t.tags {
		if tag.Method == "" || seen[tag.Method] {
			continue
		}
		seen[tag.Method] = true
		names = append(names, tag.Method)
	}
	return names
}

// MethodTags returns the tags attached to the named method.
func (t *Type) MethodTags(method string) []Tag {
	var tags []Tag
	for _, tag := range t.tags {
		if tag.Method == method {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MethodsWith returns the names of methods carrying a tag of kind k.
func (t *Type) MethodsWith(k Kind) []string {
	var names []string
	for _, tag := range t.tags {
		if tag.Kind == k {
			names = append(names, tag.Method)
		}
	}
	return names
}

// Statics returns every static member declared under name.
func (t *Type) Statics(name string) []*Static {
	var statics []*Static
	for _, tag := range t.tags {
		if tag.Kind == KindStatic && tag.Static.Name == name {
			statics = append(statics, tag.Static)
		}
	}
	return statics
}

// Constructor returns the constructor declared for the type, if any.
func (t *Type) Constructor() (any, bool) {
	for _, tag := range t.tags {
		if tag.Kind == KindConstructor {
			return tag.Ctor, true
		}
	}
	return nil, false
}

// Module groups the types declared by one package.
type Module struct {
	Name  string
	Types []*Type
}

// Catalog holds declared types grouped by module, in declaration order.
type Catalog struct {
	mu      sync.Mutex
	modules []*Module
	byName  map[string]*Module
	byType  map[reflect.Type]*Type
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byName: make(map[string]*Module),
		byType: make(map[reflect.Type]*Type),
	}
}

// Default is the catalog filled by the package-level Declare.
var Default = NewCatalog()

// Declare adds tags for the type of proto to the default catalog.
func Declare(proto any, tags ...Tag) *Type {
	return Default.Declare(proto, tags...)
}

// Declare adds tags for the type of proto. proto may be a value or a pointer,
// typically a typed nil such as (*MyTests)(nil). Declaring the same type again
// appends to its tags.
func (c *Catalog) Declare(proto any, tags ...Tag) *Type {
	if proto == nil {
		panic("testkit: Declare called with nil prototype")
	}
	ptr := pointerType(reflect.TypeOf(proto))

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.byType[ptr]; ok {
		t.tags = append(t.tags, tags...)
		return t
	}

	elem := ptr.Elem()
	t := &Type{
		Name:    elem.Name(),
		Module:  elem.PkgPath(),
		Reflect: ptr,
		tags:    append([]Tag(nil), tags...),
	}
	m, ok := c.byName[t.Module]
	if !ok {
		m = &Module{Name: t.Module}
		c.byName[t.Module] = m
		c.modules = append(c.modules, m)
	}
	m.Types = append(m.Types, t)
	c.byType[ptr] = t
	return t
}

// Modules returns the declared modules in declaration order.
func (c *Catalog) Modules() []*Module {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Module(nil), c.modules...)
}

// Lookup returns the declared type for the pointer type t.
func (c *Catalog) Lookup(t reflect.Type) (*Type, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	typ, ok := c.byType[pointerType(t)]
	return typ, ok
}
