package testkit

// StaticKind says how a static member produces its value.
type StaticKind int

const (
	// StaticFieldKind holds a value directly.
	StaticFieldKind StaticKind = iota
	// StaticPropertyKind is a getter taking no arguments.
	StaticPropertyKind
	// StaticMethodKind is a function that may take arguments.
	StaticMethodKind
)

func (k StaticKind) String() string {
	switch k {
	case StaticFieldKind:
		return "field"
	case StaticPropertyKind:
		return "property"
	default:
		return "method"
	}
}

// Static is a type-level member that can feed a TestCaseSource.
type Static struct {
	Name  string
	Kind  StaticKind
	Value any
}

// StaticField declares a static field holding a sequence of argument rows.
func StaticField(name string, value any) Tag {
	return Tag{Kind: KindStatic, Static: &Static{Name: name, Kind: StaticFieldKind, Value: value}}
}

// StaticProperty declares a static property. getter must take no arguments
// and return the rows, optionally followed by an error.
func StaticProperty(name string, getter any) Tag {
	return Tag{Kind: KindStatic, Static: &Static{Name: name, Kind: StaticPropertyKind, Value: getter}}
}

// StaticMethod declares a static method returning rows, optionally followed
// by an error. Its parameters are filled from TestCaseSource params.
func StaticMethod(name string, fn any) Tag {
	return Tag{Kind: KindStatic, Static: &Static{Name: name, Kind: StaticMethodKind, Value: fn}}
}
