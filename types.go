package dejson

// Visitor receives exactly one JSON value shape. The parser calls the single
// method matching the shape it encounters; a Visitor for a given target type
// overrides only the shapes that type accepts and leaves the rest to Base,
// which rejects them through the bound fault capability.
//
// Integer literals are split the way the grammar splits them: Int receives
// literals with a leading minus sign, Uint receives nonnegative literals, and
// Float receives literals carrying a fraction or exponent (plus 64-bit
// integer overflow fallbacks). The three callbacks cover JSON's number
// grammar losslessly without parsing a literal twice.
type Visitor interface {
	Null() error
	Bool(value bool) error
	Int(value int64) error
	Uint(value uint64) error
	Float(value float64) error
	String(value string) error
	Seq() (Seq, error)
	Map() (Map, error)
}

// Seq hands out one Visitor per sequence element. Finish is called after the
// closing bracket so the builder can commit the collected elements.
type Seq interface {
	Element() (Visitor, error)
	Finish() error
}

// Map hands out one Visitor per object member, keyed by the decoded member
// name. Finish is called after the closing brace so the builder can verify
// structural completeness (e.g. required fields).
type Map interface {
	Key(name string) (Visitor, error)
	Finish() error
}

// Faults is the caller-supplied error capability. The engine mints every
// error it reports through one of the three constructors and owns no error
// type of its own; the concrete E decides what "invalid" looks like to the
// caller.
type Faults[E error] interface {
	// Unexpected reports a shape or domain mismatch for the named shape.
	Unexpected(description string) E
	// FormatError reports a lexical or structural syntax violation at the
	// 1-indexed position of the offending character.
	FormatError(line, column int, message string) E
	// MissingField reports a structurally absent required field.
	MissingField(field string) E
}

// Sink is the engine-internal, non-generic view of a Faults capability.
// Visitors are interface values, so the generic parameter is erased here;
// every error flowing out of a Sink has the dynamic type of the capability
// it adapts.
type Sink interface {
	Unexpected(description string) error
	FormatError(line, column int, message string) error
	MissingField(field string) error
}

// Deserializer binds a fresh Visitor to an output slot. Implementations are
// registered per target type; slot is a pointer to that type.
type Deserializer interface {
	Begin(slot any, faults Sink) (Visitor, error)
}

// Deserializable lets a type bind its own Visitor with itself as the output
// slot. Implement it on *T to route domain validation through the same
// pipeline as syntax errors.
type Deserializable interface {
	Begin(faults Sink) Visitor
}
