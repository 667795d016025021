package dejson

// Base implements Visitor by rejecting every shape through its fault sink.
// Concrete visitors embed Base and override only the shapes they accept.
type Base struct {
	Faults Sink
}

func (b Base) Null() error {
	return b.Faults.Unexpected("null")
}

func (b Base) Bool(value bool) error {
	return b.Faults.Unexpected("boolean")
}

func (b Base) Int(value int64) error {
	return b.Faults.Unexpected("integer")
}

func (b Base) Uint(value uint64) error {
	return b.Faults.Unexpected("integer")
}

func (b Base) Float(value float64) error {
	return b.Faults.Unexpected("float")
}

func (b Base) String(value string) error {
	return b.Faults.Unexpected("string")
}

func (b Base) Seq() (Seq, error) {
	return nil, b.Faults.Unexpected("sequence")
}

func (b Base) Map() (Map, error) {
	return nil, b.Faults.Unexpected("map")
}

// Ignore returns a Visitor that accepts and discards any shape, composites
// included. Map builders hand it out for tolerated unknown keys.
func Ignore() Visitor {
	return ignore{}
}

type ignore struct{}

func (ignore) Null() error                   { return nil }
func (ignore) Bool(bool) error               { return nil }
func (ignore) Int(int64) error               { return nil }
func (ignore) Uint(uint64) error             { return nil }
func (ignore) Float(float64) error           { return nil }
func (ignore) String(string) error           { return nil }
func (i ignore) Seq() (Seq, error)           { return i, nil }
func (i ignore) Map() (Map, error)           { return i, nil }
func (i ignore) Element() (Visitor, error)   { return i, nil }
func (i ignore) Key(string) (Visitor, error) { return i, nil }
func (ignore) Finish() error                 { return nil }
