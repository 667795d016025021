package dejson

import (
	"math"
	"unsafe"
)

// Place owns an output slot of type T for the duration of one Visitor
// invocation. It carries the default rejecting behavior via Base; typed
// wrappers around it override the shapes T accepts and write the slot
// exactly once.
type Place[T any] struct {
	Base
	Out *T
}

// PlaceOf binds an output slot to a fault sink.
func PlaceOf[T any](out *T, faults Sink) *Place[T] {
	return &Place[T]{Base: Base{Faults: faults}, Out: out}
}

type boolPlace struct {
	*Place[bool]
}

func (v boolPlace) Bool(value bool) error {
	*v.Out = value
	return nil
}

type stringPlace struct {
	*Place[string]
}

func (v stringPlace) String(value string) error {
	*v.Out = value
	return nil
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type floating interface {
	~float32 | ~float64
}

func bitsOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

type signedPlace[T signed] struct {
	*Place[T]
}

func (v signedPlace[T]) Int(value int64) error {
	if min := int64(-1) << (bitsOf[T]() - 1); value < min {
		return v.Faults.Unexpected("integer out of range")
	}
	*v.Out = T(value)
	return nil
}

func (v signedPlace[T]) Uint(value uint64) error {
	if max := ^uint64(0) >> (64 - bitsOf[T]() + 1); value > max {
		return v.Faults.Unexpected("integer out of range")
	}
	*v.Out = T(value)
	return nil
}

type unsignedPlace[T unsigned] struct {
	*Place[T]
}

func (v unsignedPlace[T]) Uint(value uint64) error {
	if max := ^uint64(0) >> (64 - bitsOf[T]()); value > max {
		return v.Faults.Unexpected("integer out of range")
	}
	*v.Out = T(value)
	return nil
}

type floatPlace[T floating] struct {
	*Place[T]
}

func (v floatPlace[T]) Int(value int64) error {
	*v.Out = T(value)
	return nil
}

func (v floatPlace[T]) Uint(value uint64) error {
	*v.Out = T(value)
	return nil
}

func (v floatPlace[T]) Float(value float64) error {
	// Narrowing to float32 must not silently land on ±Inf.
	if bitsOf[T]() == 32 && math.Abs(value) > math.MaxFloat32 {
		return v.Faults.Unexpected("float out of range")
	}
	*v.Out = T(value)
	return nil
}

// anyPlace decodes into an untyped slot: null, bool, int64 (uint64 past
// math.MaxInt64), float64, string, []any and map[string]any.
type anyPlace struct {
	*Place[any]
}

func (v anyPlace) Null() error {
	*v.Out = nil
	return nil
}

func (v anyPlace) Bool(value bool) error {
	*v.Out = value
	return nil
}

func (v anyPlace) Int(value int64) error {
	*v.Out = value
	return nil
}

func (v anyPlace) Uint(value uint64) error {
	if value <= math.MaxInt64 {
		*v.Out = int64(value)
	} else {
		*v.Out = value
	}
	return nil
}

func (v anyPlace) Float(value float64) error {
	*v.Out = value
	return nil
}

func (v anyPlace) String(value string) error {
	*v.Out = value
	return nil
}

func (v anyPlace) Seq() (Seq, error) {
	s := &anySeq{out: v.Out}
	s.builder = sliceBuilder[any]{out: &s.values, faults: v.Faults}
	return s, nil
}

func (v anyPlace) Map() (Map, error) {
	m := &anyMap{out: v.Out}
	m.builder = mapBuilder[any]{out: &m.values, faults: v.Faults}
	return m, nil
}

type anySeq struct {
	builder sliceBuilder[any]
	values  []any
	out     *any
}

func (s *anySeq) Element() (Visitor, error) {
	return s.builder.Element()
}

func (s *anySeq) Finish() error {
	if err := s.builder.Finish(); err != nil {
		return err
	}
	*s.out = s.values
	return nil
}

type anyMap struct {
	builder mapBuilder[any]
	values  map[string]any
	out     *any
}

func (m *anyMap) Key(name string) (Visitor, error) {
	return m.builder.Key(name)
}

func (m *anyMap) Finish() error {
	if err := m.builder.Finish(); err != nil {
		return err
	}
	*m.out = m.values
	return nil
}
