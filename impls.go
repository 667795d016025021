package dejson

import (
	"fmt"
	"reflect"
)

// VisitorOf binds a Visitor to the supplied output slot. The slot must be a
// non-nil pointer; dispatch order is custom Deserializable, primitive and
// common-container fast paths, registered Deserializer, then the
// reflection-general pointer/slice/map builders. Containers never interpret
// shape themselves; they wire sub-slots and delegate back here.
func VisitorOf(slot any, faults Sink) (Visitor, error) {
	if d, ok := slot.(Deserializable); ok {
		return d.Begin(faults), nil
	}
	switch p := slot.(type) {
	case *bool:
		return boolPlace{PlaceOf(p, faults)}, nil
	case *string:
		return stringPlace{PlaceOf(p, faults)}, nil
	case *int:
		return signedPlace[int]{PlaceOf(p, faults)}, nil
	case *int8:
		return signedPlace[int8]{PlaceOf(p, faults)}, nil
	case *int16:
		return signedPlace[int16]{PlaceOf(p, faults)}, nil
	case *int32:
		return signedPlace[int32]{PlaceOf(p, faults)}, nil
	case *int64:
		return signedPlace[int64]{PlaceOf(p, faults)}, nil
	case *uint:
		return unsignedPlace[uint]{PlaceOf(p, faults)}, nil
	case *uint8:
		return unsignedPlace[uint8]{PlaceOf(p, faults)}, nil
	case *uint16:
		return unsignedPlace[uint16]{PlaceOf(p, faults)}, nil
	case *uint32:
		return unsignedPlace[uint32]{PlaceOf(p, faults)}, nil
	case *uint64:
		return unsignedPlace[uint64]{PlaceOf(p, faults)}, nil
	case *float32:
		return floatPlace[float32]{PlaceOf(p, faults)}, nil
	case *float64:
		return floatPlace[float64]{PlaceOf(p, faults)}, nil
	case *any:
		return anyPlace{PlaceOf(p, faults)}, nil
	case *[]string:
		return slicePlace[string]{PlaceOf(p, faults)}, nil
	case *[]int:
		return slicePlace[int]{PlaceOf(p, faults)}, nil
	case *[]int64:
		return slicePlace[int64]{PlaceOf(p, faults)}, nil
	case *[]float64:
		return slicePlace[float64]{PlaceOf(p, faults)}, nil
	case *[]bool:
		return slicePlace[bool]{PlaceOf(p, faults)}, nil
	case *[]any:
		return slicePlace[any]{PlaceOf(p, faults)}, nil
	case *map[string]string:
		return mapPlace[string]{PlaceOf(p, faults)}, nil
	case *map[string]any:
		return mapPlace[any]{PlaceOf(p, faults)}, nil
	}
	rt := reflect.TypeOf(slot)
	if rt == nil || rt.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("dejson: slot must be a non-nil pointer, got %T", slot)
	}
	rv := reflect.ValueOf(slot)
	if rv.IsNil() {
		return nil, fmt.Errorf("dejson: nil %s slot", rt)
	}
	if d, ok := RegisteredDeserializer(rt.Elem()); ok {
		return d.Begin(slot, faults)
	}
	target := rv.Elem()
	switch rt.Elem().Kind() {
	case reflect.Ptr:
		return &optionalPlace{faults: faults, out: target}, nil
	case reflect.Slice:
		return &reflectSlicePlace{Base: Base{Faults: faults}, out: target}, nil
	case reflect.Map:
		if rt.Elem().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("dejson: unsupported map key type %s", rt.Elem().Key())
		}
		return &reflectMapPlace{Base: Base{Faults: faults}, out: target}, nil
	}
	return nil, fmt.Errorf("dejson: unsupported destination type %s", rt.Elem())
}

type slicePlace[T any] struct {
	*Place[[]T]
}

func (v slicePlace[T]) Null() error {
	*v.Out = nil
	return nil
}

func (v slicePlace[T]) Seq() (Seq, error) {
	return &sliceBuilder[T]{out: v.Out, faults: v.Faults}, nil
}

// sliceBuilder collects elements into a staging slice and commits it on
// Finish. The pending element is shifted in once the parser asks for the
// next slot, so a failed element never lands in the output.
type sliceBuilder[T any] struct {
	faults  Sink
	out     *[]T
	values  []T
	element T
	started bool
}

func (b *sliceBuilder[T]) Element() (Visitor, error) {
	if b.started {
		b.shift()
	}
	b.started = true
	return VisitorOf(&b.element, b.faults)
}

func (b *sliceBuilder[T]) shift() {
	b.values = append(b.values, b.element)
	var zero T
	b.element = zero
}

func (b *sliceBuilder[T]) Finish() error {
	if b.started {
		b.shift()
	}
	if b.values == nil {
		b.values = make([]T, 0)
	}
	*b.out = b.values
	return nil
}

type mapPlace[V any] struct {
	*Place[map[string]V]
}

func (v mapPlace[V]) Null() error {
	*v.Out = nil
	return nil
}

func (v mapPlace[V]) Map() (Map, error) {
	return &mapBuilder[V]{out: v.Out, faults: v.Faults}, nil
}

type mapBuilder[V any] struct {
	faults  Sink
	out     *map[string]V
	values  map[string]V
	key     string
	value   V
	started bool
}

func (b *mapBuilder[V]) Key(name string) (Visitor, error) {
	if b.started {
		b.shift()
	}
	b.started = true
	b.key = name
	return VisitorOf(&b.value, b.faults)
}

func (b *mapBuilder[V]) shift() {
	if b.values == nil {
		b.values = make(map[string]V)
	}
	b.values[b.key] = b.value
	var zero V
	b.value = zero
}

func (b *mapBuilder[V]) Finish() error {
	if b.started {
		b.shift()
	}
	if b.values == nil {
		b.values = make(map[string]V)
	}
	*b.out = b.values
	return nil
}

// optionalPlace decodes into a pointer slot: JSON null leaves the pointer
// nil, any other shape allocates the element, delegates the same shape to
// the element's Visitor and stores the pointer on success.
type optionalPlace struct {
	faults Sink
	out    reflect.Value
}

func (v *optionalPlace) begin() (Visitor, reflect.Value, error) {
	elem := reflect.New(v.out.Type().Elem())
	inner, err := VisitorOf(elem.Interface(), v.faults)
	return inner, elem, err
}

func (v *optionalPlace) forward(visit func(Visitor) error) error {
	inner, elem, err := v.begin()
	if err != nil {
		return err
	}
	if err := visit(inner); err != nil {
		return err
	}
	v.out.Set(elem)
	return nil
}

func (v *optionalPlace) Null() error {
	v.out.Set(reflect.Zero(v.out.Type()))
	return nil
}

func (v *optionalPlace) Bool(value bool) error {
	return v.forward(func(inner Visitor) error { return inner.Bool(value) })
}

func (v *optionalPlace) Int(value int64) error {
	return v.forward(func(inner Visitor) error { return inner.Int(value) })
}

func (v *optionalPlace) Uint(value uint64) error {
	return v.forward(func(inner Visitor) error { return inner.Uint(value) })
}

func (v *optionalPlace) Float(value float64) error {
	return v.forward(func(inner Visitor) error { return inner.Float(value) })
}

func (v *optionalPlace) String(value string) error {
	return v.forward(func(inner Visitor) error { return inner.String(value) })
}

func (v *optionalPlace) Seq() (Seq, error) {
	inner, elem, err := v.begin()
	if err != nil {
		return nil, err
	}
	seq, err := inner.Seq()
	if err != nil {
		return nil, err
	}
	return &optionalSeq{seq: seq, out: v.out, elem: elem}, nil
}

func (v *optionalPlace) Map() (Map, error) {
	inner, elem, err := v.begin()
	if err != nil {
		return nil, err
	}
	m, err := inner.Map()
	if err != nil {
		return nil, err
	}
	return &optionalMap{inner: m, out: v.out, elem: elem}, nil
}

type optionalSeq struct {
	seq  Seq
	out  reflect.Value
	elem reflect.Value
}

func (s *optionalSeq) Element() (Visitor, error) {
	return s.seq.Element()
}

func (s *optionalSeq) Finish() error {
	if err := s.seq.Finish(); err != nil {
		return err
	}
	s.out.Set(s.elem)
	return nil
}

type optionalMap struct {
	inner Map
	out   reflect.Value
	elem  reflect.Value
}

func (m *optionalMap) Key(name string) (Visitor, error) {
	return m.inner.Key(name)
}

func (m *optionalMap) Finish() error {
	if err := m.inner.Finish(); err != nil {
		return err
	}
	m.out.Set(m.elem)
	return nil
}

type reflectSlicePlace struct {
	Base
	out reflect.Value
}

func (v *reflectSlicePlace) Null() error {
	v.out.Set(reflect.Zero(v.out.Type()))
	return nil
}

func (v *reflectSlicePlace) Seq() (Seq, error) {
	return &reflectSliceBuilder{
		faults: v.Faults,
		out:    v.out,
		values: reflect.MakeSlice(v.out.Type(), 0, 0),
	}, nil
}

type reflectSliceBuilder struct {
	faults  Sink
	out     reflect.Value
	values  reflect.Value
	element reflect.Value
}

func (b *reflectSliceBuilder) Element() (Visitor, error) {
	b.shift()
	b.element = reflect.New(b.out.Type().Elem())
	return VisitorOf(b.element.Interface(), b.faults)
}

func (b *reflectSliceBuilder) shift() {
	if b.element.IsValid() {
		b.values = reflect.Append(b.values, b.element.Elem())
		b.element = reflect.Value{}
	}
}

func (b *reflectSliceBuilder) Finish() error {
	b.shift()
	b.out.Set(b.values)
	return nil
}

type reflectMapPlace struct {
	Base
	out reflect.Value
}

func (v *reflectMapPlace) Null() error {
	v.out.Set(reflect.Zero(v.out.Type()))
	return nil
}

func (v *reflectMapPlace) Map() (Map, error) {
	return &reflectMapBuilder{
		faults: v.Faults,
		out:    v.out,
		values: reflect.MakeMap(v.out.Type()),
	}, nil
}

type reflectMapBuilder struct {
	faults Sink
	out    reflect.Value
	values reflect.Value
	key    string
	value  reflect.Value
}

func (b *reflectMapBuilder) Key(name string) (Visitor, error) {
	b.shift()
	b.key = name
	b.value = reflect.New(b.out.Type().Elem())
	return VisitorOf(b.value.Interface(), b.faults)
}

func (b *reflectMapBuilder) shift() {
	if b.value.IsValid() {
		key := reflect.ValueOf(b.key).Convert(b.out.Type().Key())
		b.values.SetMapIndex(key, b.value.Elem())
		b.value = reflect.Value{}
	}
}

func (b *reflectMapBuilder) Finish() error {
	b.shift()
	b.out.Set(b.values)
	return nil
}
