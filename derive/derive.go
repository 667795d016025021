// Package derive compiles Visitor wiring for struct types at startup,
// producing exactly what a hand-written Deserializer would: a map-shaped
// Visitor expecting object keys equal to each field's effective name. The
// engine treats registered and hand-written implementations identically; the
// only surface between the two is the dejson capability interfaces.
package derive

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/dejson"
	"github.com/viant/dejson/internal/lru"
	"github.com/viant/dejson/internal/tagutil"
	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

// Register compiles a field plan for struct type T and registers its
// Deserializer. Nested struct field types need their own registration.
// The last registration for a type wins.
func Register[T any](opts ...Option) error {
	rType := reflect.TypeOf((*T)(nil)).Elem()
	if rType.Kind() != reflect.Struct {
		return fmt.Errorf("derive: %s is not a struct", rType)
	}
	cfg := resolveOptions(opts)
	plan, err := planFor(rType, cfg)
	if err != nil {
		return err
	}
	dejson.Register(rType, &structDeserializer{plan: plan})
	return nil
}

// MustRegister is Register that panics on a miscompiled plan; meant for
// package-level var blocks and init.
func MustRegister[T any](opts ...Option) {
	if err := Register[T](opts...); err != nil {
		panic(err)
	}
}

type typePlan struct {
	rType        reflect.Type
	fields       []*fieldPlan
	fieldsByName map[string]*fieldPlan
	strict       bool
}

type fieldPlan struct {
	index    int
	name     string
	goName   string
	xField   *xunsafe.Field
	rType    reflect.Type
	optional bool
	fallback *reflect.Value
}

type planKey struct {
	rType      reflect.Type
	caseFormat text.CaseFormat
	strict     bool
}

var planCache = lru.New[planKey, *typePlan](256)

func planFor(rType reflect.Type, cfg Options) (*typePlan, error) {
	if cfg.perField() {
		return buildPlan(rType, cfg)
	}
	key := planKey{rType: rType, caseFormat: cfg.CaseFormat, strict: cfg.StrictKeys}
	if plan, ok := planCache.Get(key); ok {
		return plan, nil
	}
	plan, err := buildPlan(rType, cfg)
	if err != nil {
		return nil, err
	}
	planCache.Set(key, plan)
	return plan, nil
}

func buildPlan(rType reflect.Type, cfg Options) (*typePlan, error) {
	plan := &typePlan{
		rType:        rType,
		fieldsByName: map[string]*fieldPlan{},
		strict:       cfg.StrictKeys,
	}
	named := map[string]bool{}
	for key := range cfg.Renames {
		named[key] = true
	}
	for key := range cfg.Optional {
		named[key] = true
	}
	for key := range cfg.Defaults {
		named[key] = true
	}
	for i := 0; i < rType.NumField(); i++ {
		sf := rType.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		delete(named, sf.Name)
		jTag := tagutil.ParseJSONTag(sf.Name, sf.Tag.Get("json"))
		if jTag.Transient {
			continue
		}
		fp := &fieldPlan{
			index:    len(plan.fields),
			name:     effectiveName(sf.Name, jTag, cfg),
			goName:   sf.Name,
			xField:   xunsafe.NewField(sf),
			rType:    sf.Type,
			optional: isImplicitlyOptional(sf.Type) || cfg.Optional[sf.Name],
		}
		if raw, ok := cfg.Defaults[sf.Name]; ok {
			value := reflect.ValueOf(raw)
			if !value.IsValid() || !value.Type().AssignableTo(sf.Type) {
				return nil, fmt.Errorf("derive: default for %s.%s is not assignable to %s", rType, sf.Name, sf.Type)
			}
			fp.fallback = &value
		}
		if previous, ok := plan.fieldsByName[fp.name]; ok {
			return nil, fmt.Errorf("derive: fields %s and %s of %s share effective name %q", previous.goName, fp.goName, rType, fp.name)
		}
		plan.fields = append(plan.fields, fp)
		plan.fieldsByName[fp.name] = fp
	}
	for key := range named {
		return nil, fmt.Errorf("derive: %s has no settable field %q", rType, key)
	}
	return plan, nil
}

// effectiveName precedence: per-field rename option, json tag, global case
// convention, literal field name. When a convention is configured the
// literal name no longer binds; strict mode decides whether it errors.
func effectiveName(goName string, jTag tagutil.JSONTag, cfg Options) string {
	if rename, ok := cfg.Renames[goName]; ok {
		return rename
	}
	if jTag.Explicit {
		return jTag.Name
	}
	if cfg.CaseFormat != text.CaseFormatUndefined {
		src := text.DetectCaseFormat(goName)
		if !src.IsDefined() {
			src = text.CaseFormatUpperCamel
		}
		return src.Format(goName, cfg.CaseFormat)
	}
	return goName
}

func isImplicitlyOptional(rType reflect.Type) bool {
	switch rType.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map:
		return true
	}
	return false
}

type structDeserializer struct {
	plan *typePlan
}

func (d *structDeserializer) Begin(slot any, faults dejson.Sink) (dejson.Visitor, error) {
	rt := reflect.TypeOf(slot)
	if rt == nil || rt.Kind() != reflect.Ptr || rt.Elem() != d.plan.rType {
		return nil, fmt.Errorf("derive: expected *%s slot, got %T", d.plan.rType, slot)
	}
	return &structVisitor{
		Base: dejson.Base{Faults: faults},
		plan: d.plan,
		ptr:  xunsafe.AsPointer(slot),
	}, nil
}

type structVisitor struct {
	dejson.Base
	plan *typePlan
	ptr  unsafe.Pointer
}

func (v *structVisitor) Map() (dejson.Map, error) {
	return &structMap{
		plan:   v.plan,
		ptr:    v.ptr,
		faults: v.Faults,
		seen:   make([]bool, len(v.plan.fields)),
	}, nil
}

type structMap struct {
	plan   *typePlan
	ptr    unsafe.Pointer
	faults dejson.Sink
	seen   []bool
}

func (m *structMap) Key(name string) (dejson.Visitor, error) {
	fp, ok := m.plan.fieldsByName[name]
	if !ok {
		if m.plan.strict {
			return nil, m.faults.Unexpected(fmt.Sprintf("field %q", name))
		}
		return dejson.Ignore(), nil
	}
	m.seen[fp.index] = true
	slot := reflect.NewAt(fp.rType, fp.xField.Pointer(m.ptr)).Interface()
	return dejson.VisitorOf(slot, m.faults)
}

func (m *structMap) Finish() error {
	for _, fp := range m.plan.fields {
		if m.seen[fp.index] {
			continue
		}
		if fp.fallback != nil {
			reflect.NewAt(fp.rType, fp.xField.Pointer(m.ptr)).Elem().Set(*fp.fallback)
			continue
		}
		if fp.optional {
			continue
		}
		return m.faults.MissingField(fp.name)
	}
	return nil
}
