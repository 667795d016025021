package dejson

import (
	"reflect"
	"sync"
)

// syncMap is a thread-safe map.
type syncMap[K comparable, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

func newSyncMap[K comparable, V any]() *syncMap[K, V] {
	return &syncMap[K, V]{m: make(map[K]V)}
}

func (m *syncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

func (m *syncMap[K, V]) Put(k K, v V) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.m[k] = v
}

var deserializers = newSyncMap[reflect.Type, Deserializer]()

// Register installs a Deserializer for the target type. Registration is
// meant to happen at startup (typically from the derive package); the last
// registration for a type wins.
func Register(target reflect.Type, deserializer Deserializer) {
	deserializers.Put(target, deserializer)
}

// RegisteredDeserializer returns the Deserializer registered for the target
// type, if any.
func RegisteredDeserializer(target reflect.Type) (Deserializer, bool) {
	return deserializers.Get(target)
}
