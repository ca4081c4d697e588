package debugui

import (
	"reflect"
	"sync"

	"github.com/plus3/divvy/ecs"
)

var refType = reflect.TypeFor[ecs.Ref]()

// FieldInfo describes one exported field of a component struct. Fields
// promoted from embedded structs are listed in place of the embedded struct,
// with Index holding the path for reflect.Value.FieldByIndex.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     []int
	IsPointer bool
	Editable  bool
	// BackRef marks ecs.Ref fields. The World stamps them, so the inspector
	// shows them without an input widget.
	BackRef bool
}

// ReflectionCache memoizes the inspectable fields of component types so the
// inspector does not walk reflect.Type on every frame.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fields: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the inspectable fields of t. Non-struct types have none.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		fields = collectFields(t, nil, fields)
	}
	rc.fields[t] = fields
	return fields
}

// Inspect dereferences a component as returned by World.ComponentsOf and
// returns its addressable value with its fields.
func (rc *ReflectionCache) Inspect(component any) (reflect.Value, []FieldInfo) {
	val := reflect.ValueOf(component)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return reflect.Value{}, nil
		}
		val = val.Elem()
	}
	return val, rc.GetFields(val.Type())
}

func (rc *ReflectionCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.fields)
}

func collectFields(t reflect.Type, prefix []int, fields []FieldInfo) []FieldInfo {
	for i := range t.NumField() {
		field := t.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Type != refType {
			fields = collectFields(field.Type, index, fields)
			continue
		}
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Ptr
		if isPointer {
			fieldType = fieldType.Elem()
		}

		switch fieldType.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}

		backRef := fieldType == refType
		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      fieldType,
			Index:     index,
			IsPointer: isPointer,
			Editable:  !backRef && editableKind(fieldType.Kind()),
			BackRef:   backRef,
		})
	}
	return fields
}

func editableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return true
	}
	return false
}

var globalReflectionCache = NewReflectionCache()
