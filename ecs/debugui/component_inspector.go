package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/divvy/ecs"
)

// ComponentInspector shows the components of the selected entity and edits
// their exported scalar fields in place.
type ComponentInspector struct {
	Target    *ecs.World
	Selection *Selection
}

func NewComponentInspector(target *ecs.World, selection *Selection) ComponentInspector {
	return ComponentInspector{Target: target, Selection: selection}
}

func (ci *ComponentInspector) Update() {
	ci.Render()
}

func (ci *ComponentInspector) Clone(src *ComponentInspector) {
	*ci = *src
}

func (ci *ComponentInspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if ci.Target == nil || ci.Selection == nil || !ci.Selection.HasEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	id := ci.Selection.Entity
	if !ci.Target.IsAlive(id) {
		imgui.Text(fmt.Sprintf("Entity #%d no longer exists", id))
		ci.Selection.Clear()
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity #%d", id))
	imgui.SameLine()
	if imgui.Button("Destroy") {
		if e, ok := ci.Target.Lookup(id); ok {
			ci.Target.DestroyEntity(e)
		}
		ci.Selection.Clear()
		imgui.End()
		return
	}
	imgui.Separator()

	components := ci.Target.ComponentsOf(id)
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if imgui.TreeNodeStr(name) {
			ci.renderComponent(components[name])
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(component any) {
	val, fields := globalReflectionCache.Inspect(component)
	if !val.IsValid() {
		imgui.Text("nil")
		return
	}
	if len(fields) == 0 {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return
	}

	for _, field := range fields {
		ci.renderField(field.Name, val.FieldByIndex(field.Index), field)
	}
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value, field FieldInfo) {
	if field.IsPointer {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
	}
	if field.BackRef {
		imgui.Text(fmt.Sprintf("%s: %s", name, val.Interface().(ecs.Ref)))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				ci.renderField(nf.Name, val.FieldByIndex(nf.Index), nf)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func, reflect.Chan, reflect.Interface:
		imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setInt stores value into v unless it overflows v's kind.
func setInt(v reflect.Value, value int64) bool {
	if !v.CanSet() || v.OverflowInt(value) {
		return false
	}
	v.SetInt(value)
	return true
}

func setUint(v reflect.Value, value uint64) bool {
	if !v.CanSet() || v.OverflowUint(value) {
		return false
	}
	v.SetUint(value)
	return true
}

func setFloat(v reflect.Value, value float64) bool {
	if !v.CanSet() || v.OverflowFloat(value) {
		return false
	}
	v.SetFloat(value)
	return true
}
