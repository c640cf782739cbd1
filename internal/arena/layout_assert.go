package arena

import (
	"reflect"
	"unsafe"
)

var _ [NodeSize - int(unsafe.Sizeof(Node{}))]byte
var _ [int(unsafe.Sizeof(Node{})) - NodeSize]byte

// pointerBearing reports whether values of t would give the GC anything
// to chase. Arena memory must stay invisible to the scanner.
func pointerBearing(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Array:
		return pointerBearing(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if pointerBearing(t.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Pointer, reflect.UnsafePointer, reflect.Slice, reflect.Map,
		reflect.Interface, reflect.Func, reflect.Chan, reflect.String:
		return true
	}
	return false
}
