package unwind

import (
	"reflect"
	"runtime"
	"unsafe"
)

const probeLen = 16

// ProbeFramePointers reads the first bytes of fn's machine code and checks
// them for a frame-pointer prologue. fn must be a Go function value; the
// check is advisory only (see HasFramePointerPrologue) and is meant to be
// run once at Start(), never from signal context.
func ProbeFramePointers(fn interface{}) (ok bool, checked bool) {
	pc := reflect.ValueOf(fn).Pointer()
	entry := runtime.FuncForPC(pc)
	if entry == nil {
		return false, false
	}

	code := unsafe.Slice((*byte)(unsafe.Pointer(pc)), probeLen)
	return HasFramePointerPrologue(code), true
}
