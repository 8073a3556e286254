//go:build amd64

// Package unwind provides diagnostic-only checks that complement the cgo
// frame-pointer walker in internal/native; it never participates in the
// signal-handling path itself.
package unwind

import "golang.org/x/arch/x86/x86asm"

// HasFramePointerPrologue decodes the first few instructions at code and
// reports whether they look like a standard `push rbp; mov rbp, rsp`
// frame-pointer setup. It is advisory only, run once at Start() from
// non-signal context, never from the handler: a false result just means the
// frame-pointer backend may produce truncated stacks for this binary.
func HasFramePointerPrologue(code []byte) bool {
	if len(code) < 4 {
		return false
	}

	offset := 0
	sawPush := false
	for i := 0; i < 4 && offset < len(code); i++ {
		inst, err := x86asm.Decode(code[offset:], 64)
		if err != nil {
			return false
		}

		switch inst.Op {
		case x86asm.PUSH:
			if reg, ok := inst.Args[0].(x86asm.Reg); ok && reg == x86asm.RBP {
				sawPush = true
			}
		case x86asm.MOV:
			if sawPush {
				dst, dstOK := inst.Args[0].(x86asm.Reg)
				src, srcOK := inst.Args[1].(x86asm.Reg)
				if dstOK && srcOK && dst == x86asm.RBP && src == x86asm.RSP {
					return true
				}
			}
		}

		offset += inst.Len
	}

	return false
}
