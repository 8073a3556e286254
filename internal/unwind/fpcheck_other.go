//go:build !amd64

package unwind

// HasFramePointerPrologue is only implemented for amd64, where
// golang.org/x/arch's x86asm decoder applies. On other architectures the
// check is skipped; it is advisory only and never gates Start().
func HasFramePointerPrologue(code []byte) bool {
	return false
}
