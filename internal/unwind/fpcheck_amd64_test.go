//go:build amd64

package unwind

import "testing"

func TestHasFramePointerPrologue(t *testing.T) {
	cases := []struct {
		name string
		code []byte
		want bool
	}{
		{
			name: "push rbp; mov rbp, rsp",
			code: []byte{0x55, 0x48, 0x89, 0xe5, 0x90},
			want: true,
		},
		{
			name: "no frame pointer setup",
			code: []byte{0x48, 0x83, 0xec, 0x18, 0x90},
			want: false,
		},
		{
			name: "too short",
			code: []byte{0x55},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasFramePointerPrologue(tc.code); got != tc.want {
				t.Errorf("HasFramePointerPrologue(%v) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}
