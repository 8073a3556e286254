package timer

import "testing"

func TestPeriodMicros(t *testing.T) {
	cases := []struct {
		hz   int
		want int64
	}{
		{hz: 1, want: 1_000_000},
		{hz: 99, want: 1_000_000 / 99},
		{hz: 1000, want: 1_000},
		{hz: 0, want: 1_000_000},
		{hz: -5, want: 1_000_000},
	}

	for _, tc := range cases {
		got := periodMicros(tc.hz)
		if got != tc.want {
			t.Errorf("periodMicros(%d) = %d, want %d", tc.hz, got, tc.want)
		}
		if got < 1 {
			t.Errorf("periodMicros(%d) = %d, must be >= 1", tc.hz, got)
		}
	}
}
