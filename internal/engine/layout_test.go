package engine

import "testing"

func TestAlignedStorageSize(t *testing.T) {
	cases := []struct {
		size uint32
		want uint32
	}{
		{0, 0},
		{1, 16},
		{16, 16},
		{17, 32},
		{1024, 1024},
	}
	for _, c := range cases {
		if got := alignedStorageSize(c.size); got != c.want {
			t.Errorf("alignedStorageSize(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestClampStackSize(t *testing.T) {
	const floor = 32 << 10
	cases := []struct {
		size uint32
		want uint32
	}{
		{0, floor},
		{1024, floor},
		{floor, floor},
		{floor + 1, floor + 16}, // rounds up after clamping
	}
	for _, c := range cases {
		if got := clampStackSize(c.size, floor); got != c.want {
			t.Errorf("clampStackSize(%d, %d) = %d, want %d", c.size, floor, got, c.want)
		}
	}
}
