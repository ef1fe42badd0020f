package topology

import "testing"

func TestAffinityInfo(t *testing.T) {
	a := AffinityInfo{SystemMask: 0b1111, ProcessMask: 0b0101}

	if !a.ValidProcessor(0) || !a.ValidProcessor(3) {
		t.Fatal("system processors reported invalid")
	}
	if a.ValidProcessor(4) || a.ValidProcessor(-1) || a.ValidProcessor(64) {
		t.Fatal("nonexistent processor reported valid")
	}

	if enabled, valid := a.EnabledProcessor(0); !valid || !enabled {
		t.Fatal("processor 0 should be enabled")
	}
	if enabled, valid := a.EnabledProcessor(1); !valid || enabled {
		t.Fatal("processor 1 should be valid but disabled")
	}
	if _, valid := a.EnabledProcessor(9); valid {
		t.Fatal("processor 9 should be invalid")
	}

	if got := a.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	if got := a.Highest(); got != 2 {
		t.Fatalf("Highest = %d, want 2", got)
	}

	list := a.List()
	want := []bool{true, false, true, false}
	if len(list) != len(want) {
		t.Fatalf("List length %d, want %d", len(list), len(want))
	}
	for i := range want {
		if list[i] != want[i] {
			t.Fatalf("List[%d] = %v, want %v", i, list[i], want[i])
		}
	}
}

func TestEmptyMask(t *testing.T) {
	var a AffinityInfo
	if a.Count() != 0 {
		t.Fatal("empty mask has nonzero count")
	}
	if a.Highest() != -1 {
		t.Fatalf("Highest on empty mask = %d, want -1", a.Highest())
	}
	if len(a.List()) != 0 {
		t.Fatal("empty system mask produced processors")
	}
}

func TestProcessorMask(t *testing.T) {
	p := Processor{Group: 1, Index: 5}
	if p.Mask() != 1<<5 {
		t.Fatalf("Mask = %#x, want %#x", p.Mask(), uint64(1<<5))
	}
}
