package stackset

import "testing"

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in   string
		want Selector
	}{
		{"3", Fixed(3)},
		{"curr", Selector{Kind: SelectCurr}},
		{"", Selector{Kind: SelectCurr}},
		{"Prev", Selector{Kind: SelectPrev}},
		{"next", Selector{Kind: SelectNext}},
		{"old", Selector{Kind: SelectLast}},
	}
	for _, tt := range tests {
		got, err := ParseSelector(tt.in)
		if err != nil {
			t.Fatalf("ParseSelector(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSelector(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"-1", "first"} {
		if _, err := ParseSelector(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSelectorResolve(t *testing.T) {
	ss := newTestSet(t, 4)
	ss.SetCurr(2)
	ss.SetCurr(3)
	tests := []struct {
		sel  Selector
		want int
	}{
		{Fixed(1), 1},
		{Fixed(9), 1},
		{Selector{Kind: SelectCurr}, 3},
		{Selector{Kind: SelectPrev}, 2},
		{Selector{Kind: SelectNext}, 0},
		{Selector{Kind: SelectLast}, 2},
	}
	for _, tt := range tests {
		if got := tt.sel.Resolve(ss); got != tt.want {
			t.Fatalf("%s.Resolve() = %d, want %d", tt.sel, got, tt.want)
		}
	}
}
