package stackset

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectorKind enumerates the ways a workspace can be addressed.
type SelectorKind int

const (
	SelectIndex SelectorKind = iota
	SelectCurr
	SelectPrev
	SelectNext
	SelectLast
)

// Selector picks a workspace relative to the current state of a StackSet.
type Selector struct {
	Kind  SelectorKind
	Index int
}

// Fixed returns a selector for workspace i.
func Fixed(i int) Selector {
	return Selector{Kind: SelectIndex, Index: i}
}

// ParseSelector accepts a workspace number or one of curr, prev, next, last.
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "curr", "current":
		return Selector{Kind: SelectCurr}, nil
	case "prev":
		return Selector{Kind: SelectPrev}, nil
	case "next":
		return Selector{Kind: SelectNext}, nil
	case "last", "old":
		return Selector{Kind: SelectLast}, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 0 {
		return Selector{}, fmt.Errorf("invalid workspace selector %q", s)
	}
	return Fixed(i), nil
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectCurr:
		return "curr"
	case SelectPrev:
		return "prev"
	case SelectNext:
		return "next"
	case SelectLast:
		return "last"
	default:
		return strconv.Itoa(s.Index)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Selector) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selector) UnmarshalText(b []byte) error {
	parsed, err := ParseSelector(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Resolve returns the selected workspace index, modulo the workspace count.
func (s Selector) Resolve(ss *StackSet) int {
	var ws int
	switch s.Kind {
	case SelectCurr:
		ws = ss.Curr()
	case SelectPrev:
		ws = ss.PrevIndex()
	case SelectNext:
		ws = ss.NextIndex()
	case SelectLast:
		ws = ss.Last()
	default:
		ws = s.Index
	}
	return wrap(ws, ss.Size())
}
