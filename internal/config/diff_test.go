package config

import (
	"strings"
	"testing"
)

func TestDiffSerialized(t *testing.T) {
	diff := DiffSerialized([]byte("borders:\n  width: 2\n"), []byte("borders:\n  width: 4\n"))
	if !strings.Contains(diff, "width: 2") || !strings.Contains(diff, "width: 4") {
		t.Fatalf("expected diff to show both widths, got %s", diff)
	}
	if DiffSerialized([]byte("a: 1\r\n"), []byte("a: 1\n")) != "" {
		t.Fatalf("expected line endings to be ignored")
	}
}

func TestDiffDecodedConfigs(t *testing.T) {
	prev := Default()
	curr := Default()
	curr.Rules = append(curr.Rules, RuleConfig{Name: "term", Class: "URxvt", Workspace: "2"})
	diff := Diff(prev, curr)
	if !strings.Contains(diff, "URxvt") {
		t.Fatalf("expected diff to mention the new rule, got %s", diff)
	}
	if Diff(prev, Default()) != "" {
		t.Fatalf("expected identical configs to produce no diff")
	}
}
