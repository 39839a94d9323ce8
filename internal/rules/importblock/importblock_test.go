package importblock

import (
	"strings"
	"testing"

	"github.com/linewatch/linewatch/internal/rules"
)

func input(path, source string) rules.FileInput {
	return rules.FileInput{
		Path:    path,
		RelPath: path,
		Source:  []byte(source),
		Config:  DefaultConfig(),
	}
}

func TestCheckSingleLineImportsPass(t *testing.T) {
	rule := New()
	source := strings.Join([]string{
		"use std::fmt;",
		"use std::collections::{HashMap, HashSet};",
		"use crate::module::Thing;",
		"",
		"fn main() {}",
	}, "\n")

	if got := rule.Check(input("src/main.rs", source)); len(got) != 0 {
		t.Fatalf("expected no violations, got %d: %v", len(got), got)
	}
}

func TestCheckMultiLineBlock(t *testing.T) {
	rule := New()
	source := strings.Join([]string{
		"use std::collections::{",
		"    HashMap,",
		"    HashSet,",
		"};",
		"",
		"fn main() {}",
	}, "\n")

	got := rule.Check(input("src/main.rs", source))
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(got))
	}

	v := got[0]
	if v.Location.Start.Line != 1 || v.Location.End.Line != 4 {
		t.Errorf("block span = %d-%d, want 1-4", v.Location.Start.Line, v.Location.End.Line)
	}
	wantSource := "use std::collections::{\nHashMap,\nHashSet,\n};"
	if v.SourceCode != wantSource {
		t.Errorf("captured block = %q, want %q", v.SourceCode, wantSource)
	}
	if v.RuleCode != RuleCode {
		t.Errorf("rule code = %q, want %q", v.RuleCode, RuleCode)
	}
}

func TestCheckMultipleBlocks(t *testing.T) {
	rule := New()
	source := strings.Join([]string{
		"use a::{",
		"    B,",
		"};",
		"use c::d;",
		"use e::{",
		"    F,",
		"    G,",
		"};",
	}, "\n")

	got := rule.Check(input("src/lib.rs", source))
	if len(got) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(got))
	}
	if got[0].Location.Start.Line != 1 || got[1].Location.Start.Line != 5 {
		t.Errorf("block starts = %d, %d; want 1, 5", got[0].Location.Start.Line, got[1].Location.Start.Line)
	}
}

func TestCheckUnclosedBlockAtEOF(t *testing.T) {
	rule := New()
	source := strings.Join([]string{
		"use std::collections::{",
		"    HashMap,",
		"    HashSet,",
	}, "\n")

	if got := rule.Check(input("src/main.rs", source)); len(got) != 0 {
		t.Fatalf("expected incomplete block to be dropped, got %d violations", len(got))
	}
}

func TestCheckIndentedUseStartsBlock(t *testing.T) {
	rule := New()
	source := strings.Join([]string{
		"mod inner {",
		"    use std::collections::{",
		"        HashMap,",
		"    };",
		"}",
	}, "\n")

	got := rule.Check(input("src/lib.rs", source))
	if len(got) != 1 {
		t.Fatalf("expected 1 violation for indented block, got %d", len(got))
	}
	if got[0].Location.Start.Line != 2 || got[0].Location.End.Line != 4 {
		t.Errorf("block span = %d-%d, want 2-4", got[0].Location.Start.Line, got[0].Location.End.Line)
	}
}

func TestCheckNonMatchingExtensionSkipped(t *testing.T) {
	rule := New()
	source := "use std::collections::{\n    HashMap,\n};"

	tests := []string{"notes.md", "build.go", "src/main.py", "usersfile"}
	for _, path := range tests {
		if got := rule.Check(input(path, source)); len(got) != 0 {
			t.Errorf("%s: expected no violations outside .rs files, got %d", path, len(got))
		}
	}
}

func TestCheckCustomExtensions(t *testing.T) {
	rule := New()
	in := input("src/main.rslike", "use a::{\n    B,\n};")
	in.Config = Config{Extensions: []string{".rslike"}}

	if got := rule.Check(in); len(got) != 1 {
		t.Fatalf("expected 1 violation with custom extension, got %d", len(got))
	}
}

func TestCheckScoping(t *testing.T) {
	rule := New()
	source := strings.Join([]string{
		"use a::{", // 1
		"    B,",   // 2
		"};",       // 3
		"use c::{", // 4
		"    D,",   // 5
		"};",       // 6
	}, "\n")

	t.Run("block with an added line reported", func(t *testing.T) {
		in := input("src/lib.rs", source)
		in.Added = map[int]struct{}{5: {}}

		got := rule.Check(in)
		if len(got) != 1 {
			t.Fatalf("expected 1 violation, got %d", len(got))
		}
		if got[0].Location.Start.Line != 4 {
			t.Errorf("reported block starts at %d, want 4", got[0].Location.Start.Line)
		}
	})

	t.Run("untouched blocks skipped", func(t *testing.T) {
		in := input("src/lib.rs", source)
		in.Added = map[int]struct{}{}

		if got := rule.Check(in); len(got) != 0 {
			t.Fatalf("expected no violations with no added lines, got %d", len(got))
		}
	})

	t.Run("nil scope reports every block", func(t *testing.T) {
		in := input("src/lib.rs", source)
		if got := rule.Check(in); len(got) != 2 {
			t.Fatalf("expected 2 violations without scoping, got %d", len(got))
		}
	})
}

func TestCheckBraceInNonImportLineIgnored(t *testing.T) {
	rule := New()
	source := strings.Join([]string{
		"fn main() {",
		"    let x = 1;",
		"}",
	}, "\n")

	if got := rule.Check(input("src/main.rs", source)); len(got) != 0 {
		t.Fatalf("expected no violations for ordinary braces, got %d", len(got))
	}
}
