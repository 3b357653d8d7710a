package main

import (
	"reflect"
	"testing"
)

func TestDescriptionFromFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2026-10-01-001-create-members.sql", "create members"},
		{"2026-10-01-003-create-body-composition.sql", "create body composition"},
		{"no-prefix.sql", "no prefix"},
	}
	for _, tc := range cases {
		if got := descriptionFromFilename(tc.in); got != tc.want {
			t.Errorf("descriptionFromFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestPendingMigrations verifies applied files are skipped and the rest are
// returned in filename order regardless of glob order.
func TestPendingMigrations(t *testing.T) {
	files := []string{
		"db/2026-10-01-003-c.sql",
		"db/2026-10-01-001-a.sql",
		"db/2026-10-01-002-b.sql",
	}
	applied := map[string]bool{"2026-10-01-001-a.sql": true}

	got := pendingMigrations(files, applied)
	want := []string{"db/2026-10-01-002-b.sql", "db/2026-10-01-003-c.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pendingMigrations = %v, want %v", got, want)
	}
	if files[0] != "db/2026-10-01-003-c.sql" {
		t.Error("pendingMigrations must not reorder its input")
	}
}
