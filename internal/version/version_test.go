package version

import (
	"testing"
)

func withBuild(t *testing.T, date, commit string) {
	t.Helper()
	oldDate, oldCommit := Date, Commit
	t.Cleanup(func() { Date, Commit = oldDate, oldCommit })
	Date, Commit = date, commit
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2026-01-01", expected: 0},
		{name: "next day after epoch", date: "2026-01-02", expected: 1},
		{name: "one year later", date: "2027-01-01", expected: 365},
		{name: "leap year included", date: "2029-01-01", expected: 1096},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-31", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuild(t, tt.date, "")

			got, err := Build()

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (build=%d)", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Build() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestRunLabel(t *testing.T) {
	withBuild(t, "", "")
	if got := RunLabel(42); got != "dungeon-sim/dev/seed-42" {
		t.Errorf("RunLabel() = %q", got)
	}

	Date = "2026-01-11"
	if got := RunLabel(-7); got != "dungeon-sim/10/seed--7" {
		t.Errorf("RunLabel() = %q", got)
	}
}

func TestFields(t *testing.T) {
	t.Run("local build", func(t *testing.T) {
		withBuild(t, "", "")
		f := Fields(3, 50)
		if f["run"] != "dungeon-sim/dev/seed-3" || f["ticks"] != 50 {
			t.Errorf("Fields() = %v", f)
		}
		for _, key := range []string{"build", "build_error", "commit"} {
			if _, ok := f[key]; ok {
				t.Errorf("unexpected %q in %v", key, f)
			}
		}
	})

	t.Run("release build", func(t *testing.T) {
		withBuild(t, "2026-01-11", "abc123")
		f := Fields(3, 50)
		if f["build"] != 10 || f["build_date"] != "2026-01-11" || f["commit"] != "abc123" {
			t.Errorf("Fields() = %v", f)
		}
	})

	t.Run("broken date is reported", func(t *testing.T) {
		withBuild(t, "yesterday", "")
		if _, ok := Fields(3, 50)["build_error"]; !ok {
			t.Error("build_error missing")
		}
	})
}
