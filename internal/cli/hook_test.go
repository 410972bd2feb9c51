package cli

import (
	"strings"
	"testing"
)

// wantInScript asserts that every fragment appears in the script.
func wantInScript(t *testing.T, script string, fragments ...string) {
	t.Helper()
	for _, frag := range fragments {
		if !strings.Contains(script, frag) {
			t.Errorf("script missing %q", frag)
		}
	}
}

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript(70, "text")
	wantInScript(t, script,
		hookMarkerStart,
		hookMarkerEnd,
		`claude-md-bench audit "$f" --min-score 70 --format text --no-color`,
		"git diff --cached --name-only",
		`CLAUDE\.local\.md`,
		"BENCH_EXIT=$?",
		"exit 1",
		"allowing commit",
	)
}

func TestGenerateHookScript_CustomFlags(t *testing.T) {
	wantInScript(t, generateHookScript(85.5, "json"), "--min-score 85.5", "--format json")
}

func TestReplaceBenchSection(t *testing.T) {
	t.Run("appends when no section exists", func(t *testing.T) {
		result := replaceBenchSection("#!/bin/sh\nsome-other-hook\n", generateHookScript(70, "text"))
		if !strings.HasPrefix(result, "#!/bin/sh\nsome-other-hook\n") {
			t.Error("existing script must come first, untouched")
		}
		wantInScript(t, result, hookMarkerStart)
	})

	t.Run("swaps an existing section in place", func(t *testing.T) {
		existing := "#!/bin/sh\nbefore\n" + generateHookScript(50, "text") + "after\n"
		result := replaceBenchSection(existing, generateHookScript(80, "json"))
		wantInScript(t, result, "before\n", "after\n", "--min-score 80")
		if strings.Contains(result, "--min-score 50") {
			t.Error("old section flags must be gone")
		}
	})

	t.Run("handles scripts without a trailing newline", func(t *testing.T) {
		result := replaceBenchSection("#!/bin/sh\nsome-hook", generateHookScript(70, "text"))
		wantInScript(t, result, "some-hook", hookMarkerStart)
	})
}

func TestRemoveBenchSection(t *testing.T) {
	t.Run("strips the managed section only", func(t *testing.T) {
		existing := "#!/bin/sh\nbefore\n" + generateHookScript(70, "text") + "after\n"
		result := removeBenchSection(existing)
		if strings.Contains(result, hookMarkerStart) {
			t.Error("managed section must be gone")
		}
		wantInScript(t, result, "before\n", "after\n")
	})

	t.Run("leaves unrelated scripts alone", func(t *testing.T) {
		existing := "#!/bin/sh\nsome-hook\n"
		if got := removeBenchSection(existing); got != existing {
			t.Errorf("got %q, want input unchanged", got)
		}
	})
}
