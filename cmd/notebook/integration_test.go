// ABOUTME: Integration tests for notebook CLI commands.
// ABOUTME: Builds the binary and drives full page, block, and calendar workflows.

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var notebookBin string

func TestMain(m *testing.M) {
	binDir, err := os.MkdirTemp("", "notebook-bin")
	if err != nil {
		panic(err)
	}
	notebookBin = filepath.Join(binDir, "notebook")

	cmd := exec.Command("go", "build", "-o", notebookBin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic(string(out))
	}

	code := m.Run()
	_ = os.RemoveAll(binDir)
	os.Exit(code)
}

func runNotebook(home string, args ...string) (string, error) {
	cmd := exec.Command(notebookBin, args...) //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(home, "config"),
		"XDG_DATA_HOME="+filepath.Join(home, "data"),
		"NOTEBOOK_BACKEND=sqlite",
		"NO_COLOR=1",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// pageID extracts the ID prefix of the page titled title from 'page list'.
func pageID(t *testing.T, home, title string) string {
	t.Helper()
	out, err := runNotebook(home, "page", "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, title) {
			fields := strings.Fields(line)
			if len(fields) > 0 {
				return fields[0]
			}
		}
	}
	t.Fatalf("could not find page %q in:\n%s", title, out)
	return ""
}

func TestPageAndBlockWorkflow(t *testing.T) {
	home := t.TempDir()

	out, err := runNotebook(home, "page", "add", "Groceries", "--template", "todo")
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Created page") {
		t.Errorf("expected 'Created page' in output: %s", out)
	}

	id := pageID(t, home, "Groceries")

	if out, err = runNotebook(home, "block", "add", id, "todo", "Eggs"); err != nil {
		t.Fatalf("block add failed: %v\n%s", err, out)
	}
	if out, err = runNotebook(home, "block", "toggle", id, "1"); err != nil {
		t.Fatalf("toggle failed: %v\n%s", err, out)
	}

	out, err = runNotebook(home, "page", "show", id)
	if err != nil {
		t.Fatalf("show failed: %v\n%s", err, out)
	}
	for _, want := range []string{"[x] Task 1", "[ ] Task 2", "[ ] Eggs"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in show: %s", want, out)
		}
	}

	if out, err = runNotebook(home, "block", "mv", id, "3", "1"); err != nil {
		t.Fatalf("mv failed: %v\n%s", err, out)
	}
	if out, err = runNotebook(home, "block", "rm", id, "2,3"); err != nil {
		t.Fatalf("rm failed: %v\n%s", err, out)
	}

	out, _ = runNotebook(home, "page", "show", id)
	if !strings.Contains(out, "  1  [ ] Eggs") {
		t.Errorf("expected Eggs first after move: %s", out)
	}
	if strings.Contains(out, "Task") {
		t.Errorf("expected tasks removed: %s", out)
	}

	out, err = runNotebook(home, "page", "rm", id, "--force")
	if err != nil {
		t.Fatalf("page rm failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Deleted") {
		t.Errorf("expected 'Deleted' in output: %s", out)
	}
}

func TestCalendarWorkflow(t *testing.T) {
	home := t.TempDir()

	_, _ = runNotebook(home, "page", "add", "Plans", "-t", "calendar")
	id := pageID(t, home, "Plans")

	out, err := runNotebook(home, "event", "set", id, "2025-12-25", "Holiday")
	if err != nil {
		t.Fatalf("event set failed: %v\n%s", err, out)
	}

	out, _ = runNotebook(home, "agenda", "--all")
	if !strings.Contains(out, "2025-12-25  Holiday (Plans)") {
		t.Errorf("expected event in agenda: %s", out)
	}

	out, _ = runNotebook(home, "calendar", "--month", "2025-12")
	if !strings.Contains(out, "December 2025") || !strings.Contains(out, "Holiday") {
		t.Errorf("expected month grid with event: %s", out)
	}

	icsPath := filepath.Join(home, "plans.ics")
	if out, err = runNotebook(home, "event", "export", id, "-o", icsPath); err != nil {
		t.Fatalf("event export failed: %v\n%s", err, out)
	}

	_, _ = runNotebook(home, "page", "add", "Copy", "-t", "calendar")
	copyID := pageID(t, home, "Copy")
	if out, err = runNotebook(home, "event", "import", copyID, icsPath); err != nil {
		t.Fatalf("event import failed: %v\n%s", err, out)
	}
	out, _ = runNotebook(home, "event", "list", copyID)
	if !strings.Contains(out, "Holiday") {
		t.Errorf("expected imported event: %s", out)
	}
}

func TestExportImport(t *testing.T) {
	home := t.TempDir()
	_, _ = runNotebook(home, "page", "add", "Standup", "-t", "meeting")

	exportPath := filepath.Join(home, "backup.yaml")
	out, err := runNotebook(home, "export", "-o", exportPath)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}

	other := t.TempDir()
	if out, err = runNotebook(other, "import", exportPath); err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	id := pageID(t, other, "Standup")
	if id != pageID(t, home, "Standup") {
		t.Errorf("expected imported page to keep its id")
	}

	out, _ = runNotebook(other, "page", "show", id)
	if !strings.Contains(out, "Action item") {
		t.Errorf("expected meeting blocks after import: %s", out)
	}
}

func TestTemplates(t *testing.T) {
	out, err := runNotebook(t.TempDir(), "templates")
	if err != nil {
		t.Fatalf("templates failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Meeting Notes") {
		t.Errorf("expected template list: %s", out)
	}
}

func TestParsePositions(t *testing.T) {
	got, err := parsePositions([]string{"3,1", "5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{2, 0, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	if _, err := parsePositions([]string{"0"}); err == nil {
		t.Error("expected error for position 0")
	}
	if _, err := parsePositions([]string{","}); err == nil {
		t.Error("expected error for empty list")
	}
}
