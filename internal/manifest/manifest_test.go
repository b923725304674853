package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/cascade/internal/errors"
)

const validManifest = `
tasks:
  - name: fetch
    command: echo fetch
  - name: build
    command: echo build
    depends_on: [fetch]
  - name: test
    command: echo test
    depends_on: [build]
`

func TestParseValid(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(m.Tasks))
	}
	if m.Tasks[1].Name != "build" {
		t.Errorf("expected second task 'build', got %q", m.Tasks[1].Name)
	}
	if len(m.Tasks[1].DependsOn) != 1 || m.Tasks[1].DependsOn[0] != "fetch" {
		t.Errorf("unexpected depends_on for build: %v", m.Tasks[1].DependsOn)
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("  \n\t"))
	if !errors.Is(err, errors.ErrManifestInvalid) {
		t.Errorf("expected ErrManifestInvalid for empty payload, got %v", err)
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("tasks: [unclosed"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	var manifestErr *errors.ManifestError
	if !errors.As(err, &manifestErr) {
		t.Errorf("expected ManifestError, got %T", err)
	}
}

func TestParseNoTasks(t *testing.T) {
	_, err := Parse([]byte("tasks: []"))
	if !errors.Is(err, errors.ErrManifestInvalid) {
		t.Errorf("expected ErrManifestInvalid, got %v", err)
	}
}

func TestValidateMissingName(t *testing.T) {
	_, err := Parse([]byte("tasks:\n  - command: echo hi\n"))
	if !errors.Is(err, errors.ErrManifestInvalid) {
		t.Errorf("expected ErrManifestInvalid, got %v", err)
	}
}

func TestValidateMissingCommand(t *testing.T) {
	_, err := Parse([]byte("tasks:\n  - name: fetch\n"))
	if !errors.Is(err, errors.ErrManifestInvalid) {
		t.Errorf("expected ErrManifestInvalid, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "fetch") {
		t.Errorf("expected error to name the task, got %v", err)
	}
}

func TestValidateDuplicateName(t *testing.T) {
	payload := `
tasks:
  - name: build
    command: echo one
  - name: build
    command: echo two
`
	_, err := Parse([]byte(payload))
	if !errors.Is(err, errors.ErrDuplicateTask) {
		t.Errorf("expected ErrDuplicateTask, got %v", err)
	}
}

func TestValidateUnknownDependency(t *testing.T) {
	payload := `
tasks:
  - name: build
    command: echo build
    depends_on: [fetch]
`
	_, err := Parse([]byte(payload))
	if !errors.Is(err, errors.ErrManifestInvalid) {
		t.Errorf("expected ErrManifestInvalid, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "fetch") {
		t.Errorf("expected error to name the missing dependency, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cascade.yaml")
	if err := os.WriteFile(path, []byte(validManifest), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(m.Tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(m.Tasks))
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := Load(path)
	if !errors.Is(err, errors.ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to include the path, got %v", err)
	}
}

func TestLoadInvalidFileIncludesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("tasks: []"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, errors.ErrManifestInvalid) {
		t.Fatalf("expected ErrManifestInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to include the path, got %v", err)
	}
}
