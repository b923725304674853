// Package manifest loads declarative task manifests for the CLI. A
// manifest names shell-command tasks and the dependencies between them;
// the run command turns one into a task graph.
package manifest

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/cascade/internal/errors"
)

// Task is one task entry in a manifest file.
type Task struct {
	// Name identifies the task within the manifest and in output.
	Name string `yaml:"name"`
	// Command is the shell command the task runs.
	Command string `yaml:"command"`
	// DependsOn lists the names of tasks that must complete first.
	DependsOn []string `yaml:"depends_on,omitempty"`
}

// Manifest is a parsed task manifest.
type Manifest struct {
	// Tasks in file order.
	Tasks []Task `yaml:"tasks"`
}

// Parse decodes and validates a manifest payload.
func Parse(data []byte) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewManifestError("manifest is empty", errors.ErrManifestInvalid)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.NewManifestError("failed to decode manifest", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads a manifest file from disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewManifestError("no such file", errors.ErrManifestNotFound).WithPath(path)
		}
		return nil, errors.NewManifestError("failed to read manifest", err).WithPath(path)
	}

	m, err := Parse(data)
	if err != nil {
		var manifestErr *errors.ManifestError
		if errors.As(err, &manifestErr) {
			manifestErr.WithPath(path)
		}
		return nil, err
	}
	return m, nil
}

// Validate checks structural constraints the scheduler cannot: names must
// be present and unique, commands non-empty, and every depends_on entry
// must name a task in the same manifest. Cycles are left to the graph,
// which detects them during topological sorting.
func (m *Manifest) Validate() error {
	if len(m.Tasks) == 0 {
		return errors.NewManifestError("manifest defines no tasks", errors.ErrManifestInvalid)
	}

	seen := make(map[string]bool, len(m.Tasks))
	for i, task := range m.Tasks {
		if task.Name == "" {
			return errors.NewManifestError(
				fmt.Sprintf("task %d has no name", i), errors.ErrManifestInvalid)
		}
		if task.Command == "" {
			return errors.NewManifestError(
				fmt.Sprintf("task %q has no command", task.Name), errors.ErrManifestInvalid)
		}
		if seen[task.Name] {
			return errors.NewManifestError(
				fmt.Sprintf("task %q defined twice", task.Name), errors.ErrDuplicateTask)
		}
		seen[task.Name] = true
	}

	for _, task := range m.Tasks {
		for _, dep := range task.DependsOn {
			if !seen[dep] {
				return errors.NewManifestError(
					fmt.Sprintf("task %q depends on undefined task %q", task.Name, dep),
					errors.ErrManifestInvalid)
			}
		}
	}
	return nil
}
