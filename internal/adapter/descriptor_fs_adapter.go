// Package adapter contains the infrastructure adapters for the unrealctl CLI.
package adapter

import (
	"log/slog"
	"os"

	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

// DescriptorFSAdapter abstracts the filesystem access needed to load project
// descriptors so the workflow can be tested without touching the disk.
type DescriptorFSAdapter interface {
	// ReadDescriptor returns the full content of the descriptor at path.
	ReadDescriptor(path m.Path) ([]byte, error)
}

// LocalDescriptorFSAdapter reads descriptors from the local filesystem.
type LocalDescriptorFSAdapter struct{}

// NewLocalDescriptorFSAdapter constructs a LocalDescriptorFSAdapter.
func NewLocalDescriptorFSAdapter() *LocalDescriptorFSAdapter {
	return &LocalDescriptorFSAdapter{}
}

// ReadDescriptor reads the file at path. Errors are returned unwrapped so the
// caller can show the operating system's message as is.
func (a *LocalDescriptorFSAdapter) ReadDescriptor(path m.Path) ([]byte, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		slog.Debug("failed to read descriptor", "path", path, "error", err)
		return nil, err
	}

	slog.Debug("read descriptor", "path", path, "bytes", len(data))

	return data, nil
}
