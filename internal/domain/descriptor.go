// Package domain implements the unrealctl operations on top of the adapters.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

// ParseProjectInfo decodes a project descriptor. Keys are matched
// case-insensitively and missing keys keep their defaults.
//
// An empty document or a JSON null yields (nil, nil): there is nothing to show,
// but the content was not malformed either.
func ParseProjectInfo(data []byte) (*m.ProjectInfo, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	info := m.NewProjectInfo()
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("invalid project descriptor: %w", err)
	}

	if info == nil {
		return nil, nil
	}

	// An explicit null list decodes to nil.
	if info.Plugins == nil {
		info.Plugins = []string{}
	}

	return info, nil
}
