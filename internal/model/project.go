// Package model defines the data structures shared by unrealctl.
package model

// Path represents a file system path.
type Path string

// DefaultUnrealVersion is reported when a descriptor does not name an engine version.
const DefaultUnrealVersion = "Unknown"

// ProjectInfo is the content of a project descriptor file.
type ProjectInfo struct {
	Name          string   `json:"Name" yaml:"Name"`
	UnrealVersion string   `json:"UnrealVersion" yaml:"UnrealVersion"`
	FromSource    bool     `json:"FromSource" yaml:"FromSource"`
	Plugins       []string `json:"Plugins" yaml:"Plugins"`
}

// NewProjectInfo returns a ProjectInfo populated with the descriptor defaults.
func NewProjectInfo() *ProjectInfo {
	return &ProjectInfo{
		Name:          "",
		UnrealVersion: DefaultUnrealVersion,
		FromSource:    false,
		Plugins:       []string{},
	}
}

// OutputFormat selects how project information is rendered.
type OutputFormat string

const (
	// FormatText is the line-oriented "Label: value" format.
	FormatText OutputFormat = "text"
	// FormatTable renders the fields as a two-column table.
	FormatTable OutputFormat = "table"
	// FormatYAML renders the descriptor as a YAML document.
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat maps a user supplied value to an OutputFormat.
// Unknown values report ok=false.
func ParseOutputFormat(value string) (OutputFormat, bool) {
	switch OutputFormat(value) {
	case "", FormatText:
		return FormatText, true
	case FormatTable:
		return FormatTable, true
	case FormatYAML, "yml":
		return FormatYAML, true
	}

	return FormatText, false
}
