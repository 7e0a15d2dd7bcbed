package model

import "time"

// ToolKind identifies which external utility an invocation targets.
type ToolKind int

const (
	// BuildTool compiles a project.
	BuildTool ToolKind = iota
	// PackageTool cooks and packages a project.
	PackageTool
)

func (k ToolKind) String() string {
	switch k {
	case BuildTool:
		return "build"
	case PackageTool:
		return "package"
	}

	return "unknown"
}

// OutputHeader is printed before the captured tool output.
func (k ToolKind) OutputHeader() string {
	if k == PackageTool {
		return "Package output:"
	}

	return "Build output:"
}

// ProcessName names the activity in failure messages ("Error during <name> process").
func (k ToolKind) ProcessName() string {
	if k == PackageTool {
		return "packaging"
	}

	return "build"
}

// ProgressLabel is shown while the tool is running.
func (k ToolKind) ProgressLabel() string {
	if k == PackageTool {
		return "Packaging"
	}

	return "Building"
}

// ToolInvocation describes a single run of an external tool.
type ToolInvocation struct {
	Kind ToolKind
	// Tool is the script or executable to run.
	Tool string
	// Shell, when set, is used as interpreter: Shell Tool Args...
	Shell string
	Args  []string
	// Timeout of zero waits for the tool indefinitely.
	Timeout time.Duration
}

// Argv returns the program name and its arguments.
func (i ToolInvocation) Argv() (string, []string) {
	if i.Shell == "" {
		return i.Tool, append([]string(nil), i.Args...)
	}

	args := make([]string, 0, len(i.Args)+1)
	args = append(args, i.Tool)
	args = append(args, i.Args...)

	return i.Shell, args
}

// CommandLine returns the full argument vector, program first.
func (i ToolInvocation) CommandLine() []string {
	name, args := i.Argv()

	return append([]string{name}, args...)
}
