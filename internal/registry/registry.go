// Package registry provides a central registry for MCP tools.
package registry

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-docsmith/internal/tools"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]tools.Tool)
	disabled map[string]bool
	logger   *logrus.Logger
)

// Init configures the shared logger and reads DOCSMITH_DISABLED_TOOLS, a
// comma-separated list of tool names to hide from clients. Call it once
// before serving.
func Init(l *logrus.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
	disabled = make(map[string]bool)
	for _, name := range strings.Split(os.Getenv("DOCSMITH_DISABLED_TOOLS"), ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			disabled[name] = true
		}
	}
}

// Register adds a tool to the registry. Tools call this from init(), so
// importing a tool package is what exposes it.
func Register(tool tools.Tool) {
	mu.Lock()
	defer mu.Unlock()
	name := tool.Definition().Name
	if _, exists := registry[name]; exists {
		panic("registry: duplicate tool " + name)
	}
	registry[name] = tool
}

// GetTool retrieves an enabled tool by name.
func GetTool(name string) (tools.Tool, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if disabled[name] {
		return nil, false
	}
	tool, ok := registry[name]
	return tool, ok
}

// GetTools returns all enabled tools keyed by name.
func GetTools() map[string]tools.Tool {
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]tools.Tool, len(registry))
	for name, tool := range registry {
		if disabled[name] {
			continue
		}
		out[name] = tool
	}
	return out
}

// ToolNames returns the enabled tool names in sorted order.
func ToolNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		if !disabled[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// GetLogger returns the shared logger, defaulting to a discard logger when
// Init has not run (tests mostly).
func GetLogger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		l.SetLevel(logrus.WarnLevel)
		return l
	}
	return logger
}
