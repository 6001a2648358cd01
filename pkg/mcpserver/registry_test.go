package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsRegistry(t *testing.T) {
	tools := Tools()
	require.Len(t, tools, 6)

	seen := map[string]bool{}
	for _, tool := range tools {
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
		assert.False(t, seen[tool.Name], "duplicate tool name %s", tool.Name)
		seen[tool.Name] = true
	}

	for _, name := range []string{
		ToolNavigateTo,
		ToolGetPageContent,
		ToolClickElement,
		ToolFillForm,
		ToolTakeScreenshot,
		ToolExecuteJavaScript,
	} {
		assert.True(t, seen[name], "tool %s missing from registry", name)
	}
}

func TestToolsRequiredParameters(t *testing.T) {
	required := map[string][]string{
		ToolNavigateTo:        {"url"},
		ToolGetPageContent:    nil,
		ToolClickElement:      {"selector"},
		ToolFillForm:          {"fields"},
		ToolTakeScreenshot:    nil,
		ToolExecuteJavaScript: {"code"},
	}

	for _, tool := range Tools() {
		want, ok := required[tool.Name]
		require.True(t, ok, "unexpected tool %s", tool.Name)
		assert.ElementsMatch(t, want, tool.InputSchema.Required, "tool %s", tool.Name)
	}
}

func TestToolsSchemaDefaults(t *testing.T) {
	defaults := map[string]map[string]interface{}{
		ToolNavigateTo:        {"timeout": 30.0},
		ToolGetPageContent:    {"include_links": false},
		ToolClickElement:      {"timeout": 10.0},
		ToolFillForm:          {"submit": false},
		ToolTakeScreenshot:    {"full_page": false},
		ToolExecuteJavaScript: {"return_value": true},
	}

	for _, tool := range Tools() {
		for param, want := range defaults[tool.Name] {
			prop, ok := tool.InputSchema.Properties[param].(map[string]interface{})
			require.True(t, ok, "tool %s has no %s property", tool.Name, param)
			assert.Equal(t, want, prop["default"], "tool %s parameter %s", tool.Name, param)
		}
	}
}

func TestToolNamesMatchRegistryOrder(t *testing.T) {
	names := ToolNames()
	tools := Tools()
	require.Len(t, names, len(tools))
	for i, tool := range tools {
		assert.Equal(t, tool.Name, names[i])
	}
}
