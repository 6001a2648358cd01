package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names exposed by the server. These are part of the external contract
// and must not change between releases.
const (
	ToolNavigateTo        = "navigate_to"
	ToolGetPageContent    = "get_page_content"
	ToolClickElement      = "click_element"
	ToolFillForm          = "fill_form"
	ToolTakeScreenshot    = "take_screenshot"
	ToolExecuteJavaScript = "execute_javascript"
)

// Argument defaults shared by the registry and the dispatcher.
const (
	defaultNavigateTimeoutSec = 30.0
	defaultClickTimeoutSec    = 10.0
)

// Tools returns the static tool descriptors. The parameter names, types and
// defaults are client-facing schema and mirror the dispatch routes exactly.
func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(ToolNavigateTo,
			mcp.WithDescription("Navigate the browser to a URL and wait for the page to load."),
			mcp.WithString("url",
				mcp.Description("The URL to navigate to (http, https, ftp or ftps)"),
				mcp.Required(),
			),
			mcp.WithString("wait_for",
				mcp.Description("Optional CSS selector to wait for after navigation completes"),
			),
			mcp.WithNumber("timeout",
				mcp.Description("Navigation timeout in seconds"),
				mcp.DefaultNumber(defaultNavigateTimeoutSec),
			),
		),
		mcp.NewTool(ToolGetPageContent,
			mcp.WithDescription("Extract the visible text content of the current page, optionally scoped to a selector."),
			mcp.WithString("selector",
				mcp.Description("Optional CSS selector to scope extraction to a single element"),
			),
			mcp.WithBoolean("include_links",
				mcp.Description("Include the page's links as text/URL pairs"),
				mcp.DefaultBool(false),
			),
		),
		mcp.NewTool(ToolClickElement,
			mcp.WithDescription("Click an element on the current page once it is visible and enabled."),
			mcp.WithString("selector",
				mcp.Description("CSS selector of the element to click"),
				mcp.Required(),
			),
			mcp.WithNumber("timeout",
				mcp.Description("Seconds to wait for the element to appear"),
				mcp.DefaultNumber(defaultClickTimeoutSec),
			),
		),
		mcp.NewTool(ToolFillForm,
			mcp.WithDescription("Fill form fields on the current page and optionally submit the form."),
			mcp.WithObject("fields",
				mcp.Description("Mapping of CSS selector to the value to fill in"),
				mcp.Required(),
			),
			mcp.WithBoolean("submit",
				mcp.Description("Submit the form after filling"),
				mcp.DefaultBool(false),
			),
		),
		mcp.NewTool(ToolTakeScreenshot,
			mcp.WithDescription("Capture the current page or a single element as a base64-encoded PNG."),
			mcp.WithBoolean("full_page",
				mcp.Description("Capture the full scrollable page instead of the viewport"),
				mcp.DefaultBool(false),
			),
			mcp.WithString("selector",
				mcp.Description("Optional CSS selector of a single element to capture"),
			),
		),
		mcp.NewTool(ToolExecuteJavaScript,
			mcp.WithDescription("Execute JavaScript in the context of the current page. The code runs with full page privileges."),
			mcp.WithString("code",
				mcp.Description("JavaScript code to execute"),
				mcp.Required(),
			),
			mcp.WithBoolean("return_value",
				mcp.Description("Include the script's return value in the response"),
				mcp.DefaultBool(true),
			),
		),
	}
}

// ToolNames returns the registered tool names in registry order.
func ToolNames() []string {
	tools := Tools()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return names
}
