package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/entrhq/surf/pkg/logging"
)

// SessionController is the slice of the browser session manager the
// dispatcher needs: lazy startup before the first routed call, and a status
// report for diagnostics.
type SessionController interface {
	EnsureStarted() error
	Info() map[string]interface{}
}

// ActionRunner is the set of browser operations the dispatcher routes to.
// There is one method per registered tool.
type ActionRunner interface {
	NavigateTo(ctx context.Context, url, waitFor string, timeoutSec float64) (map[string]interface{}, error)
	GetPageContent(ctx context.Context, selector string, includeLinks bool) (map[string]interface{}, error)
	ClickElement(ctx context.Context, selector string, timeoutSec float64) (map[string]interface{}, error)
	FillForm(ctx context.Context, fields map[string]string, submit bool) (map[string]interface{}, error)
	TakeScreenshot(ctx context.Context, selector string, fullPage bool) (map[string]interface{}, error)
	ExecuteJavaScript(ctx context.Context, code string, returnValue bool) (map[string]interface{}, error)
}

// Dispatcher validates tool invocations, lazily starts the browser session,
// routes to the matching action and wraps every outcome in the uniform
// response envelope. No error escapes Dispatch as a raw failure.
type Dispatcher struct {
	session SessionController
	actions ActionRunner
	log     *logging.Logger
}

// NewDispatcher wires the dispatcher to a session controller and action set.
func NewDispatcher(session SessionController, actions ActionRunner, log *logging.Logger) *Dispatcher {
	return &Dispatcher{
		session: session,
		actions: actions,
		log:     log,
	}
}

// Dispatch handles one tool invocation end to end. Unknown tool names and
// malformed arguments are rejected before the session is touched; the session
// is then lazily started, the action invoked, and the result serialized.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) (result *mcp.CallToolResult) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorf("panic in tool %s: %v", name, r)
			result = errorResult(name, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if args == nil {
		args = map[string]interface{}{}
	}

	route, err := d.route(name, args)
	if err != nil {
		d.log.Warnf("rejected tool call %s: %v", name, err)
		return errorResult(name, err.Error())
	}

	if err := d.session.EnsureStarted(); err != nil {
		d.log.Errorf("session startup failed for tool %s: %v", name, err)
		return errorResult(name, err.Error())
	}
	d.log.Debugf("session: %v", d.session.Info())

	payload, err := route(ctx)
	if err != nil {
		d.log.Warnf("tool %s failed: %v", name, err)
		return errorResult(name, err.Error())
	}

	return successResult(name, payload)
}

// route resolves the tool name and arguments into a ready-to-run closure.
// All argument validation happens here, before any session interaction.
func (d *Dispatcher) route(name string, args map[string]interface{}) (func(context.Context) (map[string]interface{}, error), error) {
	switch name {
	case ToolNavigateTo:
		url, err := requireString(args, "url")
		if err != nil {
			return nil, err
		}
		waitFor := stringArg(args, "wait_for", "")
		timeout := floatArg(args, "timeout", defaultNavigateTimeoutSec)
		return func(ctx context.Context) (map[string]interface{}, error) {
			return d.actions.NavigateTo(ctx, url, waitFor, timeout)
		}, nil

	case ToolGetPageContent:
		selector := stringArg(args, "selector", "")
		includeLinks := boolArg(args, "include_links", false)
		return func(ctx context.Context) (map[string]interface{}, error) {
			return d.actions.GetPageContent(ctx, selector, includeLinks)
		}, nil

	case ToolClickElement:
		selector, err := requireString(args, "selector")
		if err != nil {
			return nil, err
		}
		timeout := floatArg(args, "timeout", defaultClickTimeoutSec)
		return func(ctx context.Context) (map[string]interface{}, error) {
			return d.actions.ClickElement(ctx, selector, timeout)
		}, nil

	case ToolFillForm:
		fields, err := stringMapArg(args, "fields")
		if err != nil {
			return nil, err
		}
		submit := boolArg(args, "submit", false)
		return func(ctx context.Context) (map[string]interface{}, error) {
			return d.actions.FillForm(ctx, fields, submit)
		}, nil

	case ToolTakeScreenshot:
		selector := stringArg(args, "selector", "")
		fullPage := boolArg(args, "full_page", false)
		return func(ctx context.Context) (map[string]interface{}, error) {
			return d.actions.TakeScreenshot(ctx, selector, fullPage)
		}, nil

	case ToolExecuteJavaScript:
		code, err := requireString(args, "code")
		if err != nil {
			return nil, err
		}
		returnValue := boolArg(args, "return_value", true)
		return func(ctx context.Context) (map[string]interface{}, error) {
			return d.actions.ExecuteJavaScript(ctx, code, returnValue)
		}, nil
	}

	return nil, fmt.Errorf("unknown tool %q", name)
}

// errorResult wraps a failure message in the uniform error envelope.
func errorResult(name, message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error in tool '%s': %s", name, message))
}

// successResult serializes a success payload as indented JSON text.
func successResult(name string, payload map[string]interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResult(name, fmt.Sprintf("serializing result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}
