// Package browser implements the browser-automation actions exposed as MCP
// tools: navigation, content extraction, clicking, form filling, screenshot
// capture, and JavaScript execution.
//
// Each action obtains the current page from the session manager, performs one
// delegated Playwright operation (plus at most one bounded auxiliary wait),
// and returns either a structured result payload or an error. Errors never
// carry raw Playwright failures upward: timeouts and delegated failures are
// rewritten into messages naming the operation and its bound, and the caller
// wraps them into the protocol error envelope. Partial outcomes, like a form
// fill where some fields failed, are reported inside the success payload.
//
// # Security
//
// execute_javascript runs the supplied code with full page privilege. There
// is no sandboxing between the script and the page: the script can read and
// mutate any page state, issue requests with the page's cookies, and observe
// responses. This is a deliberate capability of the tool surface, not an
// oversight; deployments that cannot accept it should not expose the tool.
//
// Navigation targets are gated twice before any browser interaction: a URL
// shape check (scheme and host) and an optional glob-based access policy.
package browser
