package browser

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/surf/pkg/logging"
)

// PageProvider supplies the current page to actions. The session manager
// satisfies this interface.
type PageProvider interface {
	CurrentPage() (playwright.Page, error)
}

// Actions implements the browser operations exposed as tools. Each method
// acquires the current page, performs one delegated browser operation, and
// returns either a success payload or an error describing the failure.
type Actions struct {
	pages  PageProvider
	policy *URLPolicy
	log    *logging.Logger
}

// NewActions creates the action set backed by the given page provider.
func NewActions(pages PageProvider, policy *URLPolicy, log *logging.Logger) *Actions {
	return &Actions{
		pages:  pages,
		policy: policy,
		log:    log,
	}
}

// NavigateTo loads a URL in the current page, optionally waiting for a
// selector to appear afterwards. The URL is validated and checked against the
// URL policy before any browser interaction.
func (a *Actions) NavigateTo(ctx context.Context, rawURL, waitFor string, timeoutSec float64) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsValidURL(rawURL) {
		return nil, fmt.Errorf("invalid URL %q: must use http, https, ftp or ftps and include a valid host", rawURL)
	}
	if !a.policy.Allowed(rawURL) {
		return nil, fmt.Errorf("URL %q is blocked by the configured URL policy", rawURL)
	}

	page, err := a.pages.CurrentPage()
	if err != nil {
		return nil, err
	}

	timeoutMs := timeoutSec * 1000
	a.log.Infof("navigating to %s (timeout %.1fs)", rawURL, timeoutSec)

	// Default wait state (load) applies; the page is usable when Goto returns.
	resp, err := page.Goto(rawURL, playwright.PageGotoOptions{
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("navigation to %s timed out after %.1fs", rawURL, timeoutSec)
		}
		return nil, fmt.Errorf("navigation to %s failed: %w", rawURL, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("navigation to %s produced no response", rawURL)
	}

	payload := map[string]interface{}{
		"success":     true,
		"url":         page.URL(),
		"status_code": resp.Status(),
		"loaded":      true,
	}
	if title, err := page.Title(); err == nil {
		payload["title"] = title
	}

	if waitFor != "" {
		if _, err := page.WaitForSelector(waitFor, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(timeoutMs),
		}); err != nil {
			if isTimeout(err) {
				return nil, fmt.Errorf("navigated to %s but timed out after %.1fs waiting for selector %q", page.URL(), timeoutSec, waitFor)
			}
			return nil, fmt.Errorf("navigated to %s but waiting for selector %q failed: %w", page.URL(), waitFor, err)
		}
		payload["waited_for"] = waitFor
	}

	return payload, nil
}

// GetPageContent extracts cleaned text from the page, scoped to a selector
// when one is given, and optionally collects the page's links with hrefs
// resolved to absolute URLs.
func (a *Actions) GetPageContent(ctx context.Context, selector string, includeLinks bool) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := a.pages.CurrentPage()
	if err != nil {
		return nil, err
	}

	var content string
	if selector != "" {
		elements, err := page.QuerySelectorAll(selector)
		if err != nil {
			return nil, fmt.Errorf("querying selector %q failed: %w", selector, err)
		}
		if len(elements) == 0 {
			return nil, fmt.Errorf("no elements found matching selector %q", selector)
		}
		// Every match contributes a block; empty matches are dropped.
		parts := make([]string, 0, len(elements))
		for _, el := range elements {
			text, err := el.InnerText()
			if err != nil {
				return nil, fmt.Errorf("reading text of %q failed: %w", selector, err)
			}
			if cleaned := CleanText(text); cleaned != "" {
				parts = append(parts, cleaned)
			}
		}
		content = strings.Join(parts, "\n\n")
	} else {
		text, err := page.InnerText("body")
		if err != nil {
			return nil, fmt.Errorf("reading page text failed: %w", err)
		}
		content = CleanText(text)
	}

	payload := map[string]interface{}{
		"success":        true,
		"url":            page.URL(),
		"content":        content,
		"content_length": len(content),
	}
	if title, err := page.Title(); err == nil {
		payload["title"] = title
	}
	if selector != "" {
		payload["selector_used"] = selector
	}

	if includeLinks {
		document, err := page.Content()
		if err != nil {
			return nil, fmt.Errorf("reading page HTML failed: %w", err)
		}
		links, err := ExtractLinks(document, page.URL())
		if err != nil {
			return nil, fmt.Errorf("extracting links failed: %w", err)
		}
		payload["links"] = links
		payload["link_count"] = len(links)
	}

	return payload, nil
}

// ClickElement clicks the element matching the selector once it is present,
// visible and enabled, then waits briefly for any resulting navigation or DOM
// mutation to settle.
func (a *Actions) ClickElement(ctx context.Context, selector string, timeoutSec float64) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(selector) == "" {
		return nil, errors.New("selector must not be empty")
	}

	page, err := a.pages.CurrentPage()
	if err != nil {
		return nil, err
	}

	timeoutMs := timeoutSec * 1000
	el, err := page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("element %q not found within %.1fs", selector, timeoutSec)
		}
		return nil, fmt.Errorf("waiting for element %q failed: %w", selector, err)
	}

	visible, err := el.IsVisible()
	if err != nil {
		return nil, fmt.Errorf("checking visibility of %q failed: %w", selector, err)
	}
	if !visible {
		return nil, fmt.Errorf("element %q is not visible", selector)
	}

	enabled, err := el.IsEnabled()
	if err != nil {
		return nil, fmt.Errorf("checking enabled state of %q failed: %w", selector, err)
	}
	if !enabled {
		return nil, fmt.Errorf("element %q is not enabled", selector)
	}

	if err := el.Click(); err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("clicking %q timed out after %.1fs", selector, timeoutSec)
		}
		return nil, fmt.Errorf("clicking %q failed: %w", selector, err)
	}

	// Allow any click-triggered navigation or mutation to settle.
	page.WaitForTimeout(clickSettleMs)

	return map[string]interface{}{
		"success":   true,
		"selector":  selector,
		"clicked":   true,
		"final_url": page.URL(),
	}, nil
}

// FillForm sets values on form fields independently, so one field's failure
// does not abort the others, and optionally submits the form afterwards.
// Fields are processed in sorted selector order so the Enter-key submission
// fallback targets a deterministic field.
func (a *Actions) FillForm(ctx context.Context, fields map[string]string, submit bool) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.New("fields must not be empty")
	}

	page, err := a.pages.CurrentPage()
	if err != nil {
		return nil, err
	}

	selectors := make([]string, 0, len(fields))
	for sel := range fields {
		selectors = append(selectors, sel)
	}
	sort.Strings(selectors)

	filled := []map[string]interface{}{}
	failed := []map[string]interface{}{}
	lastFilled := ""

	for _, sel := range selectors {
		el, err := page.WaitForSelector(sel, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(fieldWaitTimeoutMs),
		})
		if err != nil || el == nil {
			reason := "element not found"
			if err != nil && !isTimeout(err) {
				reason = err.Error()
			}
			failed = append(failed, map[string]interface{}{
				"selector": sel,
				"error":    reason,
			})
			continue
		}

		if err := el.Fill(""); err != nil {
			failed = append(failed, map[string]interface{}{
				"selector": sel,
				"error":    fmt.Sprintf("clearing field failed: %v", err),
			})
			continue
		}
		if err := el.Fill(fields[sel]); err != nil {
			failed = append(failed, map[string]interface{}{
				"selector": sel,
				"error":    fmt.Sprintf("setting value failed: %v", err),
			})
			continue
		}

		filled = append(filled, map[string]interface{}{
			"selector": sel,
			"value":    fields[sel],
		})
		lastFilled = sel
	}

	payload := map[string]interface{}{
		"success":       true,
		"filled_count":  len(filled),
		"failed_count":  len(failed),
		"filled_fields": filled,
		"failed_fields": failed,
	}

	if submit && len(filled) > 0 {
		submitted, submitErr := a.submitForm(page, lastFilled)
		payload["submitted"] = submitted
		if submitErr != nil {
			payload["submit_error"] = submitErr.Error()
		} else {
			payload["final_url"] = page.URL()
		}
	} else if submit {
		payload["submitted"] = false
		payload["submit_error"] = "no fields were filled, submission skipped"
	}

	return payload, nil
}

// submitForm probes a fixed ordered list of common submit controls, falling
// back to pressing Enter on the last successfully filled field.
func (a *Actions) submitForm(page playwright.Page, lastFilled string) (bool, error) {
	for _, sel := range submitSelectors {
		el, err := page.QuerySelector(sel)
		if err != nil || el == nil {
			continue
		}
		visible, err := el.IsVisible()
		if err != nil || !visible {
			continue
		}
		if err := el.Click(); err != nil {
			return false, fmt.Errorf("clicking submit control %q failed: %w", sel, err)
		}
		page.WaitForTimeout(submitSettleMs)
		return true, nil
	}

	if err := page.Press(lastFilled, "Enter"); err != nil {
		return false, fmt.Errorf("pressing Enter on %q failed: %w", lastFilled, err)
	}
	page.WaitForTimeout(submitSettleMs)
	return true, nil
}

// TakeScreenshot captures the page or a single element as a base64-encoded
// PNG. A selector takes precedence over the full-page flag when both are
// given.
func (a *Actions) TakeScreenshot(ctx context.Context, selector string, fullPage bool) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := a.pages.CurrentPage()
	if err != nil {
		return nil, err
	}

	var buf []byte
	var kind string

	if selector != "" {
		el, err := page.QuerySelector(selector)
		if err != nil {
			return nil, fmt.Errorf("querying selector %q failed: %w", selector, err)
		}
		if el == nil {
			return nil, fmt.Errorf("no element matches selector %q", selector)
		}
		buf, err = el.Screenshot()
		if err != nil {
			return nil, fmt.Errorf("capturing element %q failed: %w", selector, err)
		}
		kind = "element"
	} else {
		buf, err = page.Screenshot(playwright.PageScreenshotOptions{
			FullPage: playwright.Bool(fullPage),
		})
		if err != nil {
			return nil, fmt.Errorf("capturing page failed: %w", err)
		}
		if fullPage {
			kind = "full_page"
		} else {
			kind = "viewport"
		}
	}

	payload := map[string]interface{}{
		"success":    true,
		"screenshot": base64.StdEncoding.EncodeToString(buf),
		"format":     "png",
		"type":       kind,
		"size_bytes": len(buf),
		"url":        page.URL(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	if selector != "" {
		payload["selector"] = selector
	}

	return payload, nil
}

// ExecuteJavaScript evaluates code in the page. The code runs with full page
// privilege, see the package documentation.
func (a *Actions) ExecuteJavaScript(ctx context.Context, code string, returnValue bool) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("code must not be empty")
	}

	page, err := a.pages.CurrentPage()
	if err != nil {
		return nil, err
	}

	a.log.Infof("executing script (%d bytes, return_value=%v)", len(code), returnValue)

	result, err := page.Evaluate(code)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("script execution timed out (code: %s)", Truncate(code, 200))
		}
		return nil, fmt.Errorf("script execution failed: %v (code: %s)", err, Truncate(code, 200))
	}

	payload := map[string]interface{}{
		"success":        true,
		"returned_value": returnValue,
		"url":            page.URL(),
	}
	if returnValue {
		payload["result"] = result
	} else {
		payload["executed"] = true
	}

	return payload, nil
}

// isTimeout reports whether the error came from a bounded wait expiring.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}
