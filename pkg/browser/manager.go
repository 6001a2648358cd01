// Package browser manages the lifecycle of the single shared browser session:
// one Playwright driver process, one browser, one isolated context, and a
// current page. The session is created lazily on first use and torn down in
// strict page, context, browser, driver order, with each teardown step
// isolated so a failing step never blocks the ones after it.
package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/surf/pkg/config"
	"github.com/entrhq/surf/pkg/logging"
)

// launchArgs are passed to the browser on every launch. The automation-control
// flag keeps sites from fingerprinting the session as a bot; web security is
// relaxed because extraction tools routinely cross origins.
var launchArgs = []string{
	"--no-sandbox",
	"--disable-blink-features=AutomationControlled",
	"--disable-web-security",
}

// Manager owns the browser session. At most one session exists per process;
// all lifecycle methods are safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	config config.Config
	log    *logging.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	// uaPending records a user agent change made while a context was live.
	// The engine only applies user agents at context creation, so the new
	// value takes effect on the next restart.
	uaPending bool
}

// NewManager creates a manager with the given configuration. The browser is
// not started until EnsureStarted or the first page request.
func NewManager(cfg config.Config, log *logging.Logger) *Manager {
	return &Manager{
		config: cfg,
		log:    log,
	}
}

// EnsureStarted starts the session if it is not already running. Calling it
// on a running session is a no-op. On failure, everything partially created
// is torn down before the error is returned.
func (m *Manager) EnsureStarted() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureStartedLocked()
}

func (m *Manager) ensureStartedLocked() error {
	if m.pw != nil {
		return nil
	}

	m.log.Infof("starting browser session: type=%s headless=%v timeout=%vms",
		m.config.BrowserType, m.config.Headless, m.config.TimeoutMs)

	// Driver output must stay off the protocol streams
	runOpts := &playwright.RunOptions{
		Browsers: []string{m.config.BrowserType},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return &StartupError{Step: "driver", Err: fmt.Errorf("failed to install playwright: %w", err)}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return &StartupError{Step: "driver", Err: fmt.Errorf("failed to start playwright: %w", err)}
	}
	m.pw = pw

	browser, err := m.browserType().Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.Headless),
		Args:     launchArgs,
	})
	if err != nil {
		m.cleanupLocked()
		return &StartupError{Step: "launch", Err: fmt.Errorf("failed to launch browser: %w", err)}
	}
	m.browser = browser

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.config.ViewportWidth,
			Height: m.config.ViewportHeight,
		},
		UserAgent:         playwright.String(m.config.UserAgent),
		IgnoreHttpsErrors: playwright.Bool(m.config.IgnoreHTTPSErrors),
	})
	if err != nil {
		m.cleanupLocked()
		return &StartupError{Step: "context", Err: fmt.Errorf("failed to create context: %w", err)}
	}
	m.context = context
	m.context.SetDefaultTimeout(m.config.TimeoutMs)
	m.uaPending = false

	page, err := context.NewPage()
	if err != nil {
		m.cleanupLocked()
		return &StartupError{Step: "page", Err: fmt.Errorf("failed to create page: %w", err)}
	}
	m.page = page

	m.log.Infof("browser session started: %s", m.config.BrowserType)
	return nil
}

// browserType maps the configured engine kind to a Playwright browser type.
// Config validation guarantees the kind is known; chromium is the fallback.
func (m *Manager) browserType() playwright.BrowserType {
	switch m.config.BrowserType {
	case config.EngineFirefox:
		return m.pw.Firefox
	case config.EngineWebKit:
		return m.pw.WebKit
	default:
		return m.pw.Chromium
	}
}

// CurrentPage returns the active page, lazily opening one when the context
// exists but no page is current. Returns ErrNotStarted when there is no
// context to open a page in.
func (m *Manager) CurrentPage() (playwright.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.page != nil {
		return m.page, nil
	}

	if m.context == nil {
		return nil, ErrNotStarted
	}

	page, err := m.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	m.page = page
	return page, nil
}

// NewPage opens an additional page in the existing context and makes it
// current.
func (m *Manager) NewPage() (playwright.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.context == nil {
		return nil, ErrNotStarted
	}

	page, err := m.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	m.page = page
	m.log.Debugf("opened new page")
	return page, nil
}

// ClosePage closes the given page, or the current one when page is nil. When
// the closed page was current, another open page becomes current if any
// exist; otherwise the next CurrentPage call opens one lazily.
func (m *Manager) ClosePage(page playwright.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := page
	if target == nil {
		target = m.page
	}
	if target == nil {
		return nil
	}

	err := target.Close()

	if target == m.page {
		m.page = nil
		if m.context != nil {
			if pages := m.context.Pages(); len(pages) > 0 {
				m.page = pages[0]
			}
		}
	}

	if err != nil {
		return fmt.Errorf("failed to close page: %w", err)
	}
	m.log.Debugf("page closed")
	return nil
}

// SetViewport updates the configured viewport and applies it to the current
// page when one exists.
func (m *Manager) SetViewport(width, height int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config.ViewportWidth = width
	m.config.ViewportHeight = height

	if m.page == nil {
		return nil
	}
	if err := m.page.SetViewportSize(width, height); err != nil {
		return fmt.Errorf("failed to set viewport: %w", err)
	}
	m.log.Debugf("viewport set to %dx%d", width, height)
	return nil
}

// SetUserAgent records a new user agent. The engine applies user agents only
// at context creation, so when the session is already running the change is
// deferred until the next restart; the returned applied flag is false in that
// case and Info reports the pending change.
func (m *Manager) SetUserAgent(agent string) (applied bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config.UserAgent = agent

	if m.pw == nil {
		return true
	}

	m.uaPending = true
	m.log.Warnf("user agent change requires restart to take effect")
	return false
}

// Cleanup tears the session down in page, context, browser, driver order.
// Each step's error is logged and swallowed so later steps still run.
// Safe to call when nothing is running.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupLocked()
}

func (m *Manager) cleanupLocked() {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"page", func() error {
			if m.page == nil {
				return nil
			}
			err := m.page.Close()
			m.page = nil
			return err
		}},
		{"context", func() error {
			if m.context == nil {
				return nil
			}
			err := m.context.Close()
			m.context = nil
			return err
		}},
		{"browser", func() error {
			if m.browser == nil {
				return nil
			}
			err := m.browser.Close()
			m.browser = nil
			return err
		}},
		{"driver", func() error {
			if m.pw == nil {
				return nil
			}
			err := m.pw.Stop()
			m.pw = nil
			return err
		}},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			m.log.Warnf("cleanup: failed to close %s: %v", step.name, err)
		}
	}
}

// Restart tears down the session and starts a fresh one with the current
// configuration. Deferred user agent changes take effect here.
func (m *Manager) Restart() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.log.Infof("restarting browser session")
	m.cleanupLocked()
	return m.ensureStartedLocked()
}

// Started reports whether the session is running.
func (m *Manager) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pw != nil
}

// Info returns a status report for the session.
func (m *Manager) Info() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser == nil {
		return map[string]interface{}{"status": "not_started"}
	}

	info := map[string]interface{}{
		"status":       "running",
		"browser_type": m.config.BrowserType,
		"headless":     m.config.Headless,
		"contexts":     len(m.browser.Contexts()),
		"viewport":     fmt.Sprintf("%dx%d", m.config.ViewportWidth, m.config.ViewportHeight),
	}

	if m.context != nil {
		info["pages"] = len(m.context.Pages())
	}
	if m.page != nil {
		info["current_url"] = m.page.URL()
	}
	if m.uaPending {
		info["user_agent_pending"] = true
	}
	return info
}
