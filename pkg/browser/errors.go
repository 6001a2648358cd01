package browser

import (
	"errors"
	"fmt"
)

// ErrNotStarted is returned when a page is requested before the browser
// session has been started and no context exists to create one.
var ErrNotStarted = errors.New("browser not started")

// StartupError reports a failure during session startup. Step names the
// lifecycle stage that failed (driver, launch, context, page).
type StartupError struct {
	Step string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("browser startup failed at %s: %v", e.Step, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
