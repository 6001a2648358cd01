package browser

// fieldWaitTimeoutMs bounds the per-field selector wait during form filling,
// in milliseconds. Fields are independent, so a missing field costs at most
// this long.
const fieldWaitTimeoutMs = 5000.0

// clickSettleMs is the post-click pause allowing navigation or DOM mutation
// triggered by the click to settle before the result is reported.
const clickSettleMs = 500.0

// submitSettleMs is the post-submission pause allowing the submitted page to
// begin loading before the final URL is captured.
const submitSettleMs = 1000.0

// submitSelectors is the ordered list of controls probed when form submission
// is requested. The order is part of the observable behavior: the first match
// is clicked, and when none match, Enter is pressed on the last successfully
// filled field.
var submitSelectors = []string{
	`input[type="submit"]`,
	`button[type="submit"]`,
	`button:has-text("Submit")`,
	`button:has-text("Send")`,
	`button:has-text("Login")`,
}

// Link is a hyperlink extracted from a page, with its href resolved to an
// absolute URL.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}
