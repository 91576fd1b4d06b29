package cmd

import "fmt"

// Messages shown when a check command rejects its argument before calling the API.
const (
	msgInvalidURL    = "Please enter a valid URL"
	msgInvalidDomain = "Please enter a valid domain name"
)

// ValidationError reports an argument rejected client-side.
type ValidationError struct {
	Input   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %q", e.Message, e.Input)
}
