package diag

import "fmt"

// Code identifies a class of errors. The number is stable and meant to be
// matched by callers with errors.Is, so tests and error handlers do not need
// to depend on message texts.
type Code struct {
	Number int
	Text   string
}

// NewCode creates a new Code.
func NewCode(number int, text string) *Code {
	return &Code{number, text}
}

// Error returns the code in the AURnnnn form followed by its text.
func (c *Code) Error() string {
	return fmt.Sprintf("AUR%04d: %s", c.Number, c.Text)
}

// ID returns the code in the AURnnnn form.
func (c *Code) ID() string {
	return fmt.Sprintf("AUR%04d", c.Number)
}
