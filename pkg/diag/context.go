package diag

import (
	"fmt"
	"strings"
)

// Ranging is the byte range [From, To) of a source.
type Ranging struct {
	From int
	To   int
}

// Range returns r. Types embedding Ranging implement Ranger with it.
func (r Ranging) Range() Ranging { return r }

// Ranger is implemented by values that cover a range of a source.
type Ranger interface {
	Range() Ranging
}

// Context locates a range of an expression source, for errors that point to
// the offending text.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a Context for the range r of source.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritLineBegin   = "\033[1;4m"
	culpritLineEnd     = "\033[m"
	culpritPlaceHolder = "^"
)

// Position returns the 1-based line and column of the start of the range.
// Columns count runes.
func (c *Context) Position() (line, col int) {
	before := c.Source[:clamp(c.From, len(c.Source))]
	line = strings.Count(before, "\n") + 1
	col = len([]rune(before[strings.LastIndexByte(before, '\n')+1:])) + 1
	return line, col
}

// Show shows the Context on one line, with the culprit highlighted using ANSI
// escape sequences when color is true and delimited with "<" and ">"
// otherwise.
func (c *Context) Show(color bool) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	line, col := c.Position()
	head := lastLine(c.Source[:c.From])
	culprit := c.Source[c.From:c.To]
	tail := firstLine(c.Source[c.To:])
	if i := strings.IndexByte(culprit, '\n'); i != -1 {
		culprit, tail = culprit[:i], ""
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	begin, end := "<", ">"
	if color {
		begin, end = culpritLineBegin, culpritLineEnd
	}
	return fmt.Sprintf("%s, line %d col %d: %s%s%s%s%s",
		c.Name, line, col, head, begin, culprit, end, tail)
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
