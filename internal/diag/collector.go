package diag

import (
	"errors"
	"slices"
)

// Collector is an ordered, append-only list of diagnostics.
// The zero value is ready to use.
type Collector struct {
	items []Diagnostic
}

// Add appends diagnostics in the order given.
func (c *Collector) Add(ds ...Diagnostic) {
	c.items = append(c.items, ds...)
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	return len(c.items)
}

// Items returns a copy of the recorded diagnostics so callers cannot
// rewrite history.
func (c *Collector) Items() []Diagnostic {
	return slices.Clone(c.items)
}

// HasErrors reports whether any diagnostic has error severity.
func (c *Collector) HasErrors() bool {
	for _, d := range c.items {
		if d.Severity == SeverityError || d.Severity == "" {
			return true
		}
	}
	return false
}

// Err joins every error-severity diagnostic into a single error, or returns
// nil when there are none.
func (c *Collector) Err() error {
	var errs []error
	for _, d := range c.items {
		if d.Severity == SeverityError || d.Severity == "" {
			errs = append(errs, d)
		}
	}
	return errors.Join(errs...)
}
