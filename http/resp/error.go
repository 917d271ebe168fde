package resp

import "errors"

// ErrRender marks a view or layout template that could not be
// parsed or executed.
var ErrRender = errors.New("render failed")
