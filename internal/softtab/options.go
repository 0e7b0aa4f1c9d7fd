package softtab

import "go.uber.org/zap"

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithEraseGating sets the Backspace and Delete gating policy.
func WithEraseGating(g EraseGating) Option {
	return func(c *Controller) {
		c.gating = g
	}
}

// WithVerticalSnap sets how vertical moves land inside indentation.
func WithVerticalSnap(v VerticalSnap) Option {
	return func(c *Controller) {
		c.snap = v
	}
}

// WithSnapOnClick snaps caret placements made by the host, such as mouse
// clicks, to the nearest stop when they land inside leading indentation.
// Caret moves caused by inserting or deleting text are left alone when
// the view implements EditReporter.
func WithSnapOnClick(enabled bool) Option {
	return func(c *Controller) {
		c.snapOnClick = enabled
	}
}
