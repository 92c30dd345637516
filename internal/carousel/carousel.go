// Package carousel drives the home page product carousel: a cursor over the
// carousel products that advances on a timer and shows a window of items
// sized to the viewport.
package carousel

import (
	"context"
	"errors"
	"time"
)

// DefaultInterval is the time between automatic advances.
const DefaultInterval = 3 * time.Second

// Viewport breakpoints, in CSS pixels.
const (
	narrowBelow = 640
	mediumBelow = 1024
)

// ErrIndexOutOfRange is returned when an indicator index does not exist.
var ErrIndexOutOfRange = errors.New("carousel index out of range")

// WindowSize is the number of items visible at once for a viewport width.
// A width of zero or less means unknown and gets the widest layout.
func WindowSize(viewportWidth int) int {
	switch {
	case viewportWidth <= 0:
		return 3
	case viewportWidth < narrowBelow:
		return 1
	case viewportWidth < mediumBelow:
		return 2
	default:
		return 3
	}
}

// Next returns the cursor after one advance. It wraps to zero once moving on
// would leave fewer than window items after the cursor.
func Next(cursor, total, window int) int {
	if cursor >= total-window {
		return 0
	}
	return cursor + 1
}

// IndicatorCount is the number of distinct cursor positions.
func IndicatorCount(total, window int) int {
	if n := total - window + 1; n > 1 {
		return n
	}
	return 1
}

// Controller is a carousel cursor rebuilt from session state for one request.
type Controller struct {
	total  int
	window int
	index  int
}

// NewController creates a controller over total items starting at index.
// An index that is no longer reachable for the window is reset to zero.
func NewController(total, viewportWidth, index int) *Controller {
	c := &Controller{total: total, window: WindowSize(viewportWidth)}
	if index >= 0 && index < IndicatorCount(total, c.window) {
		c.index = index
	}
	return c
}

func (c *Controller) Index() int { return c.index }

func (c *Controller) Window() int { return c.window }

func (c *Controller) Indicators() int { return IndicatorCount(c.total, c.window) }

// Advance moves the cursor one step and returns the new index.
func (c *Controller) Advance() int {
	c.index = Next(c.index, c.total, c.window)
	return c.index
}

// Set moves the cursor directly, as when an indicator is clicked.
func (c *Controller) Set(index int) error {
	if index < 0 || index >= IndicatorCount(c.total, c.window) {
		return ErrIndexOutOfRange
	}
	c.index = index
	return nil
}

// Resize changes the window for a new viewport width, pulling the cursor back
// to the last reachable position if needed.
func (c *Controller) Resize(viewportWidth int) {
	c.window = WindowSize(viewportWidth)
	if last := IndicatorCount(c.total, c.window) - 1; c.index > last {
		c.index = last
	}
}

// Run calls onTick every interval until ctx is done or onTick fails.
// It returns the onTick error or ctx.Err().
func Run(ctx context.Context, interval time.Duration, onTick func() error) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := onTick(); err != nil {
				return err
			}
		}
	}
}
