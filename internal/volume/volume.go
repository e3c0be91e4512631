// Package volume keeps track of the volume level and the mute toggle.
package volume

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Max is the loudest volume level.
const Max = 100

// ErrOutOfRange is returned for volume levels outside [0, Max].
var ErrOutOfRange = errors.New("volume out of range")

// Controller holds the volume state. Muted always implies a volume of 0; the
// level from before muting is restored when unmuting.
type Controller struct {
	volume     int
	muted      bool
	beforeMute int
}

// New creates a controller at the given initial volume, which is clamped into
// range.
func New(initial int) *Controller {
	initial = lo.Clamp(initial, 0, Max)

	return &Controller{
		volume:     initial,
		muted:      initial == 0,
		beforeMute: initial,
	}
}

// Volume returns the current level in [0, Max].
func (c *Controller) Volume() int {
	return c.volume
}

// Muted returns true if the volume is muted or explicitly set to 0.
func (c *Controller) Muted() bool {
	return c.muted
}

// Gain returns the volume as an output gain in [0, 1].
func (c *Controller) Gain() float64 {
	return float64(c.volume) / Max
}

// SetVolume sets the level. Setting it to 0 marks the volume as muted, and any
// positive level clears the mute.
func (c *Controller) SetVolume(v int) error {
	if v < 0 || v > Max {
		return errors.Wrapf(ErrOutOfRange, "volume %d", v)
	}

	c.volume = v
	c.muted = v == 0
	return nil
}

// Step changes the level by delta, clamping the result into range.
func (c *Controller) Step(delta int) {
	// Always in range.
	c.SetVolume(lo.Clamp(c.volume+delta, 0, Max))
}

// ToggleMute mutes the volume, remembering the current level, or restores the
// remembered level if already muted.
func (c *Controller) ToggleMute() {
	if c.muted {
		c.volume = c.beforeMute
		c.muted = false
		return
	}

	c.beforeMute = c.volume
	c.volume = 0
	c.muted = true
}
