package types

import (
	"fmt"
	"time"

	"github.com/arnodenuijl/DistanceComparer-sub001/internal/mapcfg"
)

// Line is a measured segment drawn on one panel.
type Line struct {
	Start mapcfg.Coordinate `json:"start"`
	End   mapcfg.Coordinate `json:"end"`
}

// Validate checks both endpoints against WGS 84 bounds.
func (l Line) Validate() error {
	if err := l.Start.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := l.End.Validate(); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	return nil
}

// Comparison is one saved side-by-side measurement: a line per panel with
// the distances the frontend measured for them. The backend stores and
// formats distances but never computes them.
type Comparison struct {
	ID           string    `json:"id"`
	Label        string    `json:"label,omitempty"`
	Left         Line      `json:"left"`
	Right        Line      `json:"right"`
	LeftMeters   float64   `json:"leftMeters"`
	RightMeters  float64   `json:"rightMeters"`
	LeftDisplay  string    `json:"leftDisplay"`
	RightDisplay string    `json:"rightDisplay"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate checks lines and distance signs.
func (c Comparison) Validate() error {
	if err := c.Left.Validate(); err != nil {
		return fmt.Errorf("left line: %w", err)
	}
	if err := c.Right.Validate(); err != nil {
		return fmt.Errorf("right line: %w", err)
	}
	if c.LeftMeters < 0 {
		return fmt.Errorf("negative left distance %v", c.LeftMeters)
	}
	if c.RightMeters < 0 {
		return fmt.Errorf("negative right distance %v", c.RightMeters)
	}
	return nil
}
