// Package distance turns raw meter values into the display strings shown
// under each map panel. Unit and precision switching is driven by the
// registry's thresholds so both panels and the history view agree on
// formatting.
package distance

import (
	"fmt"

	"github.com/arnodenuijl/DistanceComparer-sub001/internal/mapcfg"
)

// Format renders meters using the default thresholds.
func Format(meters float64) string {
	return FormatWith(mapcfg.Thresholds(), meters)
}

// FormatWith renders meters as a display string:
//   - at or above KilometersAt the value switches to kilometers with two
//     decimals ("1.00 km")
//   - below HighPrecisionBelow an extra decimal is shown ("9.99 m")
//   - everything in between uses one decimal ("999.0 m")
//
// Negative input is treated as zero, a distance is a magnitude.
func FormatWith(t mapcfg.DistanceThresholds, meters float64) string {
	if meters < 0 {
		meters = 0
	}

	switch {
	case meters >= t.KilometersAt:
		return fmt.Sprintf("%.2f km", meters/1000)
	case meters < t.HighPrecisionBelow:
		return fmt.Sprintf("%.2f m", meters)
	default:
		return fmt.Sprintf("%.1f m", meters)
	}
}
