package mapcfg

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the coordinate is within WGS 84 bounds.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lng)
	}
	return nil
}

// Validate checks the URL template, zoom bounds and retry settings.
func (t TileLayerConfig) Validate() error {
	if t.MinZoom > t.MaxZoom {
		return fmt.Errorf("minZoom %d > maxZoom %d", t.MinZoom, t.MaxZoom)
	}
	if t.RetryAttempts < 0 {
		return fmt.Errorf("negative retryAttempts %d", t.RetryAttempts)
	}
	if t.RetryDelayMS < 0 {
		return fmt.Errorf("negative retryDelay %d", t.RetryDelayMS)
	}
	if t.Attribution == "" {
		return fmt.Errorf("missing attribution for %q", t.URL)
	}

	// url.Parse rejects template tokens in a hostname, so substitute
	// sample values before parsing.
	sample := strings.NewReplacer("{s}", "a", "{z}", "0", "{x}", "0", "{y}", "0").Replace(t.URL)
	u, err := url.Parse(sample)
	if err != nil {
		return fmt.Errorf("invalid tile URL %q: %w", t.URL, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("tile URL %q must use https", t.URL)
	}
	for _, token := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(t.URL, token) {
			return fmt.Errorf("tile URL %q missing %s token", t.URL, token)
		}
	}
	if strings.Contains(t.URL, "{s}") && len(t.Subdomains) == 0 {
		return fmt.Errorf("tile URL %q uses {s} but no subdomains are configured", t.URL)
	}
	return nil
}

// Validate checks the zoom ordering invariant minZoom <= zoom <= maxZoom.
func (m MapConfig) Validate() error {
	if err := m.Center.Validate(); err != nil {
		return fmt.Errorf("center: %w", err)
	}
	if m.MinZoom > m.MaxZoom {
		return fmt.Errorf("minZoom %d > maxZoom %d", m.MinZoom, m.MaxZoom)
	}
	if m.Zoom < m.MinZoom || m.Zoom > m.MaxZoom {
		return fmt.Errorf("zoom %d outside [%d, %d]", m.Zoom, m.MinZoom, m.MaxZoom)
	}
	return nil
}

// Validate checks stroke weight, opacity and color fields.
func (s LineStyle) Validate() error {
	if s.Weight < MinLineWeight {
		return fmt.Errorf("weight %v below minimum %d", s.Weight, MinLineWeight)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity %v outside [0, 1]", s.Opacity)
	}
	for name, c := range map[string]string{
		"color":             s.Color,
		"markerFillColor":   s.MarkerFillColor,
		"markerBorderColor": s.MarkerBorderColor,
	} {
		if !isHexColor(c) {
			return fmt.Errorf("%s %q is not a hex color", name, c)
		}
	}
	if s.MarkerRadius <= 0 {
		return fmt.Errorf("markerRadius %v must be positive", s.MarkerRadius)
	}
	if s.MarkerBorderWeight < 0 {
		return fmt.Errorf("negative markerBorderWeight %v", s.MarkerBorderWeight)
	}
	return nil
}

// Validate checks that the breakpoints are positive and ordered.
func (d DistanceThresholds) Validate() error {
	if d.HighPrecisionBelow <= 0 {
		return fmt.Errorf("highPrecisionBelow %v must be positive", d.HighPrecisionBelow)
	}
	if d.KilometersAt <= d.HighPrecisionBelow {
		return fmt.Errorf("kilometersAt %v must exceed highPrecisionBelow %v",
			d.KilometersAt, d.HighPrecisionBelow)
	}
	return nil
}

// Validate checks that no timing is negative.
func (p PerformanceTuning) Validate() error {
	if p.DragDebounce < 0 || p.RotationDebounce < 0 || p.CalculationCacheTTL < 0 {
		return fmt.Errorf("negative duration in %+v", p)
	}
	return nil
}

// Validate runs every record's check.
func (f Full) Validate() error {
	checks := []struct {
		name string
		err  error
	}{
		{"map", f.Map.Validate()},
		{"tileLayer", f.TileLayer.Validate()},
		{"fallbackTileLayer", f.FallbackLayer.Validate()},
		{"lineStyle", f.LineStyle.Validate()},
		{"previewLineStyle", f.PreviewLineStyle.Validate()},
		{"distanceThresholds", f.Thresholds.Validate()},
		{"performance", f.Tuning.Validate()},
	}
	for _, c := range checks {
		if c.err != nil {
			return fmt.Errorf("%s: %w", c.name, c.err)
		}
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
