// Package mapcfg holds the fixed configuration consumed by the two map
// panels: tile layers, zoom bounds, line styling, distance thresholds and
// debounce timings. Values never change after process start; accessors
// return copies so callers cannot mutate the defaults.
package mapcfg

import (
	"encoding/json"
	"time"
)

// MinLineWeight is the smallest stroke weight the UI renders legibly.
const MinLineWeight = 3

// UI interaction constants shared with the frontend.
const (
	EventDebounce        = 150 * time.Millisecond
	KeyboardPanStepPx    = 50
	KeyboardZoomStep     = 1
	ResponsiveBreakpoint = 768
)

// Coordinate is a WGS 84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TileLayerConfig describes a raster tile backend. URL is a template with
// {s} (subdomain), {z}, {x} and {y} tokens. Attribution is an HTML fragment
// that must be rendered unescaped, the anchor link is a license requirement.
type TileLayerConfig struct {
	URL           string   `json:"url"`
	Attribution   string   `json:"attribution"`
	MinZoom       int      `json:"minZoom"`
	MaxZoom       int      `json:"maxZoom"`
	Subdomains    []string `json:"subdomains,omitempty"`
	RetryAttempts int      `json:"retryAttempts"`
	RetryDelayMS  int      `json:"retryDelay"`
}

// MapConfig is the initial viewport of a panel.
type MapConfig struct {
	Center  Coordinate `json:"center"`
	Zoom    int        `json:"zoom"`
	MinZoom int        `json:"minZoom"`
	MaxZoom int        `json:"maxZoom"`
}

// LineStyle styles a drawn line and its endpoint markers. An empty DashArray
// means a solid line; this is the chosen encoding for "no dash pattern".
type LineStyle struct {
	Color              string  `json:"color"`
	Weight             float64 `json:"weight"`
	Opacity            float64 `json:"opacity"`
	DashArray          string  `json:"dashArray,omitempty"`
	MarkerRadius       float64 `json:"markerRadius"`
	MarkerFillColor    string  `json:"markerFillColor"`
	MarkerBorderColor  string  `json:"markerBorderColor"`
	MarkerBorderWeight float64 `json:"markerBorderWeight"`
}

// DistanceThresholds controls unit and precision switching when a distance
// is turned into a display string.
type DistanceThresholds struct {
	// KilometersAt is the distance in meters at which display switches to km.
	KilometersAt float64 `json:"kilometersAt"`
	// HighPrecisionBelow is the distance in meters under which an extra
	// decimal is shown.
	HighPrecisionBelow float64 `json:"highPrecisionBelow"`
}

// PerformanceTuning groups the debounce and cache timings. Drag and rotation
// updates are debounced to one frame at 60fps.
type PerformanceTuning struct {
	DragDebounce        time.Duration
	RotationDebounce    time.Duration
	CalculationCacheTTL time.Duration
}

// MarshalJSON serializes the timings as millisecond integers, which is what
// the frontend feeds into setTimeout.
func (p PerformanceTuning) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DragDebounceMS        int64 `json:"dragDebounceMs"`
		RotationDebounceMS    int64 `json:"rotationDebounceMs"`
		CalculationCacheTTLMS int64 `json:"calculationCacheTtl"`
	}{
		DragDebounceMS:        p.DragDebounce.Milliseconds(),
		RotationDebounceMS:    p.RotationDebounce.Milliseconds(),
		CalculationCacheTTLMS: p.CalculationCacheTTL.Milliseconds(),
	})
}

// DefaultMap returns the initial viewport shared by both panels.
func DefaultMap() MapConfig {
	return MapConfig{
		Center:  Coordinate{Lat: 0, Lng: 0},
		Zoom:    2,
		MinZoom: 2,
		MaxZoom: 18,
	}
}

// OSMLayer returns the primary tile layer.
func OSMLayer() TileLayerConfig {
	return TileLayerConfig{
		URL:           "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution:   `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		MinZoom:       2,
		MaxZoom:       18,
		Subdomains:    []string{"a", "b", "c"},
		RetryAttempts: 3,
		RetryDelayMS:  1000,
	}
}

// WikimediaLayer returns the fallback tile layer used when OSM tiles fail.
func WikimediaLayer() TileLayerConfig {
	return TileLayerConfig{
		URL:           "https://maps.wikimedia.org/osm-intl/{z}/{x}/{y}.png",
		Attribution:   `<a href="https://wikimediafoundation.org/wiki/Maps_Terms_of_Use">Wikimedia maps</a> | &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		MinZoom:       2,
		MaxZoom:       18,
		RetryAttempts: 3,
		RetryDelayMS:  1000,
	}
}

// DefaultLineStyle returns the style of a committed measurement line.
func DefaultLineStyle() LineStyle {
	return LineStyle{
		Color:              "#3388ff",
		Weight:             3,
		Opacity:            0.8,
		MarkerRadius:       6,
		MarkerFillColor:    "#3388ff",
		MarkerBorderColor:  "#ffffff",
		MarkerBorderWeight: 2,
	}
}

// PreviewLineStyle returns the style used while a line is being dragged:
// the default style with a dash pattern and lowered opacity.
func PreviewLineStyle() LineStyle {
	s := DefaultLineStyle()
	s.DashArray = "5, 5"
	s.Opacity = 0.5
	return s
}

// Thresholds returns the unit/precision breakpoints for distance display.
func Thresholds() DistanceThresholds {
	return DistanceThresholds{
		KilometersAt:       1000,
		HighPrecisionBelow: 10,
	}
}

// Tuning returns the debounce and cache timings.
func Tuning() PerformanceTuning {
	return PerformanceTuning{
		DragDebounce:        16 * time.Millisecond,
		RotationDebounce:    16 * time.Millisecond,
		CalculationCacheTTL: 5000 * time.Millisecond,
	}
}

// Full is the complete registry as served to the frontend.
type Full struct {
	Map              MapConfig          `json:"map"`
	TileLayer        TileLayerConfig    `json:"tileLayer"`
	FallbackLayer    TileLayerConfig    `json:"fallbackTileLayer"`
	LineStyle        LineStyle          `json:"lineStyle"`
	PreviewLineStyle LineStyle          `json:"previewLineStyle"`
	Thresholds       DistanceThresholds `json:"distanceThresholds"`
	Tuning           PerformanceTuning  `json:"performance"`
	UI               UIConstants        `json:"ui"`
}

// UIConstants mirrors the interaction const block for JSON consumers.
type UIConstants struct {
	EventDebounceMS      int64 `json:"eventDebounceMs"`
	KeyboardPanStepPx    int   `json:"keyboardPanStepPx"`
	KeyboardZoomStep     int   `json:"keyboardZoomStep"`
	ResponsiveBreakpoint int   `json:"responsiveBreakpointPx"`
}

// Registry returns the full configuration payload.
func Registry() Full {
	return Full{
		Map:              DefaultMap(),
		TileLayer:        OSMLayer(),
		FallbackLayer:    WikimediaLayer(),
		LineStyle:        DefaultLineStyle(),
		PreviewLineStyle: PreviewLineStyle(),
		Thresholds:       Thresholds(),
		Tuning:           Tuning(),
		UI: UIConstants{
			EventDebounceMS:      EventDebounce.Milliseconds(),
			KeyboardPanStepPx:    KeyboardPanStepPx,
			KeyboardZoomStep:     KeyboardZoomStep,
			ResponsiveBreakpoint: ResponsiveBreakpoint,
		},
	}
}

func init() {
	// Values are fixed at compile time, an inconsistent default must fail
	// at process load, not at request time.
	if err := Registry().Validate(); err != nil {
		panic("mapcfg: invalid default configuration: " + err.Error())
	}
}
