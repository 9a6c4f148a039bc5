package mapcfg

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestOSMLayerDefaults(t *testing.T) {
	layer := OSMLayer()

	if layer.URL != "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png" {
		t.Errorf("Unexpected OSM URL: %s", layer.URL)
	}
	if layer.MinZoom != 2 {
		t.Errorf("Expected MinZoom 2, got %d", layer.MinZoom)
	}
	if layer.MaxZoom != 18 {
		t.Errorf("Expected MaxZoom 18, got %d", layer.MaxZoom)
	}
	if len(layer.Subdomains) != 3 {
		t.Fatalf("Expected 3 subdomains, got %d", len(layer.Subdomains))
	}
	for i, want := range []string{"a", "b", "c"} {
		if layer.Subdomains[i] != want {
			t.Errorf("Subdomain %d: expected %q, got %q", i, want, layer.Subdomains[i])
		}
	}
	if layer.RetryAttempts != 3 {
		t.Errorf("Expected RetryAttempts 3, got %d", layer.RetryAttempts)
	}
	if layer.RetryDelayMS != 1000 {
		t.Errorf("Expected RetryDelayMS 1000, got %d", layer.RetryDelayMS)
	}
	if !strings.Contains(layer.Attribution, "openstreetmap.org/copyright") {
		t.Errorf("OSM attribution missing copyright link: %s", layer.Attribution)
	}
}

func TestWikimediaLayerDefaults(t *testing.T) {
	layer := WikimediaLayer()

	if layer.URL != "https://maps.wikimedia.org/osm-intl/{z}/{x}/{y}.png" {
		t.Errorf("Unexpected Wikimedia URL: %s", layer.URL)
	}
	if len(layer.Subdomains) != 0 {
		t.Errorf("Expected no subdomains, got %v", layer.Subdomains)
	}
	if err := layer.Validate(); err != nil {
		t.Errorf("Fallback layer invalid: %v", err)
	}
}

func TestDefaultMapZoomInvariant(t *testing.T) {
	m := DefaultMap()

	if m.Center.Lat != 0 || m.Center.Lng != 0 {
		t.Errorf("Expected center {0, 0}, got %+v", m.Center)
	}
	if m.Zoom != 2 || m.MinZoom != 2 || m.MaxZoom != 18 {
		t.Errorf("Unexpected zoom bounds: %+v", m)
	}
	if m.Zoom < m.MinZoom || m.Zoom > m.MaxZoom {
		t.Errorf("Zoom %d outside [%d, %d]", m.Zoom, m.MinZoom, m.MaxZoom)
	}
}

func TestPreviewStyleDerivedFromDefault(t *testing.T) {
	def := DefaultLineStyle()
	preview := PreviewLineStyle()

	if preview.DashArray != "5, 5" {
		t.Errorf("Expected DashArray '5, 5', got %q", preview.DashArray)
	}
	if preview.Opacity != 0.5 {
		t.Errorf("Expected Opacity 0.5, got %v", preview.Opacity)
	}

	// Everything except the two overridden fields must match the default.
	preview.DashArray = def.DashArray
	preview.Opacity = def.Opacity
	if preview != def {
		t.Errorf("Preview style diverges from default beyond dash/opacity:\n%+v\n%+v", preview, def)
	}
}

func TestDefaultLineStyle(t *testing.T) {
	s := DefaultLineStyle()

	if s.Weight < MinLineWeight {
		t.Errorf("Weight %v below minimum %d", s.Weight, MinLineWeight)
	}
	if s.Opacity != 0.8 {
		t.Errorf("Expected Opacity 0.8, got %v", s.Opacity)
	}
	if s.DashArray != "" {
		t.Errorf("Default style should be solid, got dash %q", s.DashArray)
	}
}

func TestThresholds(t *testing.T) {
	th := Thresholds()

	if th.KilometersAt != 1000 {
		t.Errorf("Expected KilometersAt 1000, got %v", th.KilometersAt)
	}
	if th.HighPrecisionBelow != 10 {
		t.Errorf("Expected HighPrecisionBelow 10, got %v", th.HighPrecisionBelow)
	}
}

func TestTuning(t *testing.T) {
	tu := Tuning()

	if tu.DragDebounce != 16*time.Millisecond {
		t.Errorf("Expected DragDebounce 16ms, got %v", tu.DragDebounce)
	}
	if tu.RotationDebounce != 16*time.Millisecond {
		t.Errorf("Expected RotationDebounce 16ms, got %v", tu.RotationDebounce)
	}
	if tu.CalculationCacheTTL != 5000*time.Millisecond {
		t.Errorf("Expected CalculationCacheTTL 5s, got %v", tu.CalculationCacheTTL)
	}
}

func TestRegistryValidates(t *testing.T) {
	if err := Registry().Validate(); err != nil {
		t.Fatalf("Default registry invalid: %v", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	layer := OSMLayer()
	layer.Subdomains[0] = "mutated"
	layer.MaxZoom = 99

	fresh := OSMLayer()
	if fresh.Subdomains[0] != "a" {
		t.Error("Mutating a returned layer leaked into the defaults")
	}
	if fresh.MaxZoom != 18 {
		t.Error("Mutating a returned layer changed the default zoom")
	}
}

func TestTuningJSONUsesMilliseconds(t *testing.T) {
	data, err := json.Marshal(Tuning())
	if err != nil {
		t.Fatalf("Failed to marshal tuning: %v", err)
	}

	var decoded map[string]int64
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tuning: %v", err)
	}

	if decoded["dragDebounceMs"] != 16 {
		t.Errorf("Expected dragDebounceMs 16, got %d", decoded["dragDebounceMs"])
	}
	if decoded["rotationDebounceMs"] != 16 {
		t.Errorf("Expected rotationDebounceMs 16, got %d", decoded["rotationDebounceMs"])
	}
	if decoded["calculationCacheTtl"] != 5000 {
		t.Errorf("Expected calculationCacheTtl 5000, got %d", decoded["calculationCacheTtl"])
	}
}

func TestUIConstants(t *testing.T) {
	reg := Registry()

	if reg.UI.EventDebounceMS != 150 {
		t.Errorf("Expected event debounce 150ms, got %d", reg.UI.EventDebounceMS)
	}
	if reg.UI.KeyboardPanStepPx != 50 {
		t.Errorf("Expected pan step 50px, got %d", reg.UI.KeyboardPanStepPx)
	}
	if reg.UI.KeyboardZoomStep != 1 {
		t.Errorf("Expected zoom step 1, got %d", reg.UI.KeyboardZoomStep)
	}
	if reg.UI.ResponsiveBreakpoint != 768 {
		t.Errorf("Expected breakpoint 768px, got %d", reg.UI.ResponsiveBreakpoint)
	}
}
