package mapcfg

import (
	"fmt"
	"strconv"
	"strings"
)

// TileURL expands a layer's URL template for one tile address. The subdomain
// is picked from the layer's list by round-robin over x+y, the scheme used
// by slippy-map clients to spread requests across tile hosts.
func TileURL(layer TileLayerConfig, z, x, y int) (string, error) {
	if z < layer.MinZoom || z > layer.MaxZoom {
		return "", fmt.Errorf("zoom %d outside layer range [%d, %d]", z, layer.MinZoom, layer.MaxZoom)
	}
	if x < 0 || y < 0 {
		return "", fmt.Errorf("negative tile address %d/%d", x, y)
	}
	grid := 1 << z
	if x >= grid || y >= grid {
		return "", fmt.Errorf("tile %d/%d outside zoom %d grid of %d", x, y, z, grid)
	}

	u := layer.URL
	if strings.Contains(u, "{s}") {
		if len(layer.Subdomains) == 0 {
			return "", fmt.Errorf("tile URL %q uses {s} but no subdomains are configured", layer.URL)
		}
		s := layer.Subdomains[(x+y)%len(layer.Subdomains)]
		u = strings.ReplaceAll(u, "{s}", s)
	}
	u = strings.ReplaceAll(u, "{z}", strconv.Itoa(z))
	u = strings.ReplaceAll(u, "{x}", strconv.Itoa(x))
	u = strings.ReplaceAll(u, "{y}", strconv.Itoa(y))
	return u, nil
}
