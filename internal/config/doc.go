// Package config loads capture's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/capture/config.toml
//  3. If the file doesn't exist, return Default()
//  4. Fields that are missing, blank, or non-positive take their defaults
//
// # Default Values
//
//   - api_base: http://127.0.0.1:5000
//   - data_dir: $XDG_DATA_HOME/capture (holds capture.db)
//   - log_file: $XDG_STATE_HOME/capture/capture.log
//   - hero_interval_ms: 5000
//   - testimonial_interval_ms: 6000
//   - swipe_threshold_px: 40
//   - cell_width_px: 8
//   - flush_interval_s: 30
//
// # TOML Format
//
//	api_base = "http://127.0.0.1:5000"
//	content_file = "~/site/catalog.yaml"
//	hero_interval_ms = 5000
//	testimonial_interval_ms = 6000
//
// # Path Expansion
//
// Paths starting with ~ are expanded to the user's home directory and made
// absolute. api_base is passed to the backend client unchanged, which
// accepts either a bare host:port or a full URL.
//
// # Swipe Units
//
// Terminals report mouse positions in cells, not pixels. cell_width_px
// converts a horizontal drag into the pixel distance compared against
// swipe_threshold_px, so the default 40px threshold is a five-column drag.
package config
