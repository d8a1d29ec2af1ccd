// Package config manages gitdesk configuration.
//
// It handles:
//   - Locating the per-user configuration directory
//   - Reading config.yaml with defaults for every missing field
package config
