// Package config decodes the JSON-shaped configuration described in
// spec.md §6: thread pool size, the partition/fusion plan, and the edge
// placement policy. Decoding rejects unknown keys so a typo in a config
// file surfaces immediately rather than silently falling back to defaults.
package config
