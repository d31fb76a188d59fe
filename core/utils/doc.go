// Package utils provides common utility functions for leap-bridge.
// It includes cell parsing helpers for tabular data that don't fit into
// domain-specific packages.
package utils
