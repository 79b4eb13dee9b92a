// Package pipeboard holds project-level metadata.
package pipeboard

const Version = "0.1.0"
