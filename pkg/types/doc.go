// Package types defines the Store and Settings interfaces, the Pipeline,
// Lead, and Stage entity types, the backup document format, and the standard
// errors shared by every pipeboard storage backend.
package types
