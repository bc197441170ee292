// Package rewind exposes module-level metadata.
package rewind

// Version is the current release version of the rewind module.
const Version = "0.1.0"
