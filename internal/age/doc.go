// Package age computes human-readable age labels for cataloged files
// relative to a configured birth date.
package age
