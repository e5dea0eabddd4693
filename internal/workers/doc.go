// Package workers provides worker pool sizing based on available CPU
// resources, with environment variable overrides.
package workers
