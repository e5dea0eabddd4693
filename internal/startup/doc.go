// Package startup handles environment-driven configuration, directory
// validation, and startup logging.
package startup
