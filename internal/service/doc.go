// Package service composes the catalog store, scanner, and thumbnail
// generator into the flat operation set the front-end invokes.
package service
