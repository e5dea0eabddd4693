// Package handlers provides the JSON HTTP layer over the catalog
// operations. Handlers stay thin: decode, delegate to the service, map
// errors onto status codes.
package handlers
