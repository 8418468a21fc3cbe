// Package services implements the marketplace operations on top of the
// repositories and the identity provider. Every error returned here is an
// *apperr.Error so handlers can map it to an HTTP status.
package services

// Resource types checked through the authorization gate.
const (
	ResourceArtisan = "artisan"
	ResourceRequest = "request"
)

const (
	msgMissingFields = "Missing required fields"
	msgUnauthorized  = "Unauthorized"
	msgNoToken       = "No token provided"
)
