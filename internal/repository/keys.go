// Package repository maps the marketplace documents onto key-value entries.
//
// Key layout:
//
//	user:<id>                               UserAccount
//	artisan:<id>                            ArtisanProfile
//	artisan_by_email:<email>                artisan id (JSON string)
//	request:artisan:<artisanId>:<requestId> ClientRequest
//
// A request's key is always derived from its own ArtisanID, so the
// per-artisan scan can reach every request written through this package.
package repository

const (
	userPrefix         = "user:"
	artisanPrefix      = "artisan:"
	artisanEmailPrefix = "artisan_by_email:"
	requestPrefix      = "request:artisan:"
)

func userKey(id string) string { return userPrefix + id }

func artisanKey(id string) string { return artisanPrefix + id }

func artisanEmailKey(email string) string { return artisanEmailPrefix + email }

func requestOwnerPrefix(artisanID string) string { return requestPrefix + artisanID + ":" }

func requestKey(artisanID, requestID string) string {
	return requestOwnerPrefix(artisanID) + requestID
}
