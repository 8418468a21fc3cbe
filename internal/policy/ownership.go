package policy

import (
	"context"

	"github.com/diewo77/go-artisans/internal/gate"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/services"
)

// SelfOnly allows an action only when the caller owns the resource. There is
// no admin override. Profiles and request partitions are identified by their
// owner id; a single request carries its ArtisanID.
var SelfOnly = gate.PolicyFunc[string](selfOnly)

func selfOnly(_ context.Context, caller string, _ gate.Action, resource any) bool {
	switch r := resource.(type) {
	case string:
		return r != "" && r == caller
	case *models.ClientRequest:
		return r != nil && r.ArtisanID == caller
	}
	return false
}

// NewGate returns the gate used by the services.
func NewGate() *gate.Gate[string] {
	g := gate.New[string]()
	g.Register(services.ResourceArtisan, SelfOnly)
	g.Register(services.ResourceRequest, SelfOnly)
	return g
}
