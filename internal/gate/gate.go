// Package gate checks whether a caller may act on a marketplace resource.
// Each resource type ("artisan", "request") has one Policy; the Gate looks
// it up by name and turns a refusal into ErrDenied.
package gate

import (
	"context"
	"errors"
)

// Action is what the caller attempts on a resource.
type Action string

const (
	// ActionUpdate edits one resource: a profile or a request status.
	ActionUpdate Action = "update"
	// ActionList reads a whole partition; the resource is its owner id.
	ActionList Action = "list"
)

var (
	ErrDenied   = errors.New("gate: access denied")
	ErrNoPolicy = errors.New("gate: no policy for resource type")
)

// Policy decides for one resource type.
type Policy[U any] interface {
	Allows(ctx context.Context, caller U, action Action, resource any) bool
}

// PolicyFunc lets a plain function serve as a Policy.
type PolicyFunc[U any] func(ctx context.Context, caller U, action Action, resource any) bool

func (f PolicyFunc[U]) Allows(ctx context.Context, caller U, action Action, resource any) bool {
	return f(ctx, caller, action, resource)
}

// Gate holds the policy of every resource type. The zero value of U is an
// anonymous caller and is always denied.
type Gate[U comparable] struct {
	policies map[string]Policy[U]
}

func New[U comparable]() *Gate[U] {
	return &Gate[U]{policies: map[string]Policy[U]{}}
}

// Register sets the policy for resourceType, replacing any earlier one.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

func (g *Gate[U]) Authorize(ctx context.Context, caller U, action Action, resourceType string, resource any) error {
	var anonymous U
	if caller == anonymous {
		return ErrDenied
	}
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicy
	}
	if !p.Allows(ctx, caller, action, resource) {
		return ErrDenied
	}
	return nil
}
