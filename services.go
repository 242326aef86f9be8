package openapix

import (
	"context"
	"reflect"
	"sync"
)

// Services is a small request-scoped registry keyed by Go type. The host
// hands one to every transformer; registrars resolve optional collaborators
// such as a [PolicyProvider] from it.
//
// A nil *Services resolves nothing.
type Services struct {
	mu sync.RWMutex
	m  map[reflect.Type]any
}

// NewServices returns an empty registry.
func NewServices() *Services {
	return &Services{m: map[reflect.Type]any{}}
}

// Provide registers v under the type T, replacing any earlier value, and
// returns s. A nil s is replaced by a new registry.
//
// The key is the type argument, not the dynamic type of v: register a
// provider as Provide[PolicyProvider](s, p) to have it found by interface.
func Provide[T any](s *Services, v T) *Services {
	if s == nil {
		s = NewServices()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = map[reflect.Type]any{}
	}
	s.m[reflect.TypeFor[T]()] = v
	return s
}

// Resolve returns the value registered under T.
func Resolve[T any](s *Services) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Policy is an authorization policy that applies to an endpoint.
type Policy struct {
	Name    string
	Schemes []string
	Roles   []string
}

// PolicyProvider answers which authorization policy guards an endpoint.
// Both methods return a nil policy when none applies.
type PolicyProvider interface {
	EndpointPolicy(ctx context.Context, method, path string) (*Policy, error)
	FallbackPolicy(ctx context.Context) (*Policy, error)
}

// StaticPolicies is a map-backed [PolicyProvider]. Endpoint keys are
// "METHOD /path".
type StaticPolicies struct {
	Endpoints map[string]*Policy
	Fallback  *Policy
}

func (p *StaticPolicies) EndpointPolicy(_ context.Context, method, path string) (*Policy, error) {
	return p.Endpoints[method+" "+path], nil
}

func (p *StaticPolicies) FallbackPolicy(context.Context) (*Policy, error) {
	return p.Fallback, nil
}

// HasAuthorization reports whether the operation described by oc is guarded
// by an authorization policy. The provider is resolved as [PolicyProvider],
// then as *[StaticPolicies]. A missing provider means no policy applies.
func HasAuthorization(ctx context.Context, oc *OperationContext) (bool, error) {
	provider := policyProvider(oc.Services)
	if provider == nil {
		return false, nil
	}

	policy, err := provider.EndpointPolicy(ctx, oc.Method, oc.Path)
	if err != nil {
		return false, err
	}
	if policy != nil {
		return true, nil
	}

	fallback, err := provider.FallbackPolicy(ctx)
	if err != nil {
		return false, err
	}
	return fallback != nil, nil
}

func policyProvider(s *Services) PolicyProvider {
	if p, ok := Resolve[PolicyProvider](s); ok && p != nil {
		return p
	}
	if p, ok := Resolve[*StaticPolicies](s); ok && p != nil {
		return p
	}
	return nil
}
