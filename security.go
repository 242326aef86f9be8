package openapix

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrNilScheme is returned when a security scheme or its factory is nil.
var ErrNilScheme = errors.New("security scheme is nil")

// SecuritySchemeFactory fills in a security scheme for one generation pass.
// services is the request-scoped registry handed to the host.
type SecuritySchemeFactory func(ctx context.Context, scheme *openapi3.SecurityScheme, services *Services) error

// AddSecurityScheme registers scheme under name in the document components
// and requires it on every operation guarded by an authorization policy.
// The scheme is copied on every generation pass.
func (o *Options) AddSecurityScheme(name string, scheme *openapi3.SecurityScheme) error {
	if scheme == nil {
		return ErrNilScheme
	}
	return o.AddSecuritySchemeFactory(name, func(_ context.Context, s *openapi3.SecurityScheme, _ *Services) error {
		*s = *scheme
		return nil
	})
}

// AddSecuritySchemeFunc is AddSecurityScheme with the scheme built by
// configure on every generation pass.
func (o *Options) AddSecuritySchemeFunc(name string, configure func(*openapi3.SecurityScheme)) error {
	if configure == nil {
		return ErrNilScheme
	}
	return o.AddSecuritySchemeFactory(name, func(_ context.Context, s *openapi3.SecurityScheme, _ *Services) error {
		configure(s)
		return nil
	})
}

// AddSecuritySchemeFactory is the general form of AddSecurityScheme. The
// factory may block and should honour ctx.
func (o *Options) AddSecuritySchemeFactory(name string, factory SecuritySchemeFactory) error {
	if err := validateArg("security scheme name", name, schemeNameRules...); err != nil {
		return err
	}
	if factory == nil {
		return ErrNilScheme
	}

	o.AddDocumentTransformer(DocumentTransformerFunc(func(ctx context.Context, doc *openapi3.T, dc *DocumentContext) error {
		scheme := openapi3.NewSecurityScheme()
		if err := factory(ctx, scheme, dc.Services); err != nil {
			return fmt.Errorf("security scheme %q: %w", name, err)
		}
		if doc.Components == nil {
			doc.Components = &openapi3.Components{}
		}
		if doc.Components.SecuritySchemes == nil {
			doc.Components.SecuritySchemes = openapi3.SecuritySchemes{}
		}
		doc.Components.SecuritySchemes[name] = &openapi3.SecuritySchemeRef{Value: scheme}
		return nil
	}))

	o.AddOperationTransformer(OperationTransformerFunc(func(ctx context.Context, op *openapi3.Operation, oc *OperationContext) error {
		ok, err := HasAuthorization(ctx, oc)
		if err != nil {
			return fmt.Errorf("authorization for %s %s: %w", oc.Method, oc.Path, err)
		}
		if !ok {
			return nil
		}
		if op.Security == nil {
			op.Security = openapi3.NewSecurityRequirements()
		}
		op.Security.With(openapi3.NewSecurityRequirement().Authenticate(name))
		return nil
	}))

	o.cfg.logger.Debug("registered security scheme", "name", name)
	return nil
}
