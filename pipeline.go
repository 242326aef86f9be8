package openapix

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// Transform runs the document phase and then the operation phase on doc.
// doc is mutated in place; when an error is returned it may be partially
// transformed and should be discarded.
func (o *Options) Transform(ctx context.Context, doc *openapi3.T, services *Services) error {
	if err := o.TransformDocument(ctx, doc, services); err != nil {
		return err
	}
	return o.TransformOperations(ctx, doc, services)
}

// TransformDocument runs every document transformer on doc in order.
func (o *Options) TransformDocument(ctx context.Context, doc *openapi3.T, services *Services) error {
	dc := &DocumentContext{Services: services}
	for i, t := range o.documents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.TransformDocument(ctx, doc, dc); err != nil {
			return fmt.Errorf("document transformer %d: %w", i, err)
		}
	}
	o.cfg.logger.Debug("document phase done", "transformers", len(o.documents))
	return nil
}

// TransformOperations runs every operation transformer on every operation
// of doc. Paths are visited in sorted order and the methods of a path
// alphabetically.
func (o *Options) TransformOperations(ctx context.Context, doc *openapi3.T, services *Services) error {
	if doc.Paths == nil || len(o.operations) == 0 {
		return nil
	}

	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for p := range pathMap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	visited := 0
	for _, path := range paths {
		item := pathMap[path]
		if item == nil {
			continue
		}
		for _, method := range sortedMethods(item) {
			op := item.GetOperation(method)
			oc := &OperationContext{
				Document: doc,
				Method:   method,
				Path:     path,
				Services: services,
			}
			for i, t := range o.operations {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := t.TransformOperation(ctx, op, oc); err != nil {
					return fmt.Errorf("operation transformer %d on %s %s: %w", i, method, path, err)
				}
			}
			visited++
		}
	}
	o.cfg.logger.Debug("operation phase done", "operations", visited, "transformers", len(o.operations))
	return nil
}

func sortedMethods(item *openapi3.PathItem) []string {
	ops := item.Operations()
	methods := make([]string, 0, len(ops))
	for m := range ops {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}
