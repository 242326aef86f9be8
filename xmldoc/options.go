package xmldoc

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Gobd/openapix"
)

// DescriptionHook post-processes a resolved summary. text is nil when the
// file has no entry for the member; the returned value is cached instead.
type DescriptionHook func(ctx context.Context, t reflect.Type, m *openapix.Member, text *string) (*string, error)

// Option configures a [Resolver].
type Option func(*config)

type config struct {
	fsys   fs.FS
	name   string
	binary string
	hook   DescriptionHook
	logger *slog.Logger
}

// WithPath reads documentation from the XML file at path.
func WithPath(path string) Option {
	return func(c *config) {
		c.fsys = os.DirFS(filepath.Dir(path))
		c.name = filepath.Base(path)
	}
}

// WithFS reads documentation from name inside fsys.
func WithFS(fsys fs.FS, name string) Option {
	return func(c *config) {
		c.fsys = fsys
		c.name = name
	}
}

// ForBinary reads documentation from the side-car of the binary at path,
// see [SidecarPath]. Without any source option the running executable is
// used.
func ForBinary(path string) Option {
	return func(c *config) { c.binary = path }
}

// WithHook sets a hook that rewrites every resolved summary.
func WithHook(h DescriptionHook) Option {
	return func(c *config) { c.hook = h }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// SidecarPath swaps the extension of binary for ".xml"; a binary without an
// extension gets ".xml" appended.
func SidecarPath(binary string) string {
	return strings.TrimSuffix(binary, filepath.Ext(binary)) + ".xml"
}
