// Package docgen extracts Go doc comments into the XML side-car format read
// by package xmldoc.
package docgen

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/Gobd/openapix"
	"github.com/Gobd/openapix/xmldoc"
)

// Doc is the root element of a documentation file.
type Doc struct {
	XMLName  xml.Name `xml:"doc"`
	Assembly Assembly `xml:"assembly"`
	Members  []Member `xml:"members>member"`
}

// Assembly names the code the file documents.
type Assembly struct {
	Name string `xml:"name"`
}

// Member is one documented declaration.
type Member struct {
	Name    string `xml:"name,attr"`
	Summary string `xml:"summary"`
}

// Load parses the packages matched by patterns, relative to dir, and
// collects their documented types and struct fields.
func Load(ctx context.Context, dir string, patterns ...string) (*Doc, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedSyntax | packages.NeedFiles | packages.NeedModule,
		Dir:     dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, errors.New("no packages found")
	}

	var errs []error
	doc := &Doc{}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Errorf("%s: %w", pkg.PkgPath, e))
		}
		if doc.Assembly.Name == "" {
			doc.Assembly.Name = pkg.PkgPath
			if pkg.Module != nil {
				doc.Assembly.Name = pkg.Module.Path
			}
		}
		doc.Members = append(doc.Members, Members(runtimePath(pkg), pkg.Syntax)...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.Slice(doc.Members, func(i, j int) bool { return doc.Members[i].Name < doc.Members[j].Name })
	return doc, nil
}

// runtimePath is the package path reflect reports for types declared in
// pkg. Types of a command package live in "main".
func runtimePath(pkg *packages.Package) string {
	if pkg.Name == "main" {
		return "main"
	}
	return pkg.PkgPath
}

// Members returns the documented type declarations of files and the
// documented fields of their struct types, keyed the way
// [xmldoc.MemberID] keys them at run time.
func Members(pkgPath string, files []*ast.File) []Member {
	var out []Member
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				if !ts.Name.IsExported() {
					continue
				}
				typeName := pkgPath + "." + ts.Name.Name

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				if text := summary(doc); text != "" {
					out = append(out, Member{Name: xmldoc.PrefixType + ":" + typeName, Summary: text})
				}

				if st, ok := ts.Type.(*ast.StructType); ok {
					out = append(out, fieldMembers(typeName, st)...)
				}
			}
		}
	}
	return out
}

func fieldMembers(typeName string, st *ast.StructType) []Member {
	var out []Member
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue
		}
		doc := field.Doc
		if doc == nil {
			doc = field.Comment
		}
		text := summary(doc)
		if text == "" {
			continue
		}

		tag := fieldTag(field)
		if name, _, _ := strings.Cut(tag.Get("json"), ","); name == "-" {
			continue
		}
		prefix := xmldoc.PrefixField
		if openapix.MemberKindOf(tag) == openapix.MemberProperty {
			prefix = xmldoc.PrefixProperty
		}

		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			out = append(out, Member{Name: prefix + ":" + typeName + "." + name.Name, Summary: text})
		}
	}
	return out
}

func fieldTag(field *ast.Field) reflect.StructTag {
	if field.Tag == nil {
		return ""
	}
	tag, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(tag)
}

func summary(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

// Write encodes d as an indented XML document.
func (d *Doc) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode documentation: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
