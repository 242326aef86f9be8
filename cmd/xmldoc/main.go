// Command xmldoc writes the XML documentation side-car for Go packages.
//
// Usage:
//
//	xmldoc generate ./cmd/api -o bin/api.xml
//
// The resolver in package xmldoc looks for the file next to the binary with
// the binary's extension swapped for ".xml".
package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Gobd/openapix/internal/docgen"
)

func main() {
	root := &cobra.Command{
		Use:          "xmldoc",
		Short:        "Generate XML documentation side-cars from Go doc comments",
		SilenceUsage: true,
	}

	root.AddCommand(newGenerateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var output string
	var dir string
	var assembly string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Extract type and field comments into an XML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			return runGenerate(cmd.Context(), logger, cmd.OutOrStdout(), generateParams{
				Dir:      dir,
				Patterns: args,
				Output:   output,
				Assembly: assembly,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to resolve package patterns from")
	cmd.Flags().StringVar(&assembly, "assembly", "", "Assembly name, defaults to the module path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every documented member")

	return cmd
}

type generateParams struct {
	Dir      string
	Patterns []string
	Output   string
	Assembly string
}

func runGenerate(ctx context.Context, logger *slog.Logger, stdout io.Writer, p generateParams) error {
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := docgen.Load(ctx, p.Dir, p.Patterns...)
	if err != nil {
		return err
	}
	if p.Assembly != "" {
		doc.Assembly.Name = p.Assembly
	}
	for _, m := range doc.Members {
		logger.Debug("documented member", "name", m.Name)
	}

	w := stdout
	if p.Output != "-" && p.Output != "" {
		f, err := os.Create(p.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := doc.Write(w); err != nil {
		return err
	}

	logger.Info("wrote xml documentation", "assembly", doc.Assembly.Name, "members", len(doc.Members), "output", p.Output)
	return nil
}
