package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/config"
	"signature-resolver/internal/mapping"
	"signature-resolver/internal/plan"
	"signature-resolver/internal/typemodel"
)

var errInvalidDeclarations = errors.New("declaration file has errors")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <declarations.yaml>",
		Short: "Validate a declaration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			f, err := mapping.LoadFile(args[0])
			if err != nil {
				return err
			}

			diags := mapping.Validate(f)
			s.printer.diagnostics(diags)
			s.printer.summary(diags)

			if diags.HasErrors() {
				return errInvalidDeclarations
			}

			return nil
		},
	}
}

func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool <declarations.yaml> <declaration>",
		Short: "Show the candidate pool of a declaration",
		Long:  `Walk a declaration and the declarations it uses, and list the methods to implement and the candidate methods available to it`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, model, err := prepare(cmd, args[0])
			if err != nil {
				return err
			}

			r := plan.NewResolver(model.Arena(), model.Lattice, model.Graph, s.config.ResolutionConfig())

			ret, err := r.Retrieve(args[1])
			if ret == nil {
				return err
			}

			if rerr := render(s, model.Arena(), &plan.ResolvedPlan{Retrieval: ret}); rerr != nil {
				return rerr
			}

			return err
		},
	}
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <declarations.yaml> <declaration>",
		Short: "Resolve the calls declared for a declaration",
		Long:  `Match every call declared for the declaration against its candidate pool and select the closest candidates`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, model, err := prepare(cmd, args[0])
			if err != nil {
				return err
			}

			calls := model.Calls(args[1])

			only, err := cmd.Flags().GetStringSlice("call")
			if err != nil {
				return fmt.Errorf("failed to get call flag: %w", err)
			}

			if len(only) > 0 {
				calls, err = filterCalls(calls, only)
				if err != nil {
					return err
				}
			}

			r := plan.NewResolver(model.Arena(), model.Lattice, model.Graph, s.config.ResolutionConfig())

			p, err := r.Resolve(cmd.Context(), args[1], calls)
			if p.Retrieval == nil {
				return err
			}

			if rerr := render(s, model.Arena(), p); rerr != nil {
				return rerr
			}

			return err
		},
	}

	cmd.Flags().StringSlice("call", nil, "resolve only the named calls")

	return cmd
}

func newLatticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lattice <package-pattern>...",
		Short: "Import Go packages and list the resulting classes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return fmt.Errorf("failed to get dir flag: %w", err)
			}

			l := typemodel.NewLattice(typemodel.NewArena())
			im := analyze.NewImporter(l)
			im.Dir = dir

			if err := im.LoadPackages(args...); err != nil {
				return err
			}

			names := l.ClassNames()

			s.printer.heading("classes (%d)", len(names))

			for _, name := range names {
				if c, ok := l.Class(name); ok {
					s.printer.class(l.Arena(), c)
				}
			}

			return nil
		},
	}

	cmd.Flags().String("dir", "", "directory to load packages from")

	return cmd
}

// prepare loads settings and builds the declaration file.
func prepare(cmd *cobra.Command, path string) (*settings, *mapping.Model, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}

	f, err := mapping.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	model, diags := mapping.Build(f)
	if diags.HasErrors() {
		s.printer.diagnostics(diags)
		return nil, nil, errInvalidDeclarations
	}

	return s, model, nil
}

func render(s *settings, a *typemodel.Arena, p *plan.ResolvedPlan) error {
	if s.config.Output.Format == config.FormatYAML {
		out, err := plan.ExportPlanYAML(a, p)
		if err != nil {
			return err
		}

		_, err = s.printer.w.Write(out)

		return err
	}

	s.printer.retrieval(a, p.Retrieval)

	if len(p.Resolutions) > 0 {
		s.printer.heading("calls (%d)", len(p.Resolutions))

		for i := range p.Resolutions {
			s.printer.resolution(a, &p.Resolutions[i])
		}
	}

	if all := p.Retrieval.Diagnostics.All(); len(all) > 0 {
		s.printer.heading("diagnostics")
		s.printer.diagnostics(&p.Retrieval.Diagnostics)
	}

	return nil
}

func filterCalls(calls []plan.Call, names []string) ([]plan.Call, error) {
	byName := make(map[string]plan.Call, len(calls))
	known := make([]string, 0, len(calls))

	for _, c := range calls {
		byName[c.Name] = c
		known = append(known, c.Name)
	}

	out := make([]plan.Call, 0, len(names))

	for _, n := range names {
		c, ok := byName[n]
		if !ok {
			if hint := analyze.Suggest(n, known, 1); len(hint) > 0 {
				return nil, fmt.Errorf("unknown call %q (did you mean %s?)", n, hint[0])
			}

			return nil, fmt.Errorf("unknown call %q", n)
		}

		out = append(out, c)
	}

	return out, nil
}
