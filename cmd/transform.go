package cmd

import (
	"fmt"
	"io"

	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/transform"
	"github.com/spf13/cobra"
)

var TransformCmd = NewTransformCmd()

func NewTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "transform file.yaml|file.toml",
		Short:        "Print the members of described types, transformed",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}
	flags := addTransformFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, flags)
	}
	return cmd
}

func transformInto(
	ctx *description.TypeDescription,
	from []*description.TypeDescription,
	fields transform.Transformer[description.FieldDescription],
	methods transform.Transformer[description.MethodDescription],
) transformed {
	out := transformed{context: ctx}
	for _, t := range from {
		for _, f := range t.Fields {
			out.fields = append(out.fields, fields.Transform(ctx, f))
		}
		for _, m := range t.Methods {
			out.methods = append(out.methods, methods.Transform(ctx, m))
		}
	}
	return out
}

func runTransform(cmd *cobra.Command, args []string, flags *transformFlags) error {
	flags.apply()
	all, err := loadTransformed(args[0], flags)
	if err != nil {
		return err
	}
	failed := 0
	for _, t := range all {
		failed += printTransformed(cmd.OutOrStdout(), t)
	}
	if failed > 0 {
		return fmt.Errorf("%d members could not be resolved", failed)
	}
	return nil
}

// printTransformed writes the members of t and returns how many failed to resolve
func printTransformed(w io.Writer, t transformed) int {
	failed := 0
	_, _ = headerColor.Fprintln(w, t.context.String())
	for _, f := range t.fields {
		shown, err := description.ShowField(f)
		failed += printMember(w, shown, err)
	}
	for _, m := range t.methods {
		shown, err := description.ShowMethod(m)
		failed += printMember(w, shown, err)
	}
	return failed
}

func printMember(w io.Writer, shown string, err error) int {
	if err != nil {
		_, _ = errorColor.Fprintf(w, "  %s\n", formatErr(err))
		return 1
	}
	_, _ = memberColor.Fprintf(w, "  %s\n", shown)
	return 0
}
