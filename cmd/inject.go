package cmd

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/cottand/rebind/codec"
	"github.com/cottand/rebind/loading"
	"github.com/spf13/cobra"
)

var InjectCmd = NewInjectCmd()

type injectFlags struct {
	*transformFlags
	inMemory   *bool
	showSource *bool
}

func NewInjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inject file.yaml|file.toml",
		Short:        "Define the transformed types at runtime and list them",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}
	flags := &injectFlags{
		transformFlags: addTransformFlags(cmd),
		inMemory:       cmd.Flags().Bool("in-memory", false, "define reflect struct types instead of interpreting generated Go"),
		showSource:     cmd.Flags().Bool("source", false, "print the generated Go source of every type"),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runInject(cmd, args, flags)
	}
	return cmd
}

func runInject(cmd *cobra.Command, args []string, flags *injectFlags) error {
	flags.apply()
	all, err := loadTransformed(args[0], flags.transformFlags)
	if err != nil {
		return err
	}

	records := make(map[string][]byte, len(all))
	var errs []error
	for _, t := range all {
		data, err := codec.Encode(t.context, t.fields, t.methods)
		if err != nil {
			errs = append(errs, fmt.Errorf("could not encode %s: %s", t.context.Name, formatErr(err)))
			continue
		}
		records[t.context.Name] = data
		if *flags.showSource {
			printSource(cmd, data)
		}
	}

	var injector loading.Injector
	if *flags.inMemory {
		injector = loading.NewInMemory()
	} else {
		injector, err = loading.NewInterpreterScope()
		if err != nil {
			return err
		}
	}

	types, err := injector.Inject(cmd.Context(), records)
	if err != nil {
		errs = append(errs, err)
	}
	for _, name := range slices.Sorted(maps.Keys(types)) {
		_, _ = headerColor.Fprint(cmd.OutOrStdout(), name)
		_, _ = memberColor.Fprintf(cmd.OutOrStdout(), " %s\n", types[name].String())
	}
	return errors.Join(errs...)
}

func printSource(cmd *cobra.Command, data []byte) {
	record, err := codec.Decode(data)
	if err != nil {
		logger.Warn("could not decode record", "error", err)
		return
	}
	src, err := loading.Source(record)
	if err != nil {
		_, _ = errorColor.Fprintf(cmd.OutOrStdout(), "%s: %v\n", record.Type, err)
		return
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), src)
}
