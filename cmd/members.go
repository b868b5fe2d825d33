package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/describe"
	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/internal/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logger = log.DefaultLogger.With("section", "cmd")

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	memberColor = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
)

type transformFlags struct {
	logLevel        *int
	logSections     *[]string
	debugErrors     *bool
	fieldModifiers  *[]string
	methodModifiers *[]string
	context         *string
	noColor         *bool
}

func addTransformFlags(cmd *cobra.Command) *transformFlags {
	return &transformFlags{
		logLevel:        cmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level"),
		logSections:     cmd.Flags().StringSlice("log-section", nil, "sections whose debug and info logs are shown, like transform"),
		debugErrors:     cmd.Flags().Bool("debug-errors", false, "prefix errors with the frame that raised them"),
		fieldModifiers:  cmd.Flags().StringSlice("field-modifiers", nil, "modifiers applied to every field, in order"),
		methodModifiers: cmd.Flags().StringSlice("method-modifiers", nil, "modifiers applied to every method, in order"),
		context:         cmd.Flags().StringP("type", "t", "", "type to transform members into, instead of their own"),
		noColor:         cmd.Flags().Bool("no-color", false, "disable colored output"),
	}
}

func (f *transformFlags) apply() {
	log.SetLevel(slog.Level(*f.logLevel))
	for _, section := range *f.logSections {
		log.EnableSection(section)
	}
	binderr.SetDebugPrinting(*f.debugErrors)
	if *f.noColor {
		color.NoColor = true
	}
}

// transformed are the members of a description file attached to one context
type transformed struct {
	context *description.TypeDescription
	fields  []description.FieldDescription
	methods []description.MethodDescription
}

// loadTransformed reads the file at path and transforms the members it describes.
//
// Members are transformed into the context named by the flags or by the file,
// or into their own declaring type when neither names one.
func loadTransformed(path string, flags *transformFlags) ([]transformed, error) {
	file, err := describe.LoadFile(path)
	if err != nil {
		return nil, err
	}
	types, err := file.Build()
	if err != nil {
		return nil, fmt.Errorf("could not build types of %s: %s", path, formatErr(err))
	}
	fields, methods, err := file.Transform.Transformers(*flags.fieldModifiers, *flags.methodModifiers)
	if err != nil {
		return nil, fmt.Errorf("could not build transformers: %s", formatErr(err))
	}

	contextName := file.Transform.Context
	if *flags.context != "" {
		contextName = *flags.context
	}

	var out []transformed
	if contextName == "" {
		for _, t := range types {
			out = append(out, transformInto(t, []*description.TypeDescription{t}, fields, methods))
		}
		return out, nil
	}
	for _, t := range types {
		if t.Name == contextName {
			logger.Info("transforming into context", "type", contextName, "from", len(types))
			return append(out, transformInto(t, types, fields, methods)), nil
		}
	}
	return nil, fmt.Errorf("type '%s' is not described in %s", contextName, path)
}

func formatErr(err error) string {
	var bindErr binderr.BindError
	if !errors.As(err, &bindErr) {
		return err.Error()
	}
	if bindErr.Error() == err.Error() {
		return binderr.FormatWithCode(bindErr)
	}
	return fmt.Sprintf("(E%03d) %s", bindErr.Code(), err.Error())
}
