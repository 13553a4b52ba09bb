package main

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/pubgo/stmtmock/internal/adaptergen"
	"github.com/pubgo/stmtmock/internal/fileutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type options struct {
	pkg         string
	typeName    string
	exclude     []string
	excludeFile string
	out         string
	verify      bool
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "adaptergen",
		Short:         "adaptergen - generates case adapters delegating to mock modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := parseOptions(v)
			if err != nil {
				return err
			}
			return run(cmd, opts)
		},
	}

	cmd.Flags().String("pkg", ".", "package pattern holding the module")
	cmd.Flags().String("type", "", "module type to generate the adapter for")
	cmd.Flags().StringSlice("exclude", nil, "methods which are not delegated")
	cmd.Flags().String("exclude-file", "", "file listing methods which are not delegated, one per line")
	cmd.Flags().String("out", "", "output file. leave empty to use stdout")
	cmd.Flags().Bool("verify", false, "ensure that the output file is up to date instead of writing it")

	v.SetEnvPrefix("ADAPTERGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func parseOptions(v *viper.Viper) (*options, error) {
	opts := &options{
		pkg:         v.GetString("pkg"),
		typeName:    v.GetString("type"),
		exclude:     v.GetStringSlice("exclude"),
		excludeFile: v.GetString("exclude-file"),
		out:         v.GetString("out"),
		verify:      v.GetBool("verify"),
	}

	if opts.typeName == "" {
		return nil, fmt.Errorf("--type cannot be empty")
	}
	if opts.verify && opts.out == "" {
		return nil, fmt.Errorf("--verify needs --out")
	}

	if opts.excludeFile != "" {
		lines, err := fileutil.ReadLines(opts.excludeFile)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			opts.exclude = append(opts.exclude, line)
		}
	}
	return opts, nil
}

func run(cmd *cobra.Command, opts *options) error {
	in, err := adaptergen.Load("", opts.pkg)
	if err != nil {
		return err
	}

	module, err := in.Module(opts.typeName, opts.exclude...)
	if err != nil {
		return err
	}
	decl := adaptergen.Processor{}.Process(module)
	emitter := adaptergen.SourceEmitter{}

	switch {
	case opts.verify:
		if err := emitter.Verify(decl, opts.out); err != nil {
			return err
		}
		glog.Infof("%s is up to date", opts.out)
	case opts.out != "":
		if err := emitter.Save(decl, opts.out); err != nil {
			return fmt.Errorf("failed to save file to '%s': %w", opts.out, err)
		}
		glog.Infof("saved '%s' with %d delegating methods", opts.out, len(decl.Methods))
	default:
		src, err := emitter.Render(decl)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(src); err != nil {
			return err
		}
	}
	return nil
}
