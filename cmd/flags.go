package cmd

import (
	"github.com/hansbonini/ulmake/pkg"
	"github.com/spf13/pflag"
)

// resolveULDir returns the directory given on the command line, or the configured one
func resolveULDir(args []string, index int) string {
	if len(args) > index && args[index] != "" {
		return args[index]
	}
	return config.ULPath
}

// addFragmentSizeFlag registers the hidden flag overriding the fragment size
func addFragmentSizeFlag(flags *pflag.FlagSet, target *int64) {
	flags.Int64Var(target, "fragment-size", pkg.DefaultFragmentSize, "size in bytes of each ul.* fragment")
	_ = flags.MarkHidden("fragment-size")
}

// addFormatFlag registers the listing format flag
func addFormatFlag(flags *pflag.FlagSet, target *string) {
	flags.StringVarP(target, "format", "f", "", "listing format: table or yaml (default from config)")
}

// newProcessor builds a processor honoring the configuration
func newProcessor(extra ...pkg.Option) *pkg.ULProcessor {
	opts := append([]pkg.Option{pkg.WithStrict(config.StrictCatalog)}, extra...)
	return pkg.NewULProcessor(opts...)
}
