package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/louisbranch/roller/internal/platform/i18n/catalog"
)

// FlagUsage maps flag names to the catalog keys of their descriptions.
type FlagUsage map[string]string

// LocalizeUsage installs fs.Usage so help is rendered in *locale as it stands
// when help is printed, after env and flags have been read. The usage line
// comes from usageKey and each flag named in flags gets its description from
// the catalog.
func LocalizeUsage(fs *pflag.FlagSet, locale *string, usageKey string, flags FlagUsage) {
	fs.Usage = func() {
		current := catalog.BaseLocale
		if locale != nil {
			current = *locale
		}
		printer := catalog.Default().Printer(current)
		fs.VisitAll(func(f *pflag.Flag) {
			if key, ok := flags[f.Name]; ok {
				f.Usage = printer.Sprintf(key)
			}
		})
		fmt.Fprintln(fs.Output(), printer.Sprintf(usageKey))
		fs.PrintDefaults()
	}
}
