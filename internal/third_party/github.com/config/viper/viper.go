package viper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	std_viper "github.com/spf13/viper"

	cage_strings "github.com/codeactual/stackutils/internal/cage/strings"
	tp_strings "github.com/codeactual/stackutils/internal/third_party/github.com/strings"
)

// MergeConfig supplements the one-way binding provided by viper.BindPFlag(s) which only
// allows reading the bound config values via viper, e.g. GetString, but not through
// variables bound to configs by cobra, e.g. via StringVarP(). This allows reading of
// the bound values from the latter.
//
// Origin (except for "stringSlice" case):
//   https://github.com/spf13/viper/issues/35#issuecomment-71908327
//   https://github.com/xh3b4sd
//
// Changes:
//
// - Add stringSlice support from https://github.com/spf13/viper.
// - Return an error, instead of panicking, for unsupported flag types.
// - Return the first error instead of the last.
func MergeConfig(fs *pflag.FlagSet, v *std_viper.Viper) (firstErr error) {
	set := func(f *pflag.Flag, value string) {
		if err := f.Value.Set(value); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "failed to merge value [%s] into flag [%s]", value, f.Name)
		}
	}

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}

		flagValue := f.Value.String()

		switch f.Value.Type() {
		case "bool":
			viperValue := strconv.FormatBool(v.GetBool(f.Name))

			if flagValue != viperValue {
				set(f, viperValue)
			}
		case "string":
			viperValue := v.GetString(f.Name)

			if flagValue != viperValue && viperValue != "" {
				set(f, viperValue)
			}

		// Origin:
		//   https://github.com/spf13/viper/blob/6d33b5a963d922d182c91e8a1c88d81fd150cfd4/viper.go#L1060
		//   MIT: https://github.com/spf13/viper/blob/6d33b5a963d922d182c91e8a1c88d81fd150cfd4/LICENSE
		case "stringSlice":
			viperValue := v.GetStringSlice(f.Name)

			s := strings.TrimPrefix(flagValue, "[")
			s = strings.TrimSuffix(s, "]")
			res, _ := tp_strings.ReadAsCSV(s)

			a := cage_strings.NewSet().AddSlice(viperValue)
			b := cage_strings.NewSet().AddSlice(res)

			if !a.Equals(b) && len(viperValue) != 0 {
				set(f, strings.Join(viperValue, ","))
			}

		case "int":
			viperValue := strconv.Itoa(v.GetInt(f.Name))

			if flagValue != viperValue {
				set(f, viperValue)
			}
		default:
			if firstErr == nil {
				firstErr = errors.New(fmt.Sprintf("unsupported flag type %s for flag %s", f.Value.Type(), f.Name))
			}
		}
	})
	return firstErr
}
