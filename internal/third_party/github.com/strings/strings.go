package strings

import (
	"encoding/csv"
	std_strings "strings"

	"github.com/pkg/errors"
)

// ReadAsCSV parses a single line of comma-separated values, e.g. the String() of a
// pflag string slice without its brackets.
//
// Origin:
//   https://github.com/spf13/viper/blob/6d33b5a963d922d182c91e8a1c88d81fd150cfd4/viper.go#L1073
//   MIT: https://github.com/spf13/viper/blob/6d33b5a963d922d182c91e8a1c88d81fd150cfd4/LICENSE
//
// Changes:
//   - Migrate to github.com/pkg/errors
func ReadAsCSV(val string) ([]string, error) {
	if val == "" {
		return []string{}, nil
	}
	stringReader := std_strings.NewReader(val)
	csvReader := csv.NewReader(stringReader)
	fields, err := csvReader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CSV [%s]", val)
	}
	return fields, nil
}
