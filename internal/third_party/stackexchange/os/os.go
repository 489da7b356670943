package os

import (
	std_os "os"

	"github.com/pkg/errors"
)

// IsPipeStdin reports whether standard input is a pipe or file rather than a terminal.
//
// Origin:
//   https://stackoverflow.com/questions/22744443/check-if-there-is-something-to-read-on-stdin-in-golang/26567513#26567513
//   https://stackoverflow.com/users/571904/ostler-c
//
// Changes:
//   - Migrate to github.com/pkg/errors
//   - Accept the file to support tests
func IsPipeStdin(stdin *std_os.File) (bool, error) {
	stat, err := stdin.Stat()
	if err != nil {
		return false, errors.WithStack(err)
	}
	return (stat.Mode() & std_os.ModeCharDevice) == 0, nil
}
