package osutil

import (
	"fmt"
)

// Constrain is not available on Windows. Configuring any of the privilege options is an
// error rather than a silent noop.
func Constrain(userName, groupName, chrootDir string) error {
	return fmt.Errorf("osutil.Constrain: privilege constraints are not supported on Windows")
}

func ConstraintReport() string {
	return "no constraints"
}
