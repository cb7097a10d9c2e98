// Package utils collects configuration, logging and filesystem helpers
package utils

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DirIsAccessible verifies that directory is writable, missing directory is not an error
func DirIsAccessible(dirname string) error {
	fileStat, err := os.Stat(dirname)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "error checking directory '%s'", dirname)
		}
		return nil
	}

	if !fileStat.IsDir() {
		return errors.Errorf("'%s' is not a directory", dirname)
	}

	if fileStat.Mode().Perm() == 0000 || unix.Access(dirname, unix.W_OK) != nil {
		return errors.Errorf("'%s' is inaccessible, check access rights", dirname)
	}

	return nil
}
