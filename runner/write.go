package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile replaces the content of the file at name with data.
//
// The data is written to a temporary file in the same directory, which then
// replaces the original by rename, so readers never see a partial file. The
// original permission bits are kept and symlinks are written through.
func WriteFile(name string, data []byte) error {
	target, err := filepath.EvalSymlinks(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".keepsorted-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	err = writeAndClose(tmp, data, info.Mode().Perm())
	if err == nil {
		err = os.Rename(tmp.Name(), target)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, errors.Join(err, removeIfExists(tmp.Name())))
	}

	return nil
}

func writeAndClose(f *os.File, data []byte, perm os.FileMode) error {
	_, err := f.Write(data)
	if err == nil {
		err = f.Chmod(perm)
	}

	return errors.Join(err, f.Close())
}

func removeIfExists(name string) error {
	err := os.Remove(name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
