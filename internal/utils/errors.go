package utils

import (
	docerrors "github.com/toyz/routedoc/internal/errors"
)

// WrapReadError wraps a failure to read a source or config file
func WrapReadError(path string, err error) error {
	return docerrors.WrapFileSystemError("read", path, err)
}

// WrapWriteError wraps a failure to write a generated file
func WrapWriteError(path string, err error) error {
	return docerrors.WrapFileSystemError("write", path, err)
}

// WrapRemoveError wraps a failure to delete a generated file
func WrapRemoveError(path string, err error) error {
	return docerrors.WrapFileSystemError("remove", path, err)
}

// WrapScanError wraps a failure while walking a directory tree
func WrapScanError(path string, err error) error {
	return docerrors.WrapFileSystemError("scan", path, err)
}
