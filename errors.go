package recordstore

import "github.com/compose-network/recordstore/internal/errs"

// Error is returned by every failing operation. Match its kind with
// errors.Is and one of the Err values below.
type Error = errs.Error

// Kind identifies a class of Error.
type Kind = errs.Kind

var (
	// ErrInvalidRecord: the value or type is not a struct (or pointer to one).
	ErrInvalidRecord = errs.InvalidRecord
	// ErrUnsupportedFormat: no explicit format and an unknown extension.
	ErrUnsupportedFormat = errs.UnsupportedFormat
	// ErrSerialization: a file could not be parsed or a record encoded.
	ErrSerialization = errs.Serialization
	// ErrDirectoryCreation: a scope directory could not be created.
	ErrDirectoryCreation = errs.DirectoryCreation
	// ErrNotFound: the file to load does not exist. Also matches fs.ErrNotExist.
	ErrNotFound = errs.NotFound
	// ErrInvalidAppName: the application name is empty.
	ErrInvalidAppName = errs.InvalidAppName
	// ErrEnvVar: an environment override could not be applied.
	ErrEnvVar = errs.EnvVar
	// ErrIO: reading or writing a file failed.
	ErrIO = errs.IO
	// ErrInvalidScope: a Scope other than ScopeConfig or ScopeData.
	ErrInvalidScope = errs.InvalidScope
)
