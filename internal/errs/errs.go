package errs

import (
	"io/fs"
	"strings"
)

// Kind classifies an Error. Kinds are comparable sentinels, so callers match
// them with errors.Is.
type Kind struct {
	name string
}

func (k *Kind) Error() string { return k.name }

var (
	InvalidRecord     = &Kind{"invalid record"}
	UnsupportedFormat = &Kind{"unsupported format"}
	Serialization     = &Kind{"serialization failed"}
	DirectoryCreation = &Kind{"directory creation failed"}
	NotFound          = &Kind{"file not found"}
	InvalidAppName    = &Kind{"invalid app name"}
	EnvVar            = &Kind{"environment variable error"}
	IO                = &Kind{"file i/o failed"}
	InvalidScope      = &Kind{"invalid scope"}
)

// Error is the single error category returned by the store and its helpers.
type Error struct {
	Kind    *Kind
	Op      string
	Path    string
	Format  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.name)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Path != "" {
		b.WriteString(" (path=")
		b.WriteString(e.Path)
		if e.Format != "" {
			b.WriteString(", format=")
			b.WriteString(e.Format)
		}
		b.WriteString(")")
	} else if e.Format != "" {
		b.WriteString(" (format=")
		b.WriteString(e.Format)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the error's kind. NotFound errors also match fs.ErrNotExist.
func (e *Error) Is(target error) bool {
	if e.Kind != nil && target == error(e.Kind) {
		return true
	}
	return e.Kind == NotFound && target == fs.ErrNotExist
}

// New builds an Error of the given kind.
func New(kind *Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap builds an Error of the given kind around err.
func Wrap(kind *Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// WithPath sets the file path the error refers to.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithFormat sets the format name the error refers to.
func (e *Error) WithFormat(format string) *Error {
	e.Format = format
	return e
}
