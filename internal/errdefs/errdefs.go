package errdefs

type ErrorType int

const (
	ErrTypeElevatedPrivileges ErrorType = iota
	ErrTypeUnsupportedPlatform
	ErrTypeNoPackageManager
	ErrTypeShellInstallFailed
	ErrTypeInvalidSelection
	ErrTypeInstallAborted
	ErrTypeGeneric
)

type CustomError struct {
	Type    ErrorType
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

// IsFatal reports whether the error must abort the whole run with a
// non-zero exit, as opposed to being reported and continued past.
func IsFatal(err error) bool {
	ce, ok := err.(*CustomError)
	if !ok {
		return false
	}
	switch ce.Type {
	case ErrTypeElevatedPrivileges, ErrTypeShellInstallFailed, ErrTypeInvalidSelection:
		return true
	}
	return false
}

var ErrInstallAborted = NewCustomError(ErrTypeInstallAborted, "installation aborted by user")
