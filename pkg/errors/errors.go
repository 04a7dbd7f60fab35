package errors

const (
	CodeCatalogNotFound = "CATALOG_NOT_FOUND"
)

// Types ////////////////////////////////////////

type CodedError interface {
	Code() string
}

type codedError struct {
	code string
	msg  string
}

func (e *codedError) Error() string {
	return e.msg
}

func (e *codedError) Code() string {
	return e.code
}

// Error Creators ///////////////////////////////

// The image catalog was not found
func CatalogNotFound(msg string) error {
	return &codedError{
		code: CodeCatalogNotFound,
		msg:  msg,
	}
}

// Helpers //////////////////////////////////////

func IsCatalogNotFound(err error) bool {
	return Code(err) == CodeCatalogNotFound
}

// Return the error code, or the empty string
func Code(err error) string {
	if cerr, ok := err.(CodedError); ok {
		return cerr.Code()
	}

	return ""
}
