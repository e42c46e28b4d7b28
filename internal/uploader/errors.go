package uploader

import (
	"errors"
	"net/http"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrPayloadTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrStorageWriteFailed   = errors.New("storage write failed")
	ErrUploadTimeout        = errors.New("upload timed out")
	ErrIncompleteUpload     = errors.New("upload interrupted")
	ErrNoFile               = errors.New("no file provided")
)

// UploadError is the only error type returned by the pipeline.
// Message is safe to show to clients; the underlying cause is kept for logs
// and is not reachable through errors.Unwrap.
type UploadError struct {
	Kind    error
	Code    string
	Message string
	cause   error
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Kind
}

// Cause returns the low-level error that triggered the rejection, if any
func (e *UploadError) Cause() error {
	return e.cause
}

func newUploadError(kind error, message string, cause error) *UploadError {
	return &UploadError{
		Kind:    kind,
		Code:    codeOf(kind),
		Message: message,
		cause:   cause,
	}
}

func codeOf(kind error) string {
	switch kind {
	case ErrUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case ErrUnsupportedExtension:
		return "UNSUPPORTED_EXTENSION"
	case ErrPayloadTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case ErrStorageUnavailable:
		return "STORAGE_UNAVAILABLE"
	case ErrStorageWriteFailed:
		return "STORAGE_WRITE_FAILED"
	case ErrUploadTimeout:
		return "UPLOAD_TIMEOUT"
	case ErrIncompleteUpload:
		return "INCOMPLETE_UPLOAD"
	case ErrNoFile:
		return "NO_FILE"
	default:
		return "INTERNAL_ERROR"
	}
}

// StatusCode maps an upload error to the HTTP status the transport answers with
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedMediaType),
		errors.Is(err, ErrUnsupportedExtension),
		errors.Is(err, ErrIncompleteUpload),
		errors.Is(err, ErrNoFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUploadTimeout):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
