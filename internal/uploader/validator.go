package uploader

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const mediaTypeMessage = "Only images are allowed"

// Validator checks the declared media type and the filename extension of
// an upload against allow-lists. It never looks at file contents.
type Validator struct {
	mediaTypes       map[string]struct{}
	extensions       map[string]struct{}
	extensionMessage string
}

// NewValidator builds a validator from allowed media types and extensions
// (with leading dot). Media types must match exactly; extensions are
// matched case-insensitively.
func NewValidator(mediaTypes, extensions []string) *Validator {
	v := &Validator{
		mediaTypes:       make(map[string]struct{}, len(mediaTypes)),
		extensions:       make(map[string]struct{}, len(extensions)),
		extensionMessage: extensionMessage(extensions),
	}
	for _, t := range mediaTypes {
		v.mediaTypes[t] = struct{}{}
	}
	for _, ext := range extensions {
		v.extensions[strings.ToLower(ext)] = struct{}{}
	}
	return v
}

// Validate returns nil when the descriptor is accepted, otherwise an
// *UploadError of kind ErrUnsupportedMediaType or ErrUnsupportedExtension.
// The media type is checked first.
func (v *Validator) Validate(d Descriptor) error {
	log.Debug().
		Str("media_type", d.MediaType).
		Str("filename", d.Filename).
		Msg("validating upload")

	if _, ok := v.mediaTypes[d.MediaType]; !ok {
		return newUploadError(ErrUnsupportedMediaType, mediaTypeMessage, nil)
	}

	ext := strings.ToLower(filepath.Ext(d.Filename))
	if _, ok := v.extensions[ext]; !ok {
		return newUploadError(ErrUnsupportedExtension, v.extensionMessage, nil)
	}

	return nil
}

// extensionMessage renders "Only .png, .jpg, and .jpeg are allowed"
func extensionMessage(extensions []string) string {
	var list string
	switch n := len(extensions); n {
	case 0:
		return "No file extensions are allowed"
	case 1:
		list = extensions[0]
	case 2:
		list = extensions[0] + " and " + extensions[1]
	default:
		list = strings.Join(extensions[:n-1], ", ") + ", and " + extensions[n-1]
	}
	return "Only " + list + " are allowed"
}
