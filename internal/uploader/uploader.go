package uploader

// URLPrefix is the public route stored files are served from
const URLPrefix = "/uploads/"

// Descriptor describes one incoming file before it is accepted.
// Filename is client supplied and must not be trusted.
type Descriptor struct {
	MediaType string
	Filename  string
	Size      int64 // -1 when unknown
}

// StoredFile is an accepted, fully written upload
type StoredFile struct {
	Filename  string `json:"filename"`
	Dir       string `json:"-"`
	Extension string `json:"extension"`
	Size      int64  `json:"size"`
	Path      string `json:"path"`
}
