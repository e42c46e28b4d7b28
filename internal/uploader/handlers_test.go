package uploader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"postboard-go/internal/common/response"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content type detection
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type filePart struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

// receiveRouter exposes Receive the way the profile handler uses it
func receiveRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/upload", func(w http.ResponseWriter, r *http.Request) {
		file, err := h.Receive(w, r)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, file)
	})
	r.Get("/uploads/{filename}", h.HandleServeFile)
	return r
}

func TestHandler_Receive(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		files      []filePart
		wantStatus int
		wantCode   string
	}{
		{
			name:       "accepted",
			fields:     map[string]string{"caption": "me"},
			files:      []filePart{{"profilePic", "me.png", "image/png", pngHeader}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong media type",
			files:      []filePart{{"profilePic", "me.png", "text/plain", []byte("hi")}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNSUPPORTED_MEDIA_TYPE",
		},
		{
			name:       "wrong extension",
			files:      []filePart{{"profilePic", "malware.exe", "image/jpeg", []byte("MZ")}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNSUPPORTED_EXTENSION",
		},
		{
			name:       "file under another field",
			files:      []filePart{{"avatar", "me.png", "image/png", pngHeader}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "NO_FILE",
		},
		{
			name:       "too large",
			files:      []filePart{{"profilePic", "big.png", "image/png", make([]byte, 2*1024*1024+1)}},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "PAYLOAD_TOO_LARGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			p := NewPipeline(testUploadConfig("/uploads"), fs)
			router := receiveRouter(NewHandler(p, "profilePic"))

			body, contentType := multipartBody(t, tt.fields, tt.files...)
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var file StoredFile
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&file))
				assert.Equal(t, ".png", file.Extension)
				assert.Equal(t, URLPrefix+file.Filename, file.Path)
				assert.Equal(t, []string{file.Filename}, listDir(t, fs, "/uploads"))
				return
			}

			var errBody response.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&errBody))
			assert.False(t, errBody.Success)
			assert.Equal(t, tt.wantCode, errBody.Code)
			assert.NotEmpty(t, errBody.Message)
			assert.Empty(t, listDir(t, fs, "/uploads"))
		})
	}
}

func TestHandler_ReceiveRequiresMultipart(t *testing.T) {
	p := NewPipeline(testUploadConfig("/uploads"), afero.NewMemMapFs())
	router := receiveRouter(NewHandler(p, "profilePic"))

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(`{"profilePic":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_FILE")
}

func TestHandler_ServeFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := NewPipeline(testUploadConfig("/uploads"), fs)
	router := receiveRouter(NewHandler(p, "profilePic"))

	require.NoError(t, fs.MkdirAll("/uploads", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/uploads/1700000000000-5.png", pngHeader, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/uploads/1700000000000-6.png.part", pngHeader, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/uploads/secret.txt", []byte("secret"), 0o644))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
	}{
		{"stored file", "/uploads/1700000000000-5.png", http.StatusOK, "image/png"},
		{"missing file", "/uploads/1700000000000-9.png", http.StatusNotFound, ""},
		{"partial file", "/uploads/1700000000000-6.png.part", http.StatusNotFound, ""},
		{"not a generated name", "/uploads/secret.txt", http.StatusNotFound, ""},
		{"traversal", "/uploads/..%2Fsecret.txt", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			data, err := io.ReadAll(rec.Body)
			require.NoError(t, err)
			assert.Equal(t, pngHeader, data)
		})
	}
}

func TestWriteError_UnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestHandler_DiscardPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := NewHandler(NewPipeline(testUploadConfig("/uploads"), fs), "profilePic")

	require.NoError(t, fs.MkdirAll("/uploads", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/uploads/1700000000000-5.png", pngHeader, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/uploads/keep.png", pngHeader, 0o644))

	assert.NoError(t, h.DiscardPath(""))
	assert.NoError(t, h.DiscardPath("https://cdn.example.com/1700000000000-5.png"))
	assert.NoError(t, h.DiscardPath(URLPrefix+"keep.png"))
	assert.NoError(t, h.DiscardPath(URLPrefix+"../etc/passwd"))
	assert.Equal(t, []string{"1700000000000-5.png", "keep.png"}, listDir(t, fs, "/uploads"))

	assert.NoError(t, h.DiscardPath(URLPrefix+"1700000000000-5.png"))
	assert.Equal(t, []string{"keep.png"}, listDir(t, fs, "/uploads"))

	// already gone
	assert.NoError(t, h.DiscardPath(URLPrefix+"1700000000000-5.png"))
}
