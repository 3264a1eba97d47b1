// ABOUTME: Multipart form builder for file-bearing requests
// ABOUTME: The writer owns the Content-Type header including the boundary

package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Form accumulates a multipart request body. Callers add fields and files,
// then pass the form to a client method; the transport reads the content
// type from the underlying writer. Never set Content-Type manually for a
// multipart request: a hand-written header misses the boundary and the
// backend rejects the upload.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	closed bool
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) error {
	return f.writer.WriteField(name, value)
}

// AddFile appends a file part read from r.
func (f *Form) AddFile(field, filename string, r io.Reader) error {
	part, err := f.writer.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

// AddFilePath appends a file part read from the local filesystem.
func (f *Form) AddFilePath(field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return f.AddFile(field, filepath.Base(path), file)
}

// contentType finalizes the body and returns the multipart content type
// with its generated boundary.
func (f *Form) contentType() string {
	f.finalize()
	return f.writer.FormDataContentType()
}

func (f *Form) reader() io.Reader {
	f.finalize()
	return &f.buf
}

func (f *Form) finalize() {
	if !f.closed {
		f.writer.Close()
		f.closed = true
	}
}
