package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImageBytes caps a single product image.
const maxImageBytes = 5 << 20

var errNotAnImage = errors.New("only image uploads are accepted")

// formImages reads the uploaded images under field into memory so they can
// be forwarded to the API. Each file gets a unique name; requests that are
// not multipart simply have no images.
func formImages(c *gin.Context, field string) ([]apiclient.File, error) {
	// 1. Get the files from the request
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	files := make([]apiclient.File, 0, len(form.File[field]))
	for _, header := range form.File[field] {
		// 2. Reject oversized files
		if header.Size > maxImageBytes {
			return nil, fmt.Errorf("%s is larger than %d MB", header.Filename, maxImageBytes>>20)
		}

		// 3. Read and sniff the content
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", header.Filename, err)
		}
		contentType := http.DetectContentType(data)
		if !strings.HasPrefix(contentType, "image/") {
			return nil, fmt.Errorf("%s: %w", header.Filename, errNotAnImage)
		}

		// 4. Generate a safe unique filename (uuid + extension)
		name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
		files = append(files, apiclient.File{Name: name, ContentType: contentType, Data: data})
	}
	return files, nil
}

// formValues returns the repeated multipart or urlencoded values of field.
func formValues(c *gin.Context, field string) []string {
	values := c.PostFormArray(field)
	if len(values) == 0 {
		values = c.PostFormArray(field + "[]")
	}
	return values
}
