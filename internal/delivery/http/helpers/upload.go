package helpers

import (
	"fmt"
	"mime/multipart"
	"net/http"
)

// MaxUploadSize bounds in-memory parsing of multipart upload bodies.
const MaxUploadSize = 8 << 20 // 8 MiB

// FormImageFile returns the first uploaded file from a multipart request,
// preferring the "file" field. The caller must close the returned file.
func FormImageFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		return nil, nil, fmt.Errorf("parse multipart form: %w", err)
	}
	if file, header, err := r.FormFile("file"); err == nil {
		return file, header, nil
	}
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				return nil, nil, fmt.Errorf("open uploaded file: %w", err)
			}
			return file, header, nil
		}
	}
	return nil, nil, fmt.Errorf("no file in request")
}
