package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// multipart headers and boundaries on top of the file itself
const multipartOverhead = 64 << 10

// ProfileImageUpload stores the image sent in field under dir as tmp-<uuid><ext>
// and exposes the stored path through GetUploadedFile.
func ProfileImageUpload(dir string, maxBytes int64, field string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
			if err := r.ParseMultipartForm(maxBytes + multipartOverhead); err != nil {
				if isTooLarge(err) {
					writeError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(maxBytes))
					return
				}
				writeError(w, http.StatusBadRequest, "formulario multipart no válido")
				return
			}
			defer r.MultipartForm.RemoveAll()

			file, header, err := r.FormFile(field)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("falta el archivo %q", field))
				return
			}
			defer file.Close()

			ext := strings.ToLower(filepath.Ext(header.Filename))
			if !allowedImageExt[ext] {
				writeError(w, http.StatusBadRequest, "Solo se permiten imágenes (jpg, jpeg, png, webp)")
				return
			}
			if header.Size > maxBytes {
				writeError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(maxBytes))
				return
			}

			path, err := saveTemp(dir, ext, file)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "no se pudo guardar el archivo")
				return
			}

			ctx := context.WithValue(r.Context(), UploadedFileKey, path)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func saveTemp(dir, ext string, src io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "tmp-"+uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	return path, dst.Close()
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

func tooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("El archivo supera el tamaño máximo de %d MB", maxBytes>>20)
}

// GetUploadedFile returns the temp path stored by ProfileImageUpload
func GetUploadedFile(ctx context.Context) string {
	if v, ok := ctx.Value(UploadedFileKey).(string); ok {
		return v
	}
	return ""
}
