package form

import (
	"errors"
	"io"
	"net/http"
	c "ums/internal/core/domain/common"
	"ums/internal/core/domain/user"
)

const (
	MAX_MEMORY     = 1 << 20
	MAX_IMAGE_SIZE = 5 << 20
	MAX_BODY_SIZE  = MAX_IMAGE_SIZE + MAX_MEMORY
)

var ErrImageTooLarge = errors.New("image is too large")

// Parse reads a multipart form, limiting the request body size.
func Parse(rw http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(rw, r.Body, MAX_BODY_SIZE)
	return r.ParseMultipartForm(MAX_MEMORY)
}

// Image returns the uploaded file of the given field, if any. The returned close
// function must be called once the image content is no longer needed.
func Image(r *http.Request, field string) (image c.Optional[user.Image], closeFunc func(), err error) {
	closeFunc = func() {}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return image, closeFunc, nil
	}
	if err != nil {
		return image, closeFunc, err
	}
	if header.Size > MAX_IMAGE_SIZE {
		file.Close()
		return image, closeFunc, ErrImageTooLarge
	}
	return c.Some(user.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     io.LimitReader(file, MAX_IMAGE_SIZE),
	}), func() { file.Close() }, nil
}
