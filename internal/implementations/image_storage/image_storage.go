package imagestorage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"ums/internal/core/domain/user"

	"github.com/google/uuid"
)

const SNIFF_LEN = 512

var allowedExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type sniffedImage struct {
	ref         user.ImageRef
	contentType string
	content     io.Reader
}

// sniff detects the image type from its first bytes. The client supplied
// content type and filename are ignored.
func sniff(image user.Image) (sniffed sniffedImage, err error) {
	head := make([]byte, SNIFF_LEN)
	n, err := io.ReadFull(image.Content, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return sniffed, fmt.Errorf("could not read image: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := allowedExtensions[contentType]
	if !ok {
		return sniffed, fmt.Errorf("%w: %q", user.ErrUnsupportedImage, contentType)
	}
	return sniffedImage{
		ref:         user.ImageRef(uuid.New().String() + ext),
		contentType: contentType,
		content:     io.MultiReader(bytes.NewReader(head), image.Content),
	}, nil
}
