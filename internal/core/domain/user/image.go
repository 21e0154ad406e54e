package user

import (
	"context"
	"io"
)

type ImageRef string

type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ImageStorage interface {
	Save(ctx context.Context, image Image) (ImageRef, error)
	Delete(ctx context.Context, ref ImageRef) error
}
