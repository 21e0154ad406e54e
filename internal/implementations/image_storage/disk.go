package imagestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"ums/internal/core/domain/user"
)

type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create image directory: %w", err)
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Dir() string {
	return d.dir
}

func (d *Disk) Save(ctx context.Context, image user.Image) (ref user.ImageRef, err error) {
	sniffed, err := sniff(image)
	if err != nil {
		return ref, err
	}
	ref = sniffed.ref
	f, err := os.OpenFile(d.path(ref), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ref, err
	}
	if _, err = io.Copy(f, sniffed.content); err != nil {
		f.Close()
		os.Remove(d.path(ref))
		return ref, err
	}
	return ref, f.Close()
}

func (d *Disk) Delete(ctx context.Context, ref user.ImageRef) error {
	err := os.Remove(d.path(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (d *Disk) path(ref user.ImageRef) string {
	return filepath.Join(d.dir, filepath.Base(string(ref)))
}
