package imagestorage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"ums/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

const PNG = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

func TestDiskSaveAndDelete(t *testing.T) {
	ctx := context.Background()
	storage, err := NewDisk(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	ref, err := storage.Save(ctx, user.Image{
		Filename:    "avatar.png",
		ContentType: "image/png",
		Content:     strings.NewReader(PNG),
	})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(ref), ".png"))

	content, err := os.ReadFile(filepath.Join(storage.Dir(), string(ref)))
	require.NoError(t, err)
	require.Equal(t, PNG, string(content))

	require.NoError(t, storage.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(storage.Dir(), string(ref)))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, storage.Delete(ctx, ref))
}

func TestDiskDeleteStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	storage, err := NewDisk(filepath.Join(dir, "images"))
	require.NoError(t, err)

	require.NoError(t, storage.Delete(context.Background(), user.ImageRef("../outside.txt")))

	_, err = os.Stat(outside)
	require.NoError(t, err)
}

func TestDiskRejectsContentThatIsNotAnImage(t *testing.T) {
	storage, err := NewDisk(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	cases := []struct {
		id    string
		image user.Image
	}{
		{
			id:    "html declared as png",
			image: user.Image{Filename: "evil.png", ContentType: "image/png", Content: strings.NewReader("<html><script>alert(1)</script>")},
		},
		{
			id:    "html with html content type",
			image: user.Image{Filename: "evil.png", ContentType: "text/html", Content: strings.NewReader("<script>alert(1)</script>")},
		},
		{
			id:    "shell script",
			image: user.Image{Filename: "script.sh", ContentType: "text/x-sh", Content: strings.NewReader("#!/bin/sh\nrm -rf /")},
		},
		{
			id:    "empty",
			image: user.Image{Filename: "empty.png", ContentType: "image/png", Content: strings.NewReader("")},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			_, err := storage.Save(context.Background(), testcase.image)
			require.ErrorIs(t, err, user.ErrUnsupportedImage)
		})
	}

	entries, err := os.ReadDir(storage.Dir())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSniffUsesContentNotHeaders(t *testing.T) {
	cases := []struct {
		id                  string
		content             string
		expectedContentType string
		expectedExt         string
	}{
		{id: "png", content: PNG, expectedContentType: "image/png", expectedExt: ".png"},
		{id: "jpeg", content: "\xFF\xD8\xFF\xE0\x00\x10JFIF", expectedContentType: "image/jpeg", expectedExt: ".jpg"},
		{id: "gif", content: "GIF89a\x01\x00\x01\x00", expectedContentType: "image/gif", expectedExt: ".gif"},
		{id: "webp", content: "RIFF\x24\x00\x00\x00WEBPVP8 ", expectedContentType: "image/webp", expectedExt: ".webp"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			sniffed, err := sniff(user.Image{
				Filename:    "upload.txt",
				ContentType: "text/html",
				Content:     strings.NewReader(testcase.content),
			})
			require.NoError(t, err)
			require.Equal(t, testcase.expectedContentType, sniffed.contentType)
			require.True(t, strings.HasSuffix(string(sniffed.ref), testcase.expectedExt))

			content, err := io.ReadAll(sniffed.content)
			require.NoError(t, err)
			require.Equal(t, testcase.content, string(content))
		})
	}
}
