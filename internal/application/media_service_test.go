package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeStorage struct {
	path        string
	contentType string
	body        []byte
	err         error
}

func (f *fakeStorage) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	f.path, f.contentType, f.body = objectPath, contentType, b
	return "https://cdn.example.com/" + objectPath, nil
}

func pngBytes(n int) []byte {
	b := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	return append(b, bytes.Repeat([]byte{0}, n)...)
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("stores png under its folder", func(t *testing.T) {
		st := &fakeStorage{}
		svc := NewMediaService(st, 1<<20, quietLogger())
		img := pngBytes(4096)

		url, err := svc.UploadImage(ctx, FolderBlog, int64(len(img)), bytes.NewReader(img))
		if err != nil {
			t.Fatalf("UploadImage: %v", err)
		}
		if !strings.HasPrefix(st.path, "images/blog/") || !strings.HasSuffix(st.path, ".png") {
			t.Errorf("unexpected object path %q", st.path)
		}
		if st.contentType != "image/png" {
			t.Errorf("expected image/png, got %q", st.contentType)
		}
		if !bytes.Equal(st.body, img) {
			t.Error("expected the full body to reach storage")
		}
		if url != "https://cdn.example.com/"+st.path {
			t.Errorf("unexpected url %q", url)
		}
	})

	cases := []struct {
		name   string
		svc    *MediaService
		folder string
		body   []byte
		size   int64
		want   error
	}{
		{"storage disabled", NewMediaService(nil, 0, nil), FolderBlog, pngBytes(10), 10, ErrStorageDisabled},
		{"unknown folder", NewMediaService(&fakeStorage{}, 0, nil), "avatars", pngBytes(10), 10, ErrUnknownFolder},
		{"declared too large", NewMediaService(&fakeStorage{}, 100, nil), FolderProfile, pngBytes(10), 101, ErrImageTooLarge},
		{"actually too large", NewMediaService(&fakeStorage{}, 100, nil), FolderProfile, pngBytes(500), 0, ErrImageTooLarge},
		{"not an image", NewMediaService(&fakeStorage{}, 0, nil), FolderProjects, []byte("<html><body>hi</body></html>"), 0, ErrUnsupportedImage},
		{"storage failure", NewMediaService(&fakeStorage{err: errBoom}, 0, quietLogger()), FolderProjects, pngBytes(10), 0, errBoom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.svc.UploadImage(ctx, tc.folder, tc.size, bytes.NewReader(tc.body))
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
