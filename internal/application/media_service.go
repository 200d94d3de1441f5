package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

// Upload folders, one per kind of content that carries an image URL.
const (
	FolderProfile  = "profile"
	FolderProjects = "projects"
	FolderBlog     = "blog"
)

var (
	ErrStorageDisabled  = errors.New("image storage not configured")
	ErrUnknownFolder    = errors.New("unknown upload folder")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
)

var allowedImages = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

// ObjectStorage stores an object and returns its public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// GCSStorage is ObjectStorage on a Google Cloud Storage bucket.
type GCSStorage struct {
	Client *storage.Client
	Bucket string
}

func (g *GCSStorage) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, g.Client, g.Bucket, objectPath, contentType, r)
}

type MediaService struct {
	Storage  ObjectStorage // nil disables uploads
	MaxBytes int64
	Logger   *logrus.Logger
}

func NewMediaService(st ObjectStorage, maxBytes int64, logger *logrus.Logger) *MediaService {
	return &MediaService{Storage: st, MaxBytes: maxBytes, Logger: logger}
}

// UploadImage checks folder, size and sniffed content type, then stores the
// image as images/<folder>/<uuid><ext>. The client-supplied file name and
// content type are ignored.
func (s *MediaService) UploadImage(ctx context.Context, folder string, size int64, r io.Reader) (string, error) {
	if s.Storage == nil {
		return "", ErrStorageDisabled
	}
	switch folder {
	case FolderProfile, FolderProjects, FolderBlog:
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFolder, folder)
	}
	if s.MaxBytes > 0 && size > s.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, size, s.MaxBytes)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	ext, ok := allowedImages[mt.String()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	if s.MaxBytes > 0 {
		body = &limitedReader{r: body, left: s.MaxBytes}
	}
	objectPath := path.Join("images", folder, uuid.NewString()+ext)
	url, err := s.Storage.Upload(ctx, objectPath, mt.String(), body)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", objectPath).Error("image upload failed")
		}
		return "", err
	}
	return url, nil
}

// limitedReader fails, rather than truncating, once more than left bytes
// were read.
type limitedReader struct {
	r    io.Reader
	left int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.left -= int64(n)
	if l.left < 0 {
		return n, ErrImageTooLarge
	}
	return n, err
}
