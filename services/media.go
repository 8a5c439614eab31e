package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/content"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AllowedImageTypes are the upload formats the resizer can decode.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// ObjectStore is where processed media ends up.
type ObjectStore interface {
	Key(name string) string
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Upload describes a stored image.
type Upload struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int    `json:"size"`
}

type MediaService struct {
	store       ObjectStore
	maxWidth    int
	jpegQuality int
	maxBytes    int64
	now         func() time.Time
	logger      zerolog.Logger
}

func NewMediaService(store ObjectStore, maxWidth, jpegQuality int, maxBytes int64) *MediaService {
	return &MediaService{
		store:       store,
		maxWidth:    maxWidth,
		jpegQuality: jpegQuality,
		maxBytes:    maxBytes,
		now:         time.Now,
		logger:      log.With().Str("serviceName", "media").Logger(),
	}
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// UploadImage decodes the image, shrinks it to the configured width keeping
// the aspect ratio, re-encodes it and stores it under folder. PNG stays PNG
// to keep transparency; everything else becomes JPEG.
func (s *MediaService) UploadImage(ctx context.Context, folder, filename string, r io.Reader) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, errs.NewMalformedPayloadError("image", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, errs.NewMaxBodySizeExceededError(s.maxBytes)
	}

	sniffed := http.DetectContentType(data)
	if !isAllowedImage(sniffed) {
		return nil, errs.NewUnsupportedMediaTypeError(sniffed, AllowedImageTypes)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errs.NewMalformedPayloadError("image", err)
	}
	if s.maxWidth > 0 && img.Bounds().Dx() > s.maxWidth {
		img = imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	}

	format, contentType, ext := imaging.JPEG, "image/jpeg", ".jpg"
	if sniffed == "image/png" {
		format, contentType, ext = imaging.PNG, "image/png", ".png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(s.jpegQuality)); err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to encode image", err)
	}

	key := s.store.Key(s.objectName(folder, filename, ext))
	url, err := s.store.Put(ctx, key, contentType, buf.Bytes())
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	s.logger.Info().Str("key", key).Int("width", bounds.Dx()).Int("bytes", buf.Len()).Msg("image uploaded")
	return &Upload{
		URL:         url,
		Key:         key,
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Size:        buf.Len(),
	}, nil
}

// objectName is folder/YYYYMMDD-<uuid>-<slugged name><ext>.
func (s *MediaService) objectName(folder, filename, ext string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	name := content.GenerateSlug(base)
	if name == "" {
		name = "imagem"
	}
	folder = content.GenerateSlug(folder)
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%s-%s-%s%s", folder, s.now().Format("20060102"), uuid.NewString(), name, ext)
}

func isAllowedImage(contentType string) bool {
	for _, t := range AllowedImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
