package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/igreja-site/cms-backend/errs"
	"github.com/igreja-site/cms-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const multipartMemory = 8 << 20

type imageUploader interface {
	UploadImage(ctx context.Context, folder, filename string, r io.Reader) (*services.Upload, error)
	MaxBytes() int64
}

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	media     imageUploader
}

func newUploadHandler(media imageUploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		media:     media,
	}
}

// uploadImage stores an image sent as the "file" field of a multipart form.
// The optional "folder" field groups uploads, for example "banners".
// @Summary Upload an image
// @Tags Admin Uploads
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} services.Upload
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /admin/uploads [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.media == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "image storage is not configured"))
			return
		}

		// room for the other form fields and the multipart framing
		r.Body = http.MaxBytesReader(w, r.Body, h.media.MaxBytes()+1<<20)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.media.MaxBytes()))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		upload, err := h.media.UploadImage(r.Context(), r.FormValue("folder"), header.Filename, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, upload)
	}
}
