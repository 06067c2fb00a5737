package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aureliajewels/storefront-api/api/responses"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
	"github.com/aureliajewels/storefront-api/pkg/media"
)

const maxUploadMemory = 4 << 20

// AdminMediaUpload pushes a product image to the media host and returns
// its hosted URL for use in a subsequent product create.
func AdminMediaUpload(uploader *media.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if uploader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media upload unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid upload form"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "an image file is required"))
			return
		}
		defer file.Close()

		publicID := strings.TrimSpace(r.FormValue("public_id"))
		if publicID == "" {
			publicID = "jewelry/" + uuid.NewString()
		}

		upload, err := uploader.UploadImage(
			r.Context(),
			file,
			header.Size,
			header.Header.Get("Content-Type"),
			publicID,
		)
		if err != nil {
			switch err {
			case media.ErrNotAnImage, media.ErrTooLarge:
				err = pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
			default:
				err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "image upload failed")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, upload)
	}
}
