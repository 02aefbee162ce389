package handlers

import (
	"net/http"

	"github.com/catalogkit/catalog-admin-service/internal/assets"
	apperrors "github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/catalogkit/catalog-admin-service/internal/utils/response"
)

type ImageHandler struct {
	store assets.Store
}

func NewImageHandler(store assets.Store) *ImageHandler {
	return &ImageHandler{store: store}
}

// GetImage serves GET /images/{namespace}/{key}, regardless of which storage
// mode is configured.
func (h *ImageHandler) GetImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		ns := assets.Namespace(r.PathValue("namespace"))
		if !ns.Valid() {
			response.Error(w, apperrors.NotFoundError("Image not found"))
			return
		}

		data, contentType, err := h.store.Get(r.Context(), ns, r.PathValue("key"))
		if err != nil {
			response.Error(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(data)

	}
}
