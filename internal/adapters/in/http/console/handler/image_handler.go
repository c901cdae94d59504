package consoleHandler

import (
	"log"
	"net/http"
	"strings"

	usecase "mihrab/internal/application/usecase"
)

// maxImageUpload caps the multipart body (8MB covers product photography).
const maxImageUpload = 8 << 20

// ImageHandler uploads a product image and returns its public URL.
//
//	POST /console/product-images  (multipart/form-data, field "file")
//
// The URL is not attached to a product here; the console attaches it via
// PATCH /console/products/{id}.
type ImageHandler struct {
	uc *usecase.ProductAdminUsecase
}

func NewImageHandler(uc *usecase.ProductAdminUsecase) http.Handler {
	return &ImageHandler{uc: uc}
}

func (h *ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "image handler is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		log.Printf("[console_image_handler] exit status=400 reason=multipart parse err=%v", err)
		badRequest(w, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file field is required")
		return
	}
	defer file.Close()

	name := strings.TrimSpace(header.Filename)
	if name == "" {
		badRequest(w, "file name is required")
		return
	}
	contentType := header.Header.Get("Content-Type")

	url, err := h.uc.UploadImage(r.Context(), name, contentType, file)
	if err != nil {
		log.Printf("[console_image_handler] upload error name=%q err=%v", name, err)
		writeErr(w, http.StatusInternalServerError, "image upload failed")
		return
	}

	log.Printf("[console_image_handler] upload ok name=%q url=%s", name, url)
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
