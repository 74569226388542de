package handler

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/uida/property-portal/internal/models"
	"github.com/uida/property-portal/internal/service"
)

// UploadDocument stores an Aadhaar or PAN card PDF for the owner. The form
// carries the kind field and a single file part.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	// A little headroom over the document limit for the multipart framing.
	if err := r.ParseMultipartForm(service.MaxDocumentSize + 64*1024); err != nil {
		h.badRequest(w, "a multipart form with a file is required")
		return
	}

	kind := r.FormValue("kind")
	file, header, err := r.FormFile("file")
	if err != nil {
		h.badRequest(w, "a file part is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, service.MaxDocumentSize+1))
	if err != nil {
		h.respondError(w, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	doc, err := h.svc.UploadDocument(ownerID, kind, header.Filename, contentType, content)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, doc)
}

// ListDocuments lists the owner's uploaded document metadata
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	docs, err := h.svc.Documents(ownerID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"data": docs})
}

// DownloadDocument streams one uploaded document back to the owner
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Document(ownerID, mux.Vars(r)["kind"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	w.Write(doc.Content)
}
