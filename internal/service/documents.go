package service

import (
	"errors"
	"fmt"

	"github.com/uida/property-portal/internal/models"
)

// MaxDocumentSize is the upload limit for identity documents.
const MaxDocumentSize = 300 * 1024 // 300 KB

// Document upload errors.
var (
	ErrDocumentTooLarge = errors.New("document exceeds the 300 KB limit")
	ErrDocumentNotPDF   = errors.New("document must be a PDF file")
	ErrUnknownDocument  = errors.New("unknown document kind")
)

// UploadDocument validates and stores an identity document. A new upload of
// the same kind replaces the previous one.
func (s *Service) UploadDocument(ownerID int64, kind, fileName, contentType string, content []byte) (*models.Document, error) {
	if kind != models.DocumentKindAadhaar && kind != models.DocumentKindPAN {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, kind)
	}
	if int64(len(content)) > MaxDocumentSize {
		return nil, ErrDocumentTooLarge
	}
	if contentType != "application/pdf" {
		return nil, ErrDocumentNotPDF
	}

	doc := &models.Document{
		OwnerID:     ownerID,
		Kind:        kind,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(content)),
		Content:     content,
	}
	if err := s.repo.SaveDocument(doc); err != nil {
		return nil, err
	}

	s.log.Infof("Document %s stored for owner %d (%d bytes)", kind, ownerID, doc.SizeBytes)
	return doc, nil
}

// Documents lists the owner's uploaded document metadata.
func (s *Service) Documents(ownerID int64) ([]models.Document, error) {
	return s.repo.ListDocuments(ownerID)
}

// Document retrieves one uploaded document with its content.
func (s *Service) Document(ownerID int64, kind string) (*models.Document, error) {
	return s.repo.GetDocument(ownerID, kind)
}
