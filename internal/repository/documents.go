package repository

import (
	"database/sql"
	"fmt"

	"github.com/uida/property-portal/internal/models"
)

// SaveDocument stores an uploaded document, replacing any earlier upload of
// the same kind for the owner
func (r *Repository) SaveDocument(doc *models.Document) error {
	query := `
		INSERT INTO portal.documents (owner_id, kind, file_name, content_type, size_bytes, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_id, kind) DO UPDATE
		SET file_name = EXCLUDED.file_name,
		    content_type = EXCLUDED.content_type,
		    size_bytes = EXCLUDED.size_bytes,
		    content = EXCLUDED.content,
		    uploaded_at = CURRENT_TIMESTAMP
		RETURNING id, uploaded_at`
	err := r.db.QueryRow(query,
		doc.OwnerID, doc.Kind, doc.FileName, doc.ContentType, doc.SizeBytes, doc.Content,
	).Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// ListDocuments lists the document metadata for an owner
func (r *Repository) ListDocuments(ownerID int64) ([]models.Document, error) {
	query := `
		SELECT id, owner_id, kind, file_name, content_type, size_bytes, uploaded_at
		FROM portal.documents
		WHERE owner_id = $1
		ORDER BY kind`
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID, &doc.OwnerID, &doc.Kind, &doc.FileName,
			&doc.ContentType, &doc.SizeBytes, &doc.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}
	return docs, nil
}

// GetDocument retrieves one document with its content
func (r *Repository) GetDocument(ownerID int64, kind string) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, owner_id, kind, file_name, content_type, size_bytes, content, uploaded_at
		FROM portal.documents
		WHERE owner_id = $1 AND kind = $2`
	err := r.db.QueryRow(query, ownerID, kind).Scan(
		&doc.ID, &doc.OwnerID, &doc.Kind, &doc.FileName,
		&doc.ContentType, &doc.SizeBytes, &doc.Content, &doc.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}
