package models

// Document kinds accepted by the portal.
const (
	DocumentKindAadhaar = "aadhaar"
	DocumentKindPAN     = "pan"
)

// Document is an identity document uploaded by an owner. Only the metadata
// is serialized; the PDF bytes stay in the database.
type Document struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Kind        string `json:"kind"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Content     []byte `json:"-"`
	UploadedAt  string `json:"uploaded_at"`
}
