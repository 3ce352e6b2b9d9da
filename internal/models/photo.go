package models

import (
	"time"

	"github.com/google/uuid"
)

// PhotoUpload records one file a guest uploaded through a signed URL.
type PhotoUpload struct {
	ID            uuid.UUID `json:"id"`
	Path          string    `json:"path"`
	OriginalName  string    `json:"original_name"`
	MimeType      string    `json:"mime_type"`
	SizeBytes     int64     `json:"size_bytes"`
	UploaderName  string    `json:"uploader_name"`
	UploaderEmail string    `json:"uploader_email"`
	CreatedAt     time.Time `json:"created_at"`
}

// UploadFile describes a file the client intends to upload.
type UploadFile struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Size float64 `json:"size"`
}

// UploadGrant is a signed URL bound to one storage path.
type UploadGrant struct {
	Path      string `json:"path"`
	SignedURL string `json:"signedUrl"`
}
