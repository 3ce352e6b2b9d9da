package photos

import (
	"context"
	"math"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
	"github.com/uyenbatu/wedding-backend/pkg/response"
	"github.com/uyenbatu/wedding-backend/pkg/utils"
)

// MetadataStore persists uploaded photo metadata.
type MetadataStore interface {
	SaveMetadata(ctx context.Context, uploads []models.PhotoUpload) error
}

// UploadTokenRequest is the body for POST /api/upload-token.
type UploadTokenRequest struct {
	Files      []UploadFileRequest `json:"files"`
	InviteCode string              `json:"inviteCode"`
}

// UploadFileRequest describes one file the client wants to upload.
type UploadFileRequest struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Size float64 `json:"size"`
}

// UploadTokenResponse carries the granted upload URLs.
type UploadTokenResponse struct {
	Uploads []models.UploadGrant `json:"uploads"`
}

// MetadataRequest is the body for POST /api/photo-metadata.
type MetadataRequest struct {
	Files         []MetadataFile `json:"files"`
	UploaderName  string         `json:"uploaderName"`
	UploaderEmail string         `json:"uploaderEmail"`
}

// MetadataFile is one uploaded file as reported by the client.
type MetadataFile struct {
	Path         string  `json:"path"`
	OriginalName string  `json:"originalName"`
	MimeType     string  `json:"mimeType"`
	SizeBytes    float64 `json:"sizeBytes"`
}

// Handler handles photo upload HTTP endpoints.
type Handler struct {
	issuer *Issuer
	store  MetadataStore
	logger *zap.Logger
}

// NewHandler creates a photos handler.
func NewHandler(issuer *Issuer, store MetadataStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{issuer: issuer, store: store, logger: logger}
}

// UploadToken handles POST /api/upload-token.
func (h *Handler) UploadToken(c *gin.Context) {
	var req UploadTokenRequest
	if !response.BindJSON(c, &req) {
		return
	}
	files := make([]models.UploadFile, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, models.UploadFile{Name: f.Name, Type: f.Type, Size: f.Size})
	}

	grants, err := h.issuer.Issue(c.Request.Context(), req.InviteCode, files)
	if err != nil {
		if apperror.Is(err, apperror.KindDependency) {
			h.logger.Error("issue upload urls failed", zap.Error(err), zap.Int("files", len(files)))
		}
		response.Error(c, err, "Unable to generate upload URLs.")
		return
	}
	response.OK(c, UploadTokenResponse{Uploads: grants})
}

// Metadata handles POST /api/photo-metadata.
func (h *Handler) Metadata(c *gin.Context) {
	var req MetadataRequest
	if !response.BindJSON(c, &req) {
		return
	}
	if len(req.Files) == 0 {
		response.BadRequest(c, "No files provided.")
		return
	}

	name := utils.CleanString(req.UploaderName, 120)
	email := utils.CleanString(req.UploaderEmail, 120)
	uploads := make([]models.PhotoUpload, 0, len(req.Files))
	for _, f := range req.Files {
		size, ok := byteCount(f.SizeBytes)
		if !ok {
			response.BadRequest(c, "Invalid file size.")
			return
		}
		uploads = append(uploads, models.PhotoUpload{
			Path:          utils.CleanString(f.Path, 500),
			OriginalName:  utils.CleanString(f.OriginalName, 200),
			MimeType:      utils.CleanString(f.MimeType, 120),
			SizeBytes:     size,
			UploaderName:  name,
			UploaderEmail: email,
		})
	}

	if err := h.store.SaveMetadata(c.Request.Context(), uploads); err != nil {
		h.logger.Error("save photo metadata failed", zap.Error(err), zap.Int("files", len(uploads)))
		response.Internal(c, "Unable to save metadata.")
		return
	}
	response.Done(c)
}

// byteCount converts a client-reported size; it fails outside [0, MaxInt64).
func byteCount(v float64) (int64, bool) {
	if v < 0 || v >= math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}
