package rsvps

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/internal/notify"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
	"github.com/uyenbatu/wedding-backend/pkg/response"
)

// Store is the RSVP persistence the handler needs.
type Store interface {
	UpsertByEmail(ctx context.Context, in models.RSVPInput) (*models.UpsertResult, error)
	UpdateByToken(ctx context.Context, token string, in models.RSVPInput) error
	FindByToken(ctx context.Context, token string) (*models.RSVPView, error)
}

// Notifier sends the confirmation email for a saved RSVP.
type Notifier interface {
	SendConfirmation(ctx context.Context, c notify.Confirmation) error
}

// SubmitResponse is the body returned by a successful submit.
type SubmitResponse struct {
	Success bool   `json:"success"`
	EditURL string `json:"editUrl"`
}

// Handler handles RSVP HTTP endpoints.
type Handler struct {
	store    Store
	notifier Notifier
	siteURL  string
	logger   *zap.Logger
}

// NewHandler creates an RSVP handler. siteURL is the public site origin
// without a trailing slash; it may be empty.
func NewHandler(store Store, notifier Notifier, siteURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, notifier: notifier, siteURL: siteURL, logger: logger}
}

// EditURL returns the self-service edit link for token, relative when no
// site URL is configured.
func EditURL(siteURL, token string) string {
	return siteURL + "/rsvp/edit?token=" + token
}

// Submit handles POST /api/rsvp. The RSVP is saved first; a failed
// confirmation email is reported separately and leaves the record in place.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if !response.BindJSON(c, &req) {
		return
	}
	in, err := req.Clean()
	if err != nil {
		response.Error(c, err, msgInvalidGuest)
		return
	}

	res, err := h.store.UpsertByEmail(c.Request.Context(), in)
	if err != nil {
		h.logger.Error("save rsvp failed", zap.Error(err))
		response.Error(c, err, "Unable to save RSVP.")
		return
	}

	editURL := EditURL(h.siteURL, res.EditToken)
	emailEditURL := ""
	if h.siteURL != "" {
		emailEditURL = editURL
	}
	err = h.notifier.SendConfirmation(c.Request.Context(), notify.Confirmation{
		RSVPID:    res.ID,
		Email:     in.Email,
		Name:      in.Name,
		Attending: in.Attending,
		EditURL:   emailEditURL,
	})
	if err != nil {
		h.logger.Error("rsvp confirmation failed", zap.Error(err), zap.String("rsvp_id", res.ID.String()))
		response.Internal(c, "RSVP saved but email failed.")
		return
	}

	h.logger.Info("rsvp saved", zap.String("rsvp_id", res.ID.String()), zap.Bool("new", res.IsNew), zap.Bool("attending", in.Attending))
	response.OK(c, SubmitResponse{Success: true, EditURL: editURL})
}

// Update handles POST /api/rsvp-update.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if !response.BindJSON(c, &req) {
		return
	}
	token := CleanToken(req.Token)
	if token == "" {
		response.BadRequest(c, "Missing RSVP token.")
		return
	}
	in, err := req.Clean()
	if err != nil {
		response.Error(c, err, msgInvalidGuest)
		return
	}
	if err := h.store.UpdateByToken(c.Request.Context(), token, in); err != nil {
		if !apperror.Is(err, apperror.KindNotFound) {
			h.logger.Error("update rsvp failed", zap.Error(err))
		}
		response.Error(c, err, "Unable to update RSVP.")
		return
	}
	response.Done(c)
}

// Lookup handles GET /api/rsvp-lookup?token=.
func (h *Handler) Lookup(c *gin.Context) {
	token := CleanToken(c.Query("token"))
	if token == "" {
		response.BadRequest(c, "Missing token.")
		return
	}
	view, err := h.store.FindByToken(c.Request.Context(), token)
	if err != nil {
		if !apperror.Is(err, apperror.KindNotFound) {
			h.logger.Error("load rsvp failed", zap.Error(err))
		}
		response.Error(c, err, "Unable to load RSVP.")
		return
	}
	response.OK(c, view)
}
