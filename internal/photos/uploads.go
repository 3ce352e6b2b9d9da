package photos

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
	"github.com/uyenbatu/wedding-backend/pkg/utils"
)

const (
	bytesPerMB      = 1024 * 1024
	defaultFileName = "photo"
	maxInviteLen    = 80
	// maxParallelSigns bounds concurrent presign calls for one batch.
	maxParallelSigns = 4
)

// Signer issues a time-boxed upload URL for one object key.
type Signer interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
}

// Policy bounds what a single upload batch may contain.
type Policy struct {
	InviteCode    string
	MaxFiles      int
	MaxFileSizeMB int
	AllowedTypes  []string
}

// Issuer validates upload batches and grants signed URLs for them.
type Issuer struct {
	signer  Signer
	policy  Policy
	allowed map[string]struct{}
	prefix  string
	clock   func() time.Time
	suffix  func() (string, error)
}

// NewIssuer creates an upload issuer writing under prefix.
func NewIssuer(signer Signer, policy Policy, prefix string) *Issuer {
	allowed := make(map[string]struct{}, len(policy.AllowedTypes))
	for _, t := range policy.AllowedTypes {
		allowed[t] = struct{}{}
	}
	return &Issuer{
		signer:  signer,
		policy:  policy,
		allowed: allowed,
		prefix:  prefix,
		clock:   time.Now,
		suffix:  func() (string, error) { return utils.RandomHex(6) },
	}
}

// Validate checks a batch against the policy. The first violation rejects
// the whole batch.
func (i *Issuer) Validate(inviteCode string, files []models.UploadFile) error {
	if i.policy.InviteCode != "" {
		given := utils.CleanString(inviteCode, maxInviteLen)
		if subtle.ConstantTimeCompare([]byte(given), []byte(i.policy.InviteCode)) != 1 {
			return apperror.Authorization("Invalid invite code.")
		}
	}
	if len(files) == 0 {
		return apperror.Input("No files provided.")
	}
	if i.policy.MaxFiles > 0 && len(files) > i.policy.MaxFiles {
		return apperror.Input("Too many files.")
	}
	limit := float64(i.policy.MaxFileSizeMB) * bytesPerMB
	for _, f := range files {
		if i.policy.MaxFileSizeMB > 0 && f.Size > limit {
			return apperror.Input("File exceeds size limit.")
		}
		if len(i.allowed) > 0 {
			if _, ok := i.allowed[f.Type]; !ok {
				return apperror.Input("File type not allowed.")
			}
		}
	}
	return nil
}

// Issue validates files and returns one grant per file, in input order.
// Any signing failure fails the whole batch.
func (i *Issuer) Issue(ctx context.Context, inviteCode string, files []models.UploadFile) ([]models.UploadGrant, error) {
	if err := i.Validate(inviteCode, files); err != nil {
		return nil, err
	}

	grants := make([]models.UploadGrant, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSigns)
	for idx, f := range files {
		idx, f := idx, f
		g.Go(func() error {
			path, err := i.ObjectPath(f.Name)
			if err != nil {
				return err
			}
			url, err := i.signer.PresignUpload(gctx, path, f.Type)
			if err != nil {
				return err
			}
			grants[idx] = models.UploadGrant{Path: path, SignedURL: url}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperror.Dependency("issue upload urls", err)
	}
	return grants, nil
}

// ObjectPath returns {prefix}/{unixMillis}-{12 hex}-{sanitized name}.
func (i *Issuer) ObjectPath(name string) (string, error) {
	if name == "" {
		name = defaultFileName
	}
	unique, err := i.suffix()
	if err != nil {
		return "", err
	}
	file := fmt.Sprintf("%d-%s-%s", i.clock().UnixMilli(), unique, utils.SanitizeFilename(name))
	if i.prefix == "" {
		return file, nil
	}
	return i.prefix + "/" + file, nil
}
