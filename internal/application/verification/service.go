package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phone-auth-api/internal/domain"
	"github.com/phone-auth-api/internal/pkg/id"
	"github.com/phone-auth-api/internal/pkg/otp"
	"github.com/phone-auth-api/internal/pkg/phone"
)

// VerifyCodeRequest carries the code exchange input.
type VerifyCodeRequest struct {
	CodeID    string `json:"codeId" validate:"required"`
	Code      string `json:"code" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// VerifyCodeResult is the outcome of a successful code exchange.
type VerifyCodeResult struct {
	UserID      string
	CustomToken string
	FirstName   string
	LastName    string
}

type Service interface {
	// RequestCode issues a fresh verification record for the phone number and
	// attempts best-effort SMS delivery. Returns the opaque record handle;
	// the code itself is never returned.
	RequestCode(ctx context.Context, phoneNumber string) (string, error)
	// VerifyCode exchanges a correct code for a signed identity token,
	// resolving or creating the identity for the record's phone number.
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (*VerifyCodeResult, error)
}

type recordStore interface {
	Put(ctx context.Context, v *domain.VerificationRecord) error
	Get(ctx context.Context, codeID string) (*domain.VerificationRecord, error)
	// Delete reports whether the record existed at delete time.
	Delete(ctx context.Context, codeID string) (bool, error)
}

type identityStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type codeSender interface {
	SendCode(ctx context.Context, to, code string) error
}

type tokenSigner interface {
	Sign(userID, role string) (string, error)
}

// DynamoDB attribute names used in partial update maps.
const (
	fieldFirstName   = "first_name"
	fieldLastName    = "last_name"
	fieldDisplayName = "display_name"
)

type service struct {
	records recordStore
	users   identityStore
	sender  codeSender
	signer  tokenSigner
	codeTTL time.Duration
}

type ServiceDeps struct {
	RecordRepo  recordStore
	UserRepo    identityStore
	CodeSender  codeSender
	TokenSigner tokenSigner
	CodeTTL     time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		records: deps.RecordRepo,
		users:   deps.UserRepo,
		sender:  deps.CodeSender,
		signer:  deps.TokenSigner,
		codeTTL: deps.CodeTTL,
	}
}

func (s *service) RequestCode(ctx context.Context, phoneNumber string) (string, error) {
	if phoneNumber == "" {
		return "", fmt.Errorf("phone number is required: %w", domain.ErrBadRequest)
	}
	normalized := phone.Normalize(phoneNumber)

	code, err := otp.New()
	if err != nil {
		return "", err
	}

	now := time.Now().UnixMilli()
	rec := &domain.VerificationRecord{
		CodeID:    id.New(),
		Phone:     normalized,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now + s.codeTTL.Milliseconds(),
	}

	// Persist before attempting delivery: the caller must be able to fall
	// back to the record handle even when the SMS never arrives.
	if err := s.records.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("persist verification record: %w", err)
	}

	if err := s.sender.SendCode(ctx, normalized, code); err != nil {
		// Delivery is best-effort; never propagate into the issuance result.
		slog.Warn("verification code delivery failed", "code_id", rec.CodeID, "err", err)
	}

	return rec.CodeID, nil
}

func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) (*VerifyCodeResult, error) {
	if req.CodeID == "" || req.Code == "" {
		return nil, fmt.Errorf("code id and code are required: %w", domain.ErrBadRequest)
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("first and last name are required: %w", domain.ErrBadRequest)
	}

	rec, err := s.records.Get(ctx, req.CodeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("verification code not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	if rec.Expired(time.Now().UnixMilli()) {
		// Second deletion path besides the sweeper; the record may already be
		// gone, which Delete treats as a no-op.
		if _, err := s.records.Delete(ctx, req.CodeID); err != nil {
			slog.Warn("failed to delete expired verification record", "code_id", req.CodeID, "err", err)
		}
		return nil, fmt.Errorf("verification code has expired: %w", domain.ErrCodeExpired)
	}

	if rec.Code != req.Code {
		// Record stays put so the caller can retry within the TTL.
		return nil, fmt.Errorf("incorrect verification code: %w", domain.ErrCodeMismatch)
	}

	user, err := s.resolveIdentity(ctx, rec.Phone, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	// Single-use gate: the conditional delete, not the earlier Get, decides
	// who consumed the record. A racing call that finds it already gone is
	// told "not found" and gets no token.
	existed, err := s.records.Delete(ctx, req.CodeID)
	if err != nil {
		return nil, fmt.Errorf("consume verification record: %w", err)
	}
	if !existed {
		return nil, fmt.Errorf("verification code not found: %w", domain.ErrNotFound)
	}

	token, err := s.signer.Sign(user.UserID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign identity token: %w", err)
	}

	return &VerifyCodeResult{
		UserID:      user.UserID,
		CustomToken: token,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	}, nil
}

// resolveIdentity finds the identity for a normalized phone number, updating
// its name fields, or creates a new one with role "user". Only a "no such
// user" signal from the store triggers creation; any other failure is
// propagated so a transient outage is never mistaken for a new account.
func (s *service) resolveIdentity(ctx context.Context, phoneNumber, firstName, lastName string) (*domain.User, error) {
	displayName := firstName + " " + lastName

	existing, err := s.users.GetByPhone(ctx, phoneNumber)
	switch {
	case err == nil:
		updates := map[string]interface{}{
			fieldFirstName:   firstName,
			fieldLastName:    lastName,
			fieldDisplayName: displayName,
		}
		if err := s.users.Update(ctx, existing.UserID, updates); err != nil {
			return nil, fmt.Errorf("update identity: %w", err)
		}
		return existing, nil
	case errors.Is(err, domain.ErrNotFound):
		now := time.Now().UTC()
		u := &domain.User{
			UserID:      id.New(),
			Phone:       phoneNumber,
			FirstName:   firstName,
			LastName:    lastName,
			DisplayName: displayName,
			Role:        domain.RoleUser,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.users.Put(ctx, u); err != nil {
			return nil, fmt.Errorf("create identity: %w", err)
		}
		return u, nil
	default:
		return nil, fmt.Errorf("look up identity: %w", err)
	}
}
