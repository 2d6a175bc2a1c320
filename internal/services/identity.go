package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adventure-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// RoleParticipant is assigned to every fully registered account.
const RoleParticipant = "participant"

// GoogleVerifier validates a federated Google id token and returns the
// verified email address.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (email string, err error)
}

// IdentityService handles registration, sign-in and credential management.
type IdentityService struct {
	users        IdentityStore
	participants ParticipantStore
	email        EmailSender
	tokens       *TokenService
	google       GoogleVerifier
}

// NewIdentityService creates a new identity service
func NewIdentityService(users IdentityStore, participants ParticipantStore, email EmailSender, tokens *TokenService, google GoogleVerifier) *IdentityService {
	return &IdentityService{
		users:        users,
		participants: participants,
		email:        email,
		tokens:       tokens,
		google:       google,
	}
}

// Register creates an identity user and sends the confirmation email. The
// role and the participant row are only assigned after the email send
// reports success; a failed send leaves the bare identity user behind and
// returns a failed Result.
func (s *IdentityService) Register(ctx context.Context, email, password, callbackURL string) Result {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateCredentials(email, password); err != nil {
		return Fail(err.Error())
	}
	if callbackURL == "" {
		return Fail("callback url is required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return Fail("email is already registered")
	} else if !errors.Is(err, models.ErrNotFound) {
		return Fail(fmt.Sprintf("failed to check email: %v", err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Fail(fmt.Sprintf("failed to hash password: %v", err))
	}

	user := &models.IdentityUser{
		ID:                uuid.New().String(),
		Email:             email,
		PasswordHash:      string(hash),
		ConfirmationToken: uuid.New().String(),
		CreatedAt:         time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return Fail(fmt.Sprintf("failed to create user: %v", err))
	}

	subject, body := ConfirmationEmail(callbackURL, user.ID, user.ConfirmationToken)
	sent := s.email.Send(ctx, email, subject, body)
	if !sent.Success {
		// The identity user stays behind without a role; registration can be
		// retried through the forgot-password / confirmation flows.
		return Fail(fmt.Sprintf("failed to send confirmation email: %s", sent.Message))
	}

	if err := s.users.AddRole(ctx, user.ID, RoleParticipant); err != nil {
		return Fail(fmt.Sprintf("failed to assign role: %v", err))
	}
	participant := &models.Participant{
		ID:        user.ID,
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := s.participants.Create(ctx, participant); err != nil {
		return Fail(fmt.Sprintf("failed to create participant: %v", err))
	}

	log.Info().Str("user_id", user.ID).Str("email", email).Msg("Participant registered")
	return Ok()
}

// Login validates credentials and issues a token pair
func (s *IdentityService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrForbidden)
	}

	participant, err := s.participants.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.issuePair(ctx, participant)
}

// Refresh exchanges a valid refresh token for a new pair
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, models.NewValidationError("refresh_token", "is required")
	}
	participant, err := s.participants.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if participant.RefreshTokenExpiry == nil || participant.RefreshTokenExpiry.Before(time.Now()) {
		return nil, fmt.Errorf("refresh token expired: %w", models.ErrForbidden)
	}
	return s.issuePair(ctx, participant)
}

// Revoke clears the participant's refresh token
func (s *IdentityService) Revoke(ctx context.Context, participantID string) error {
	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	participant.RefreshToken = nil
	participant.RefreshTokenExpiry = nil
	return s.participants.Update(ctx, participant)
}

// GoogleSignIn verifies a federated id token, provisioning an account on
// first sign-in, and issues a token pair
func (s *IdentityService) GoogleSignIn(ctx context.Context, idToken string) (*TokenPair, error) {
	email, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("google token rejected: %w", err)
	}

	participant, err := s.participants.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		participant, err = s.EnsureParticipant(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	return s.issuePair(ctx, participant)
}

// ConfirmEmail marks the identity user confirmed if the token matches
func (s *IdentityService) ConfirmEmail(ctx context.Context, userID, token string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ConfirmationToken == "" || user.ConfirmationToken != token {
		return models.NewValidationError("token", "is invalid")
	}
	user.EmailConfirmed = true
	user.ConfirmationToken = ""
	return s.users.Update(ctx, user)
}

// ForgotPassword stores a reset token and mails the reset link
func (s *IdentityService) ForgotPassword(ctx context.Context, email, callbackURL string) Result {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return Fail("unknown email")
	}

	user.ResetToken = uuid.New().String()
	if err := s.users.Update(ctx, user); err != nil {
		return Fail(fmt.Sprintf("failed to store reset token: %v", err))
	}

	subject, body := ResetPasswordEmail(callbackURL, user.ID, user.ResetToken)
	sent := s.email.Send(ctx, email, subject, body)
	if !sent.Success {
		return Fail(fmt.Sprintf("failed to send reset email: %s", sent.Message))
	}
	return Ok()
}

// ResetPassword replaces the password if the reset token matches
func (s *IdentityService) ResetPassword(ctx context.Context, userID, token, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ResetToken == "" || user.ResetToken != token {
		return models.NewValidationError("token", "is invalid")
	}
	if err := validateCredentials(user.Email, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.ResetToken = ""
	return s.users.Update(ctx, user)
}

// EnsureParticipant finds the participant for an email, creating the identity
// user (with a temporary random password) and the participant row when none
// exists yet. Used by accepted invitations and first Google sign-ins.
func (s *IdentityService) EnsureParticipant(ctx context.Context, email string) (*models.Participant, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	participant, err := s.participants.GetByEmail(ctx, email)
	if err == nil {
		return participant, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary password: %w", err)
	}
	user := &models.IdentityUser{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.AddRole(ctx, user.ID, RoleParticipant); err != nil {
		return nil, err
	}

	participant = &models.Participant{
		ID:        user.ID,
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := s.participants.Create(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *IdentityService) issuePair(ctx context.Context, participant *models.Participant) (*TokenPair, error) {
	pair, err := s.tokens.GeneratePair(participant.ID, participant.Email)
	if err != nil {
		return nil, err
	}
	participant.RefreshToken = &pair.RefreshToken
	participant.RefreshTokenExpiry = &pair.RefreshExpiresAt
	if err := s.participants.Update(ctx, participant); err != nil {
		return nil, err
	}
	return pair, nil
}

func validateCredentials(email, password string) error {
	verr := &models.ValidationError{}
	if !strings.Contains(email, "@") {
		verr.Add("email", "must be a valid email address")
	}
	if len(password) < 6 {
		verr.Add("password", "must be at least 6 characters")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
