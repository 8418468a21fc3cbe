package services

import (
	"context"
	"errors"
	"time"

	"github.com/diewo77/go-artisans/internal/apperr"
	"github.com/diewo77/go-artisans/internal/identity"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/repository"
	"github.com/diewo77/go-artisans/validation"
	"go.uber.org/zap"
)

// SignupInput is the body of a signup call.
type SignupInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Name     string          `json:"name"`
	UserType models.UserType `json:"userType"`
	Phone    string          `json:"phone,omitempty"`
}

// SigninResult is returned by a successful password sign-in.
type SigninResult struct {
	AccessToken string             `json:"accessToken"`
	User        models.UserAccount `json:"user"`
}

// IdentityService is the gateway in front of the identity provider. It keeps
// a denormalized UserAccount (and ArtisanProfile for artisans) next to the
// provider's own record.
type IdentityService struct {
	provider    identity.Provider
	users       *repository.UserRepository
	accounts    *repository.AccountWriter
	defaultCity string
	logger      *zap.Logger
	now         func() time.Time
}

func NewIdentityService(provider identity.Provider, store kv.Store, defaultCity string, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		provider:    provider,
		users:       repository.NewUserRepository(store),
		accounts:    repository.NewAccountWriter(store),
		defaultCity: defaultCity,
		logger:      logger,
		now:         time.Now,
	}
}

// Signup creates the provider account with a confirmed email, then writes the
// local documents in one batch. If the batch fails the provider account is
// removed again so no half-created user remains.
func (s *IdentityService) Signup(ctx context.Context, in SignupInput) (string, error) {
	v := make(validation.Violations)
	validation.Required("email", in.Email, v)
	validation.Required("password", in.Password, v)
	validation.Required("name", in.Name, v)
	validation.Required("userType", string(in.UserType), v)
	if !v.Empty() {
		return "", apperr.Invalid(msgMissingFields, v)
	}
	if !in.UserType.Valid() {
		return "", apperr.Invalid("Invalid user type", map[string]string{"userType": "not_allowed"})
	}

	user, err := s.provider.CreateUser(ctx, identity.CreateUserParams{
		Email:    in.Email,
		Password: in.Password,
		Metadata: identity.Metadata{
			Name:     in.Name,
			UserType: string(in.UserType),
			Phone:    in.Phone,
		},
		EmailConfirm: true,
	})
	if err != nil {
		return "", apperr.AuthProvider(err)
	}

	now := s.now()
	account := models.UserAccount{
		ID:        user.ID,
		Email:     user.Email,
		Name:      in.Name,
		UserType:  in.UserType,
		Phone:     in.Phone,
		CreatedAt: now,
	}
	var profile *models.ArtisanProfile
	if account.IsArtisan() {
		p := models.NewArtisanProfile(account, s.defaultCity, now)
		profile = &p
	}

	if err := s.accounts.Create(ctx, &account, profile); err != nil {
		if derr := s.provider.DeleteUser(ctx, user.ID); derr != nil {
			s.logger.Error("signup compensation failed",
				zap.String("user_id", user.ID), zap.Error(derr))
		}
		return "", apperr.Store("signup", err)
	}

	s.logger.Info("user signed up",
		zap.String("user_id", user.ID), zap.String("user_type", string(in.UserType)))
	return user.ID, nil
}

// Signin verifies credentials with the provider. Any provider refusal is
// reported as invalid credentials with the provider's message.
func (s *IdentityService) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password required")
	}
	session, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, apperr.InvalidCredentials(err)
	}
	account, err := s.accountFor(ctx, &session.User)
	if err != nil {
		return nil, err
	}
	return &SigninResult{AccessToken: session.AccessToken, User: account}, nil
}

// CurrentUser resolves the user behind accessToken.
func (s *IdentityService) CurrentUser(ctx context.Context, accessToken string) (*models.UserAccount, error) {
	if accessToken == "" {
		return nil, apperr.Unauthorized(msgNoToken)
	}
	user, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, apperr.Unauthorized(msgUnauthorized)
	}
	account, err := s.accountFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// VerifyToken returns the user id behind accessToken. It satisfies
// auth.TokenVerifier.
func (s *IdentityService) VerifyToken(ctx context.Context, accessToken string) (string, error) {
	user, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		return "", apperr.Unauthorized(msgUnauthorized)
	}
	return user.ID, nil
}

// accountFor loads the stored account, falling back to one built from the
// provider metadata when the local document is missing.
func (s *IdentityService) accountFor(ctx context.Context, user *identity.User) (models.UserAccount, error) {
	acc, err := s.users.Get(ctx, user.ID)
	if err == nil {
		return *acc, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return models.UserAccount{}, apperr.Store("get user", err)
	}
	userType := models.UserType(user.Metadata.UserType)
	if userType == "" {
		userType = models.UserTypeClient
	}
	return models.UserAccount{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Metadata.Name,
		UserType: userType,
		Phone:    user.Metadata.Phone,
	}, nil
}
