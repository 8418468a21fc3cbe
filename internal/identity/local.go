package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// Account is the provider's own user table.
type Account struct {
	ID               string `gorm:"primaryKey;size:36"`
	Email            string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string `gorm:"size:255;not null"`
	Name             string `gorm:"size:255"`
	UserType         string `gorm:"size:32"`
	Phone            string `gorm:"size:64"`
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName keeps provider data apart from application data.
func (Account) TableName() string { return "identity_accounts" }

func (a *Account) user() *User {
	return &User{
		ID:               a.ID,
		Email:            a.Email,
		Metadata:         Metadata{Name: a.Name, UserType: a.UserType, Phone: a.Phone},
		EmailConfirmedAt: a.EmailConfirmedAt,
		CreatedAt:        a.CreatedAt,
	}
}

// Claims are the access token claims.
type Claims struct {
	Email    string `json:"email"`
	UserType string `json:"user_type,omitempty"`
	jwt.RegisteredClaims
}

// LocalConfig configures LocalProvider.
type LocalConfig struct {
	Secret     []byte
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

// LocalProvider keeps accounts in the application database and signs HS256
// tokens.
type LocalProvider struct {
	db  *gorm.DB
	cfg LocalConfig
	now func() time.Time
}

// NewLocalProvider returns a provider over db. The identity_accounts table
// must exist (see db.Migrate).
func NewLocalProvider(db *gorm.DB, cfg LocalConfig) *LocalProvider {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	return &LocalProvider{db: db, cfg: cfg, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *LocalProvider) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	email := normalizeEmail(params.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(params.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), p.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var count int64
	if err := p.db.WithContext(ctx).Model(&Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	acc := Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         params.Metadata.Name,
		UserType:     params.Metadata.UserType,
		Phone:        params.Metadata.Phone,
		CreatedAt:    p.now(),
	}
	if params.EmailConfirm {
		confirmed := acc.CreatedAt
		acc.EmailConfirmedAt = &confirmed
	}
	if err := p.db.WithContext(ctx).Create(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return acc.user(), nil
}

func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var acc Account
	err := p.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).Take(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := p.now()
	expires := now.Add(p.cfg.TokenTTL)
	claims := Claims{
		Email:    acc.Email,
		UserType: acc.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			Issuer:    p.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{AccessToken: token, ExpiresAt: expires, User: *acc.user()}, nil
}

func (p *LocalProvider) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, ErrInvalidToken
	}
	claims := new(Claims)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.cfg.Issuer),
		jwt.WithTimeFunc(p.now),
	)
	token, err := parser.ParseWithClaims(accessToken, claims, func(*jwt.Token) (any, error) {
		return p.cfg.Secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	var acc Account
	err = p.db.WithContext(ctx).Where("id = ?", claims.Subject).Take(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return acc.user(), nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
