package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"convo/internal/common"
	"convo/internal/dbx"
	"convo/internal/server/auth"
	"convo/internal/server/config"
	"convo/internal/server/models"
	"convo/internal/server/repositories/repomanager"

	"github.com/google/uuid"
)

// TokenPair is the credential pair issued on registration and login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest carries the fields accepted at registration.
type RegisterRequest struct {
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	PhoneNumber     string
	Role            string
}

// ProfileUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// UserService implements the credential lifecycle and profile operations.
type UserService struct {
	db          *sql.DB
	repoManager repomanager.RepositoryManager
	config      *config.Config
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{db: db, repoManager: rm, config: cfg}
}

// Register validates the request, stores the user and issues a token pair.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, *TokenPair, error) {
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, nil, err
	}
	if err := validateName("first_name", req.FirstName); err != nil {
		return nil, nil, err
	}
	if err := validateName("last_name", req.LastName); err != nil {
		return nil, nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleGuest
	}
	if !models.ValidRole(role) {
		return nil, nil, common.NewValidationError("role", "unknown role")
	}

	if len(req.Password) < s.config.PasswordMinLength {
		return nil, nil, common.NewValidationError("password", "too short")
	}
	if req.Password != req.PasswordConfirm {
		return nil, nil, common.NewValidationError("password_confirm", "passwords do not match")
	}

	if req.PhoneNumber != "" {
		if err := ValidatePhoneNumber(req.PhoneNumber); err != nil {
			return nil, nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repoManager.Users(tx).Create(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.NewValidationError("email", "already registered")
			}
			return err
		}
		user = created
		p, err := s.issueTokenPair(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login verifies the credentials and issues a fresh token pair.
func (s *UserService) Login(ctx context.Context, email string, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repoManager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.issueTokenPair(ctx, s.db, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself stays valid until its expiry; expired rows are
// purged when encountered.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	repo := s.repoManager.RefreshTokens(s.db)

	stored, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", err
	}

	if time.Now().After(stored.Expires) {
		_ = repo.Delete(ctx, refreshToken)
		return "", common.ErrRefreshTokenExpired
	}

	exists, err := s.repoManager.Users(s.db).Exists(ctx, stored.UserID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", common.ErrorUnauthorized
	}

	return auth.GenerateToken(stored.UserID, []byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
}

// Authenticate verifies an access token presented for request
// authorization. The signature and expiry must check out and the token id
// must not be blacklisted. Returns the subject user id.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (string, error) {
	claims, err := auth.ParseToken(accessToken, []byte(s.config.SecretKey))
	if err != nil {
		return "", err
	}

	revoked, err := s.repoManager.RevokedTokens(s.db).Contains(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// Logout revokes the presented access token by blacklisting its id until
// the token would have expired anyway. Revoking twice is a no-op.
func (s *UserService) Logout(ctx context.Context, accessToken string) error {
	claims, err := auth.ParseToken(accessToken, []byte(s.config.SecretKey))
	if err != nil {
		return err
	}

	expires := time.Now()
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return s.repoManager.RevokedTokens(s.db).Add(ctx, claims.ID, expires)
}

// Me returns the profile of the given user.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.repoManager.Users(s.db).GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd *ProfileUpdate) (*models.User, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoManager.Users(tx)

		current, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if upd.FirstName != nil {
			if err := validateName("first_name", *upd.FirstName); err != nil {
				return err
			}
			current.FirstName = strings.TrimSpace(*upd.FirstName)
		}
		if upd.LastName != nil {
			if err := validateName("last_name", *upd.LastName); err != nil {
				return err
			}
			current.LastName = strings.TrimSpace(*upd.LastName)
		}
		if upd.PhoneNumber != nil {
			if *upd.PhoneNumber != "" {
				if err := ValidatePhoneNumber(*upd.PhoneNumber); err != nil {
					return err
				}
			}
			current.PhoneNumber = *upd.PhoneNumber
		}

		if err := repo.UpdateProfile(ctx, current.ID, current.FirstName, current.LastName, current.PhoneNumber); err != nil {
			return err
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID string, current string, next string, nextConfirm string) error {
	if len(next) < s.config.PasswordMinLength {
		return common.NewValidationError("new_password", "too short")
	}
	if next != nextConfirm {
		return common.NewValidationError("new_password_confirm", "passwords do not match")
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoManager.Users(tx)

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
			return common.ErrorUnauthorized
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
		if err != nil {
			return common.ErrorInternal
		}
		return repo.UpdatePassword(ctx, userID, string(hash))
	})
}

func (s *UserService) issueTokenPair(ctx context.Context, db dbx.DBTX, userID string) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, []byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.RefreshTokens(db).Create(ctx, userID, refresh, s.config.RefreshTokenValidityDuration); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
