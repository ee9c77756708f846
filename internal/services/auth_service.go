package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/activelife/activelife/internal/identity"
	"github.com/activelife/activelife/internal/models"
	"github.com/activelife/activelife/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmailTaken = errors.New("email already registered")

const guestHandleAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	DeleteAccountAndRelatedData(userID uint) error
}

type AuthService struct {
	users    AuthUserRepository
	verifier identity.Verifier
}

func NewAuthService(users AuthUserRepository, verifier identity.Verifier) *AuthService {
	return &AuthService{users: users, verifier: verifier}
}

// Register creates an email and password account. The password is hashed
// with bcrypt before anything touches the database.
func (service *AuthService) Register(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Provider:     models.ProviderPassword,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate checks email and password credentials. Missing users and
// wrong passwords collapse into one error so the response cannot leak which
// emails are registered.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if user.PasswordHash == "" || user.Provider != models.ProviderPassword {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

// SignInWithGoogle verifies the ID token, then finds or creates the matching
// account. Profile fields refresh on every sign-in.
func (service *AuthService) SignInWithGoogle(ctx context.Context, idToken string) (models.User, error) {
	verified, err := service.verifier.Verify(ctx, idToken)
	if err != nil {
		return models.User{}, err
	}

	email := NormalizeAuthEmail(verified.Email)
	if email == "" {
		return models.User{}, identity.ErrTokenInvalid
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err == nil {
		user.DisplayName = verified.DisplayName
		user.PhotoURL = verified.PhotoURL
		if user.Provider == models.ProviderAnonymous {
			user.Provider = models.ProviderGoogle
			user.Anonymous = false
		}
		if err := service.users.Save(&user); err != nil {
			return models.User{}, err
		}
		return user, nil
	}

	user = models.User{
		Email:       email,
		DisplayName: verified.DisplayName,
		PhotoURL:    verified.PhotoURL,
		Provider:    models.ProviderGoogle,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateGuest provisions an anonymous account behind a synthetic address so
// guests get the same session and storage paths as registered users.
func (service *AuthService) CreateGuest() (models.User, error) {
	handle, err := security.RandomString(16, guestHandleAlphabet)
	if err != nil {
		return models.User{}, fmt.Errorf("generate guest handle: %w", err)
	}

	user := models.User{
		Email:       fmt.Sprintf("guest-%s@guest.activelife.local", handle),
		DisplayName: "Guest " + strings.ToUpper(handle[:4]),
		Provider:    models.ProviderAnonymous,
		Anonymous:   true,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// DeleteAccount removes the user and every row derived from their data.
func (service *AuthService) DeleteAccount(userID uint) error {
	return service.users.DeleteAccountAndRelatedData(userID)
}
