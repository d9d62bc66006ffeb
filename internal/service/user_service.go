package service

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/repository"
	pkglog "buddylist/backend/pkg/log"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength    = 8
	MinSearchQueryLength = 2
	MaxSearchResults     = 20
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,100}$`)
)

// userService implements UserService.
type userService struct {
	users    repository.UserRepository
	presence PresenceService
	hashCost int
}

// NewUserService creates a new UserService instance.
func NewUserService(users repository.UserRepository, presence PresenceService) UserService {
	return &userService{
		users:    users,
		presence: presence,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates an account and publishes its initial offline status.
func (s *userService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	l := pkglog.Ctx(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	switch {
	case !emailPattern.MatchString(email):
		return nil, ErrInvalidEmail
	case !usernamePattern.MatchString(username):
		return nil, ErrInvalidUsername
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return nil, ErrPasswordTooShort
	}

	usernameTaken, emailTaken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		l.Error().Err(err).Msg("failed to check existing accounts")
		return nil, err
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}
	if usernameTaken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password failed")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			// Another registration took the name or email after our check.
			return nil, ErrUsernameTaken
		}
		l.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	if _, err := s.presence.UpdateStatus(ctx, user.ID, models.StatusOffline, ""); err != nil {
		l.Warn().Err(err).Uint(pkglog.FieldUserID, user.ID).Msg("failed to publish initial status")
	}

	l.Info().Uint(pkglog.FieldUserID, user.ID).Msg("user registered")
	return user, nil
}

// Login checks an email and password pair.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		pkglog.Ctx(ctx).Error().Err(err).Msg("failed to load user for login")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Profile returns the account of userID with its current status.
func (s *userService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		pkglog.Ctx(ctx).Error().Err(err).Uint(pkglog.FieldUserID, userID).Msg("failed to load profile")
		return nil, err
	}

	status, err := s.presence.CurrentStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		PublicUser: toPublicUser(user),
		Email:      user.Email,
		CreatedAt:  user.CreatedAt,
		Status:     *status,
	}, nil
}

// Search finds up to MaxSearchResults users whose username or email
// contains query, ignoring case. The caller is never included.
func (s *userService) Search(ctx context.Context, query string, excludeID uint) ([]PublicUser, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchQueryLength {
		return nil, ErrQueryTooShort
	}

	page, err := s.users.Search(ctx, query, excludeID, 1, MaxSearchResults)
	if err != nil {
		pkglog.Ctx(ctx).Error().Err(err).Uint(pkglog.FieldUserID, excludeID).Msg("failed to search users")
		return nil, err
	}

	out := make([]PublicUser, 0, len(page.Items))
	for i := range page.Items {
		out = append(out, toPublicUser(&page.Items[i]))
	}
	return out, nil
}

var _ UserService = (*userService)(nil)
