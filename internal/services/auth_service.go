package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 6

	msgEmailTaken         = "Email already registered."
	MsgInvalidCredentials = "Invalid email or password."
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionInvalid     = errors.New("session is invalid or expired")
	ErrUserNotFound       = errors.New("user not found")
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// timingHash is compared against when the email is unknown so both login
// failures take the same time.
func timingHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	hashCost int
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg, hashCost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, for tests.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// Signup validates every rule at once and creates the user.
func (s *AuthService) Signup(req *dto.SignupRequest) (*models.User, error) {
	req.Normalize()

	var check forms.Checker
	check.Require(req.Name != "", "Name is required.")
	check.Require(req.Email != "", "Email is required.")
	check.Require(req.Password != "", "Password is required.")
	check.Require(req.Password == req.ConfirmPassword, "Passwords do not match.")
	check.Require(len(req.Password) >= MinPasswordLength, fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength))

	if req.Email != "" {
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		check.Require(count == 0, msgEmailTaken)
	}

	if err := check.Err(req.Values()); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, forms.Invalid(msgEmailTaken, req.Values())
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*models.User, error) {
	req.Normalize()

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		_ = bcrypt.CompareHashAndPassword(timingHash(), []byte(req.Password))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// StartSession stores a session row and returns the signed token naming it.
// The token's own expiry is checked against wall time by the JWT parser; the
// row's expiry is checked against the database clock.
func (s *AuthService) StartSession(userID uuid.UUID, remember bool) (string, time.Time, error) {
	ttl := s.cfg.SessionExpiry
	if remember {
		ttl = s.cfg.SessionRememberExpiry
	}

	session := models.Session{
		UserID:    userID,
		ExpiresAt: s.db.NowFunc().Add(ttl),
		Remember:  remember,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store session: %w", err)
	}

	issued := time.Now()
	expires := issued.Add(ttl)
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"sid": session.ID.String(),
		"iat": issued.Unix(),
		"exp": expires.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expires, nil
}

// ResolveSession checks that a validated token still names a live session.
func (s *AuthService) ResolveSession(sessionID, userID uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := s.db.
		Where("id = ? AND user_id = ? AND revoked = ? AND expires_at > ?", sessionID, userID, false, s.db.NowFunc()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	return &session, nil
}

func (s *AuthService) Logout(sessionID uuid.UUID) error {
	return s.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error
}

func (s *AuthService) CurrentUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
