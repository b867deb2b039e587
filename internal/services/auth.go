package services

import (
	"fmt"
	"time"

	"github.com/ctgula/vibe-sub002/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret)}
}

func (s *AuthService) Register(email, password, username string) (*models.Profile, string, error) {
	var existing models.Profile
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrEmailTaken
	}
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	profile := models.Profile{
		ID:           uuid.New(),
		Username:     username,
		DisplayName:  username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(profile.ID, false)
	if err != nil {
		return nil, "", err
	}
	return &profile, token, nil
}

func (s *AuthService) Login(email, password string) (*models.Profile, string, error) {
	var profile models.Profile
	if err := s.db.Where("email = ? AND is_guest = ?", email, false).First(&profile).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(profile.ID, false)
	if err != nil {
		return nil, "", err
	}
	return &profile, token, nil
}

// GuestSession mints an ephemeral identity: a fresh profile row flagged
// is_guest with no credential behind it. The caller keeps the token for
// the lifetime of the browser session only.
func (s *AuthService) GuestSession(displayName string) (*models.Profile, string, error) {
	id := uuid.New()
	if displayName == "" {
		displayName = "Guest"
	}

	profile := models.Profile{
		ID:          id,
		Username:    fmt.Sprintf("guest-%s", id.String()[:8]),
		DisplayName: displayName,
		IsGuest:     true,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(profile.ID, true)
	if err != nil {
		return nil, "", err
	}
	return &profile, token, nil
}

func (s *AuthService) GenerateToken(profileID uuid.UUID, isGuest bool) (string, error) {
	claims := jwt.MapClaims{
		"sub":      profileID.String(),
		"is_guest": isGuest,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, bool, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredentials
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false, ErrInvalidCredentials
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, false, ErrInvalidCredentials
	}
	profileID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false, ErrInvalidCredentials
	}

	isGuest, _ := claims["is_guest"].(bool)
	return profileID, isGuest, nil
}
