package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"quizportal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	sessions  *SessionStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, sessions *SessionStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type StudentLoginRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
}

type sessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// AdminLogin verifies the bcrypt password hash for the named admin and
// issues a session token. There is no plaintext fallback.
func (s *AuthService) AdminLogin(ctx context.Context, req *AdminLoginRequest) (*models.Admin, string, error) {
	var admin models.Admin
	if err := s.db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, RoleAdmin, admin.ID, admin.Username)
	if err != nil {
		return nil, "", err
	}

	return &admin, token, nil
}

// StudentLogin authenticates by national ID, creating the student on
// first sight. A repeat login must present the same full name
// (case-insensitively) or it is rejected.
func (s *AuthService) StudentLogin(ctx context.Context, req *StudentLoginRequest) (*models.Student, string, error) {
	var student models.Student
	err := s.db.Where("national_id = ?", req.NationalID).First(&student).Error
	switch {
	case err == nil:
		if !strings.EqualFold(student.FullName, req.FullName) {
			return nil, "", ErrNameMismatch
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		student = models.Student{
			FullName:   req.FullName,
			NationalID: req.NationalID,
		}
		if err := s.db.Create(&student).Error; err != nil {
			return nil, "", err
		}
	default:
		return nil, "", err
	}

	token, err := s.issueToken(ctx, RoleStudent, student.ID, student.FullName)
	if err != nil {
		return nil, "", err
	}

	return &student, token, nil
}

// Validate parses and verifies a token, then checks that its session is
// still registered. Returns the live session on success.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}

	subjectID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || session.Role != claims.Role || session.SubjectID != uint(subjectID) {
		return nil, ErrInvalidToken
	}

	return session, nil
}

// Logout revokes the session behind the token. An already-expired token
// is not an error; there is nothing left to revoke.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	return s.sessions.Delete(ctx, claims.ID)
}

// EnsureAdmin creates the bootstrap admin account if it does not exist.
// Called at startup; a blank password skips seeding entirely.
func (s *AuthService) EnsureAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account %q", username)
	return nil
}

func (s *AuthService) issueToken(ctx context.Context, role string, subjectID uint, name string) (string, error) {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Role:      role,
		SubjectID: subjectID,
		Name:      name,
		IssuedAt:  now,
	}

	claims := sessionClaims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}
