package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/elskow/gatekeeper/internal/config"
)

type Service struct {
	config     *config.AuthConfig
	log        *zap.Logger
	repository Repository
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func NewService(config *config.AuthConfig, log *zap.Logger, repo Repository) *Service {
	return &Service{
		config:     config,
		log:        log,
		repository: repo,
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	cost := s.config.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash fails closed: any comparison error counts as a mismatch.
func (s *Service) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *Service) GenerateToken(userID string) (string, error) {
	expirationTime := time.Now().Add(s.config.TokenExpiration)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, s.config.JWTSecret)
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Register creates a user and issues a token for the new account. Duplicate
// checks run up front so the response can name the conflicting field; the
// unique indexes in the store remain authoritative.
func (s *Service) Register(username, email, password string) (*User, string, error) {
	taken, err := s.repository.UsernameTaken(username)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrUsernameTaken
	}

	taken, err = s.repository.EmailTaken(email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.repository.CreateUser(user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login returns ErrInvalidCredentials for both an unknown email and a wrong
// password, so responses never reveal whether an account exists.
func (s *Service) Login(email, password string) (*User, string, error) {
	user, err := s.repository.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.HashPassword("dummy") // Prevent timing attacks
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *Service) Profile(userID string) (*User, error) {
	return s.repository.GetUserByID(userID)
}
