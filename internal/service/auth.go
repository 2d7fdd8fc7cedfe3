package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/repository"
)

type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	Firstname string
	Lastname  string
	Phone     string
	Address   string
}

// ProfileUpdate carries the fields a user may change about themselves.
// Empty strings mean "leave as is".
type ProfileUpdate struct {
	Firstname string
	Lastname  string
	Email     string
	Phone     string
	Address   string
	Theme     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *model.User, error) // returns JWT + user
	Login(ctx context.Context, username, password string) (string, *model.User, error)
	UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.User, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ParseToken(token string) (uint, error) // returns userID
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func jwtSecret() []byte { return []byte(os.Getenv("JWT_SECRET")) }

func (a *authService) Register(ctx context.Context, in RegisterInput) (string, *model.User, error) {
	if _, err := a.users.GetByUsername(ctx, in.Username); err == nil {
		return "", nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}
	if _, err := a.users.GetByEmail(ctx, in.Email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	u := model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Phone:        in.Phone,
		Address:      in.Address,
		Usertype:     model.UsertypeCustomer,
		Theme:        "light",
	}
	if err := a.users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, ErrUsernameTaken
		}
		return "", nil, err
	}

	// registration logs the user in immediately
	token, err := a.signToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

func (a *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	u, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.signToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (a *authService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.User, error) {
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Email != "" && in.Email != u.Email {
		if existing, err := a.users.GetByEmail(ctx, in.Email); err == nil && existing.ID != userID {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		u.Email = in.Email
	}
	if in.Firstname != "" {
		u.Firstname = in.Firstname
	}
	if in.Lastname != "" {
		u.Lastname = in.Lastname
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if in.Theme == "light" || in.Theme == "dark" {
		u.Theme = in.Theme
	}
	if err := a.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *authService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	return a.users.GetByID(ctx, userID)
}

func (a *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	return a.users.GetAll(ctx)
}

func (a *authService) signToken(userID uint) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"typ": "session",
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return t.SignedString(jwtSecret())
}

func (a *authService) ParseToken(token string) (uint, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil {
		return 0, err
	}
	if claims["typ"] != "session" {
		return 0, errors.New("invalid token type")
	}
	idFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("invalid sub")
	}
	return uint(idFloat), nil
}
