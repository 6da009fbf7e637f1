package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"cryptotracker/src/models"
	"cryptotracker/src/repositories"
	"cryptotracker/src/schemas"
	"cryptotracker/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type UsersControllerI interface {
	Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.RegisterResponse, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.LoginResponse, error)
	GetUser(ctx context.Context, userID int) (*schemas.SafeUser, error)
	UpdatePassword(ctx context.Context, userID int, req *schemas.UpdatePasswordRequest) error
	UpdateCurrency(ctx context.Context, userID int, currency string) (string, error)
	UpdateLanguage(ctx context.Context, userID int, language string) (string, error)

	ListUsers(ctx context.Context) ([]schemas.SafeUser, error)
	UpdateUser(ctx context.Context, userID int, req *schemas.UpdateUserRequest) (*schemas.SafeUser, error)
	DisableUser(ctx context.Context, userID int) error
	DeleteUser(ctx context.Context, userID int) error
}

type UsersController struct {
	Users     repositories.UserRepository
	TokenAuth *jwtauth.JWTAuth
	TokenTTL  time.Duration
}

func NewUsersController(users repositories.UserRepository, tokenAuth *jwtauth.JWTAuth, tokenTTL time.Duration) *UsersController {
	return &UsersController{Users: users, TokenAuth: tokenAuth, TokenTTL: tokenTTL}
}

func safeUser(u *models.User) *schemas.SafeUser {
	return &schemas.SafeUser{
		UserID:    u.UserID,
		Email:     u.Email,
		Role:      u.Role,
		PLanguage: u.PLanguage,
		PCurrency: u.PCurrency,
	}
}

func (c *UsersController) Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.RegisterResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, utils.BadRequest("email and password are required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := c.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.Conflict("user with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  string(hashed),
		Role:      defaultString(req.Role, "user"),
		PLanguage: defaultString(req.PLanguage, "en"),
		PCurrency: defaultString(req.PCurrency, "USD"),
	}
	if err := c.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &schemas.RegisterResponse{Message: "User registered", UserID: user.UserID}, nil
}

func (c *UsersController) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, utils.BadRequest("email and password required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := c.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled {
		return nil, utils.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorized("invalid credentials")
	}

	_, tokenString, err := c.TokenAuth.Encode(map[string]interface{}{
		"user_id": user.UserID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(c.TokenTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &schemas.LoginResponse{User: safeUser(user), Token: tokenString}, nil
}

func (c *UsersController) GetUser(ctx context.Context, userID int) (*schemas.SafeUser, error) {
	user, err := c.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}
	return safeUser(user), nil
}

func (c *UsersController) UpdatePassword(ctx context.Context, userID int, req *schemas.UpdatePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return utils.BadRequest("current_password and new_password required")
	}

	user, err := c.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NotFound("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return utils.Unauthorized("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 10)
	if err != nil {
		return err
	}
	return c.Users.UpdatePassword(ctx, userID, string(hashed))
}

func (c *UsersController) UpdateCurrency(ctx context.Context, userID int, currency string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(currency))
	if normalized == "" || len(normalized) > 8 {
		return "", utils.BadRequest("invalid currency code")
	}
	if err := c.Users.UpdatePreference(ctx, userID, "p_currency", normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func (c *UsersController) UpdateLanguage(ctx context.Context, userID int, language string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(language))
	if normalized == "" || len(normalized) > 8 {
		return "", utils.BadRequest("invalid language code")
	}
	if err := c.Users.UpdatePreference(ctx, userID, "p_language", normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func (c *UsersController) ListUsers(ctx context.Context) ([]schemas.SafeUser, error) {
	users, err := c.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]schemas.SafeUser, 0, len(users))
	for i := range users {
		out = append(out, *safeUser(&users[i]))
	}
	return out, nil
}

func (c *UsersController) UpdateUser(ctx context.Context, userID int, req *schemas.UpdateUserRequest) (*schemas.SafeUser, error) {
	user, err := c.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	if req.Role != nil {
		role := strings.TrimSpace(*req.Role)
		if role != "user" && role != "admin" {
			return nil, utils.BadRequest("role must be user or admin")
		}
		if err := c.Users.UpdatePreference(ctx, userID, "role", role); err != nil {
			return nil, err
		}
	}
	if req.PCurrency != nil {
		if _, err := c.UpdateCurrency(ctx, userID, *req.PCurrency); err != nil {
			return nil, err
		}
	}
	if req.PLanguage != nil {
		if _, err := c.UpdateLanguage(ctx, userID, *req.PLanguage); err != nil {
			return nil, err
		}
	}

	return c.GetUser(ctx, userID)
}

func (c *UsersController) DisableUser(ctx context.Context, userID int) error {
	if err := c.Users.SetDisabled(ctx, userID, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("user not found")
		}
		return err
	}
	return nil
}

func (c *UsersController) DeleteUser(ctx context.Context, userID int) error {
	if err := c.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("user not found")
		}
		return err
	}
	return nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
