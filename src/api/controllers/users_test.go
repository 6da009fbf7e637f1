package controllers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"cryptotracker/src/api/controllers"
	"cryptotracker/src/models"
	"cryptotracker/src/schemas"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memUserRepo is a stateful in-memory user store for exercising the account
// workflows end to end.
type memUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (r *memUserRepo) List(_ context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) GetByID(_ context.Context, userID int) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	u.UserID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	copied := *u
	r.users[u.UserID] = &copied
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID int, hashed string) error {
	r.users[userID].Password = hashed
	return nil
}

func (r *memUserRepo) UpdatePreference(_ context.Context, userID int, column, value string) error {
	u := r.users[userID]
	switch column {
	case "p_currency":
		u.PCurrency = value
	case "p_language":
		u.PLanguage = value
	case "role":
		u.Role = value
	}
	return nil
}

func (r *memUserRepo) SetDisabled(_ context.Context, userID int, disabled bool) error {
	r.users[userID].Disabled = disabled
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, userID int) error {
	delete(r.users, userID)
	return nil
}

func newUsersController(repo *memUserRepo) *controllers.UsersController {
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	return controllers.NewUsersController(repo, tokenAuth, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemUserRepo()
	controller := newUsersController(repo)

	resp, err := controller.Register(context.Background(), &schemas.RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.UserID)

	stored := repo.users[resp.UserID]
	require.NotNil(t, stored)
	assert.Equal(t, "alice@example.com", stored.Email, "emails are stored lower-cased")
	assert.Equal(t, "user", stored.Role)
	assert.Equal(t, "USD", stored.PCurrency)
	assert.NotEqual(t, "hunter22", stored.Password, "password must be hashed")

	login, err := controller.Login(context.Background(), &schemas.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "alice@example.com", login.User.Email)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newMemUserRepo()
	controller := newUsersController(repo)

	_, err := controller.Register(context.Background(), &schemas.RegisterRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = controller.Register(context.Background(), &schemas.RegisterRequest{
		Email: "alice@example.com", Password: "other",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httpCode(t, err))
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	controller := newUsersController(repo)

	_, err := controller.Register(context.Background(), &schemas.RegisterRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = controller.Login(context.Background(), &schemas.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
}

func TestLoginDisabledUser(t *testing.T) {
	repo := newMemUserRepo()
	controller := newUsersController(repo)

	resp, err := controller.Register(context.Background(), &schemas.RegisterRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	require.NoError(t, controller.DisableUser(context.Background(), resp.UserID))

	_, err = controller.Login(context.Background(), &schemas.LoginRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
}

func TestLoginTokenCarriesIdentityClaims(t *testing.T) {
	repo := newMemUserRepo()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	controller := controllers.NewUsersController(repo, tokenAuth, time.Hour)

	resp, err := controller.Register(context.Background(), &schemas.RegisterRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	login, err := controller.Login(context.Background(), &schemas.LoginRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	token, err := tokenAuth.Decode(login.Token)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, resp.UserID, claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "user", claims["role"])
}

func TestUpdatePassword(t *testing.T) {
	repo := newMemUserRepo()
	controller := newUsersController(repo)

	resp, err := controller.Register(context.Background(), &schemas.RegisterRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	err = controller.UpdatePassword(context.Background(), resp.UserID, &schemas.UpdatePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newpass",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	err = controller.UpdatePassword(context.Background(), resp.UserID, &schemas.UpdatePasswordRequest{
		CurrentPassword: "hunter22", NewPassword: "newpass",
	})
	require.NoError(t, err)

	stored := repo.users[resp.UserID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpass")))
}

func TestUpdatePreferences(t *testing.T) {
	repo := newMemUserRepo()
	controller := newUsersController(repo)

	resp, err := controller.Register(context.Background(), &schemas.RegisterRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	currency, err := controller.UpdateCurrency(context.Background(), resp.UserID, "eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", currency)

	language, err := controller.UpdateLanguage(context.Background(), resp.UserID, "ES")
	require.NoError(t, err)
	assert.Equal(t, "es", language)

	_, err = controller.UpdateCurrency(context.Background(), resp.UserID, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	repo := newMemUserRepo()
	controller := newUsersController(repo)

	resp, err := controller.Register(context.Background(), &schemas.RegisterRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	role := "superadmin"
	_, err = controller.UpdateUser(context.Background(), resp.UserID, &schemas.UpdateUserRequest{Role: &role})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}
