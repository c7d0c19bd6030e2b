package service

import (
	"context"
	"testing"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_Success(t *testing.T) {
	mock := &MockStore{}
	svc := NewAuthService(mock, "test-secret")

	user, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewAuthService(&MockStore{}, "test-secret")

	for _, req := range []*RegisterRequest{
		{Email: "a@b.c", Password: "pw"},
		{Name: "A", Password: "pw"},
		{Name: "A", Email: "a@b.c"},
	} {
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	mock := &MockStore{createUserErr: repository.ErrDuplicateEmail}
	svc := NewAuthService(mock, "test-secret")

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "pw",
	})

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock := &MockStore{userByEmail: &domain.User{
		ID:           7,
		Email:        "asha@example.com",
		PasswordHash: string(hash),
	}}
	svc := NewAuthService(mock, "test-secret")

	token, err := svc.Login(context.Background(), "asha@example.com", "s3cret-pass")

	require.NoError(t, err)
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "asha@example.com", claims["email"])
	assert.EqualValues(t, 7, claims["sub"])
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	mock := &MockStore{userByEmail: &domain.User{Email: "a@b.c", PasswordHash: string(hash)}}
	svc := NewAuthService(mock, "test-secret")

	_, err = svc.Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(&MockStore{}, "test-secret")

	_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
