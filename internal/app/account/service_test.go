package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/memory"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
)

func newTestService() *Service {
	return NewService(memory.NewUserStore(), logger.NewNop())
}

func TestRegister(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Jamie@Example.com ", " Jamie ", "supersecret")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jamie@example.com", user.Email, "email is normalized")
	assert.Equal(t, "Jamie", user.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
	assert.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "supersecret"},
		{name: "email without at sign", email: "not-an-email", password: "supersecret"},
		{name: "short password", email: "jamie@example.com", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, "Jamie", tt.password)
			assert.Error(t, err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "jamie@example.com", "Jamie", "supersecret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "JAMIE@example.com", "Other", "supersecret")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "jamie@example.com", "Jamie", "supersecret")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "jamie@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Login(ctx, "jamie@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "unknown user and bad password are indistinguishable")
}

func TestAddAddressSelectsFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.AddAddress(ctx, domain.Address{UserID: "user-1", Label: "Home", Street: "1 Main St", City: "Springfield", Zip: "12345"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	selected, err := svc.SelectedAddress(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, first.ID, selected.ID, "first address becomes the selection")

	second, err := svc.AddAddress(ctx, domain.Address{UserID: "user-1", Label: "Work", Street: "9 Office Rd"})
	require.NoError(t, err)

	selected, err = svc.SelectedAddress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, selected.ID, "later addresses do not steal the selection")

	require.NoError(t, svc.SelectAddress(ctx, "user-1", second.ID))
	selected, err = svc.SelectedAddress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, selected.ID)
}

func TestAddAddressValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddAddress(ctx, domain.Address{UserID: "", Street: "1 Main St"})
	assert.Error(t, err)

	_, err = svc.AddAddress(ctx, domain.Address{UserID: "user-1", Street: ""})
	assert.Error(t, err)
}

func TestSelectedAddressUnsetReturnsNil(t *testing.T) {
	svc := newTestService()

	selected, err := svc.SelectedAddress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, selected)
}

func TestSelectUnknownAddress(t *testing.T) {
	svc := newTestService()
	err := svc.SelectAddress(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
}
