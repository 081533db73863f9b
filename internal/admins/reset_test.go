package admins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/coilbill-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/security"
)

func TestResetCredentialsCreatesThenRotates(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	admin, created, err := ResetCredentials(ctx, r, "owner", "first-pass", config.PasswordConfig{})
	require.NoError(t, err)
	assert.True(t, created)
	ok, err := security.VerifyPassword("first-pass", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	admin, created, err = ResetCredentials(ctx, r, "OWNER", "second-pass", config.PasswordConfig{})
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := r.FindByUsername(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, stored.ID)
	ok, err = security.VerifyPassword("second-pass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, security.NeedsRehash(stored.PasswordHash))
}

func TestResetCredentialsRequiresBoth(t *testing.T) {
	r := newTestRepository(t)

	_, _, err := ResetCredentials(context.Background(), r, " ", "", config.PasswordConfig{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details, _ := pkgerrors.As(err).Details().(map[string]any)
	fields, _ := details["fields"].(map[string]string)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
}
