package admins

import (
	"context"
	"strings"

	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/security"
)

// ResetCredentials creates the admin when missing, otherwise replaces its
// password. created reports which happened.
func ResetCredentials(ctx context.Context, r *Repository, username, password string, cfg config.PasswordConfig) (*models.Admin, bool, error) {
	fields := map[string]string{}
	if strings.TrimSpace(username) == "" {
		fields["username"] = "is required"
	}
	if password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required").
			WithDetails(map[string]any{"fields": fields})
	}

	hash, err := security.HashPassword(password, cfg)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	admin, created, err := r.Upsert(ctx, username, hash)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store admin")
	}
	return admin, created, nil
}
