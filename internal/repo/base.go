package repo

import (
	"context"

	"github.com/angelmondragon/coilbill-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories. The connection is
// resolved per call so repositories can be built before the store is reachable.
type Base struct {
	src db.Source
}

// NewBase constructs a Base repository backed by the provided connection source.
func NewBase(src db.Source) Base {
	return Base{src: src}
}

// DB returns the GORM connection bound to the supplied context.
func (b Base) DB(ctx context.Context) (*gorm.DB, error) {
	if b.src == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store not configured")
	}
	conn, err := b.src.Conn(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store unavailable")
	}
	return conn, nil
}
