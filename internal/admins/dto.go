package admins

import (
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	"github.com/angelmondragon/coilbill-backend/pkg/types"
)

// AdminDTO is the transport shape that omits the password hash.
type AdminDTO struct {
	ID              string      `json:"id"`
	Username        string      `json:"username"`
	DisplayName     string      `json:"displayName"`
	PriceMultiplier types.Money `json:"priceMultiplier"`
}

func FromModel(a *models.Admin) *AdminDTO {
	if a == nil {
		return nil
	}
	return &AdminDTO{
		ID:              a.ID.String(),
		Username:        a.Username,
		DisplayName:     a.DisplayName,
		PriceMultiplier: types.NewMoney(a.PriceMultiplier),
	}
}
