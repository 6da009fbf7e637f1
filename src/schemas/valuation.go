package schemas

import (
	"cryptotracker/src/services"
)

type PortfolioValuationResponse struct {
	UserID     int                      `json:"user_id"`
	VsCurrency string                   `json:"vs_currency"`
	Rows       []services.ValuationRow  `json:"rows"`
	Totals     services.ValuationTotals `json:"totals"`
}
