package ehub

import (
	"time"

	"radarcli/pkg/contracts/domain"
)

// loginRequest is the venue's login payload.
type loginRequest struct {
	CompanyExternalCode int    `json:"companyExternalCode"`
	Email               string `json:"email"`
	Password            string `json:"password"`
}

// loginResponse is the venue's login result.
type loginResponse struct {
	UserID       int64  `json:"userId"`
	IDToken      string `json:"idToken"`
	CompanyID    string `json:"companyId"`
	RefreshToken string `json:"refreshToken"`
	Message      string `json:"message"`
}

// refreshRequest is the token-refresh payload.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refreshResponse is the token-refresh result. Message is set instead of
// IDToken when the venue rejects the refresh.
type refreshResponse struct {
	IDToken string `json:"idToken"`
	Message string `json:"message"`
}

// walletResponse is one wallet entry from the wallets listing.
type walletResponse struct {
	ID int64 `json:"id"`
}

// tickersResponse wraps the negotiable-tickers listing.
type tickersResponse struct {
	Tickers []tickerEntry `json:"tickers"`
}

// tickerEntry is one negotiable product.
type tickerEntry struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// dealEntry is one record of the all-deals report.
type dealEntry struct {
	ID                  int64     `json:"id"`
	ProductID           int64     `json:"productId"`
	CreatedAt           time.Time `json:"createdAt"`
	UnitPrice           float64   `json:"unitPrice"`
	Quantity            float64   `json:"quantity"`
	Tendency            string    `json:"tendency"`
	OriginOperationType string    `json:"originOperationType"`
	Status              string    `json:"status"`
}

// toDomain converts a wire deal into the domain representation.
func (d dealEntry) toDomain() domain.Deal {
	return domain.Deal{
		ID:            d.ID,
		ProductID:     d.ProductID,
		CreatedAt:     d.CreatedAt,
		UnitPrice:     d.UnitPrice,
		Quantity:      d.Quantity,
		Tendency:      domain.Tendency(d.Tendency),
		OperationType: domain.OperationType(d.OriginOperationType),
		Status:        domain.DealStatus(d.Status),
	}
}
