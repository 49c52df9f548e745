package analytics

import (
	"time"

	"radarcli/pkg/contracts/domain"
)

// tradingDay returns midnight UTC of the given day in March 2025.
func tradingDay(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

// matchedDeal builds a matched active deal at the given hour of a day.
func matchedDeal(productID int64, day time.Time, hour int, price, qty float64, tendency domain.Tendency) domain.Deal {
	return domain.Deal{
		ProductID:     productID,
		CreatedAt:     day.Add(time.Duration(hour) * time.Hour),
		UnitPrice:     price,
		Quantity:      qty,
		Tendency:      tendency,
		OperationType: domain.OperationMatch,
		Status:        domain.DealStatusActive,
	}
}

// dealsOverDays spreads n matched deals at the given price across
// consecutive trading days, one deal per day starting at startDay.
func dealsOverDays(productID int64, startDay, n int, price float64) []domain.Deal {
	deals := make([]domain.Deal, 0, n)
	for i := 0; i < n; i++ {
		deals = append(deals, matchedDeal(productID, tradingDay(startDay+i), 10, price, 1, domain.TendencyBuy))
	}
	return deals
}
