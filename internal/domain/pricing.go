package domain

import "time"

// FinalPrice returns the regular price lowered by the special price when the special price is
// lower and active at now. Date bounds are inclusive.
func (p Product) FinalPrice(now time.Time) float64 {
	price := p.Price
	if p.SpecialPrice == nil || *p.SpecialPrice < 0 {
		return price
	}
	if p.SpecialFrom != nil && now.Before(*p.SpecialFrom) {
		return price
	}
	if p.SpecialTo != nil && now.After(*p.SpecialTo) {
		return price
	}
	if *p.SpecialPrice < price {
		return *p.SpecialPrice
	}
	return price
}
