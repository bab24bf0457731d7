package entity

import "time"

// Company representa la empresa (tenant). Toda entidad cuelga de una company
// y ningún dato es visible entre tenants.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
