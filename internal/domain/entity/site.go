package entity

import "time"

// Site representa un cantiere (obra) al que se asignan materiales.
// Lo usan los movimientos OUTPUT/SITE_ALLOCATION y el detector de duplicados.
type Site struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
