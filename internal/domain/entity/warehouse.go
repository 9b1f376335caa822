package entity

import "time"

// Warehouse representa una bodega o depósito donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	ManagerID string // usuario notificado en eventos de DDT y stock bajo
	CreatedAt time.Time
	UpdatedAt time.Time
}
