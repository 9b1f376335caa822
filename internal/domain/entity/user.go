package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleMagazziniere = "magazziniere" // bodeguero: opera movimientos y DDT
	RoleCapocantiere = "capocantiere" // jefe de obra: solo reservas y consultas
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, magazziniere, capocantiere
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
