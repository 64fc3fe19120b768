package profiles

import (
	"strings"
	"time"
)

// Role del usuario en la tienda.
// @Enum customer, admin
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Profile son los datos de entrega del cliente, indexados por el user id del proveedor de auth.
type Profile struct {
	UserID   string
	FullName string
	Email    string
	Phone    string // E.164, p.ej. +201012345678
	City     string
	Address  string
	Role     Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeliveryComplete indica si el perfil alcanza para hacer checkout.
func (p Profile) DeliveryComplete() bool {
	return strings.TrimSpace(p.FullName) != "" &&
		strings.TrimSpace(p.Phone) != "" &&
		strings.TrimSpace(p.City) != "" &&
		strings.TrimSpace(p.Address) != ""
}

func (p Profile) IsAdmin() bool { return p.Role == RoleAdmin }
