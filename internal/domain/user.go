package domain

const (
	RoleClient = "cliente"
	RoleStore  = "tienda"
)

// User mirrors the backend "usuario" object stored in the session.
type User struct {
	ID      int    `json:"id_usuario"`
	Name    string `json:"nombre"`
	Email   string `json:"correo"`
	Role    string `json:"rol"`
	StoreID *int   `json:"id_tienda,omitempty"`
}

func (u *User) IsSeller() bool {
	return u != nil && u.Role == RoleStore && u.StoreID != nil
}
