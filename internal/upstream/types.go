package upstream

import "github.com/Supermili365/expirapp/internal/domain"

// Credentials is what a successful login yields.
type Credentials struct {
	Token string      `json:"token"`
	User  domain.User `json:"usuario"`
}

type RegisterUserInput struct {
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
	Phone    string `json:"telefono,omitempty"`
}

type RegisterStoreInput struct {
	StoreName string `json:"nombre_tienda"`
	Address   string `json:"direccion,omitempty"`
	Owner     RegisterUserInput
}

// MarshalJSON flattens the owner fields into the store payload, which is
// the shape the stores endpoint expects.
type registerStoreWire struct {
	StoreName string `json:"nombre_tienda"`
	Address   string `json:"direccion,omitempty"`
	Name      string `json:"nombre"`
	Email     string `json:"correo"`
	Password  string `json:"contrasena"`
	Phone     string `json:"telefono,omitempty"`
}

func (i RegisterStoreInput) wire() registerStoreWire {
	return registerStoreWire{
		StoreName: i.StoreName,
		Address:   i.Address,
		Name:      i.Owner.Name,
		Email:     i.Owner.Email,
		Password:  i.Owner.Password,
		Phone:     i.Owner.Phone,
	}
}

type UpdateUserInput struct {
	Name  string `json:"nombre,omitempty"`
	Email string `json:"correo,omitempty"`
}

type Store struct {
	ID      int    `json:"id_tienda"`
	Name    string `json:"nombre_tienda"`
	Address string `json:"direccion,omitempty"`
	Email   string `json:"correo,omitempty"`
	UserID  int    `json:"id_usuario,omitempty"`
}

type UpdateStoreInput struct {
	Name    string `json:"nombre_tienda,omitempty"`
	Address string `json:"direccion,omitempty"`
}

type CreateProductInput struct {
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion,omitempty"`
	Price       float64 `json:"precio"`
	ExpiryDate  string  `json:"fecha_vencimiento"`
	Stock       *int    `json:"stock,omitempty"`
	Status      string  `json:"estado,omitempty"`
	StoreID     int     `json:"id_tienda"`
}

// OrderRequest is one order for one store, as the orders endpoint takes it.
type OrderRequest struct {
	ClientID      int         `json:"client_id"`
	StoreID       int         `json:"store_id"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderReceipt is the backend's answer to a placed order. The body is not
// guaranteed to be JSON; callers get a zero receipt in that case.
type OrderReceipt struct {
	OrderID int64  `json:"orderId"`
	Message string `json:"message"`
}
