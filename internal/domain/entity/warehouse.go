package entity

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID       string
	Name     string
	Code     string
	Location string
}
