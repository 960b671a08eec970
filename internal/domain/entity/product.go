package entity

import "time"

// Product representa un producto o SKU tal como lo expone el backend de inventario.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Category  string
	CreatedAt time.Time
}
