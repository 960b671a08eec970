package entity

import "time"

// DefaultReorderPoint punto de reorden aplicado cuando el backend no lo informa.
const DefaultReorderPoint = 10

// InventoryLevel representa el stock actual de un producto en una bodega.
// Quantity y ReorderPoint ya vienen normalizados desde la capa de ingesta
// (ausente ⇒ 0 y DefaultReorderPoint respectivamente).
type InventoryLevel struct {
	ID           string
	ProductID    string
	WarehouseID  string
	Quantity     int
	ReorderPoint int
	UpdatedAt    time.Time
}
