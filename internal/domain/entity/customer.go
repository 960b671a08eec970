package entity

// Customer cliente del backend; solo se usa para resolver nombres en las vistas derivadas.
type Customer struct {
	ID    string
	Name  string
	Email string
}
