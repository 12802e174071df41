package entity

// Company empresa a la que pertenecen los clientes. Solo tiene nombre.
type Company struct {
	ID   string
	Name string
}
