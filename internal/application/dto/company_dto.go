package dto

// CompanyRequest entrada para crear o renombrar una empresa.
type CompanyRequest struct {
	Name string `json:"name" validate:"required,min=5"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CompanyListResponse lista de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}
