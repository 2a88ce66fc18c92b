package dto

import "time"

// CreateCategoryRequest body del POST /categorias.
type CreateCategoryRequest struct {
	Nombre string `json:"nombre"`
}

// UpdateCategoryRequest body del PATCH /categorias/:id.
type UpdateCategoryRequest struct {
	Nombre *string `json:"nombre"`
}

// CategoryResponse representación pública de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
