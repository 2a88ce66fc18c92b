package dto

import (
	"bytes"
	"strconv"
	"time"
)

// OptionalCategory referencia de categoría tri-estado en JSON:
//   - clave ausente            -> Present=false (no tocar en PATCH)
//   - null, "", 0 o "0"        -> Present=true, ID=nil (sin categoría)
//   - entero positivo          -> Present=true, ID=&n
//   - cualquier otro valor     -> Present=true, Invalid=true
type OptionalCategory struct {
	Present bool
	Invalid bool
	ID      *int64
}

// UnmarshalJSON implementa la normalización de categoriaId.
func (o *OptionalCategory) UnmarshalJSON(b []byte) error {
	o.Present = true
	o.Invalid = false
	o.ID = nil

	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return nil
	}
	// Acepta también la forma con comillas ("3", "")
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		o.Invalid = true
		return nil
	}
	if n == 0 {
		return nil // 0 es sin categoría
	}
	o.ID = &n
	return nil
}

// CreateProductRequest body del POST /productos. PrecioCents y Stock usan
// puntero para distinguir campo ausente de cero.
type CreateProductRequest struct {
	Nombre      string           `json:"nombre"`
	PrecioCents *int64           `json:"precioCents"`
	Stock       *int64           `json:"stock"`
	CategoriaID OptionalCategory `json:"categoriaId"`
	Nota        string           `json:"nota"`
}

// UpdateProductRequest body del PATCH /productos/:id. Todos los campos son
// opcionales; solo los presentes entran al change-set.
type UpdateProductRequest struct {
	Nombre      *string          `json:"nombre"`
	PrecioCents *int64           `json:"precioCents"`
	Stock       *int64           `json:"stock"`
	CategoriaID OptionalCategory `json:"categoriaId"`
	Nota        string           `json:"nota"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Nombre      string    `json:"nombre"`
	PrecioCents int64     `json:"precioCents"`
	Stock       int64     `json:"stock"`
	CategoriaID *int64    `json:"categoriaId"`
	Categoria   string    `json:"categoria,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductTotalValueResponse producto con su valor total (precio × stock) para analytics.
type ProductTotalValueResponse struct {
	ProductResponse
	ValorTotal string `json:"valorTotal"`
}
