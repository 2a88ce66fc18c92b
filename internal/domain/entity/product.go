package entity

import "time"

// Product representa un producto del inventario. El stock vive en la fila del
// producto (lectura rápida); los movimientos son la pista de auditoría que el
// orquestador genera como efecto de cada mutación, no la fuente de verdad.
type Product struct {
	ID           int64
	Name         string
	PriceCents   int64  // precio en centavos, nunca negativo
	Stock        int64  // nunca negativo
	CategoryID   *int64 // nil = sin categoría
	CategoryName string // solo en lecturas con join
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductDraft datos validados para insertar un producto.
type ProductDraft struct {
	Name       string
	PriceCents int64
	Stock      int64
	CategoryID *int64
}

// ProductChanges conjunto de cambios de un PATCH: solo los campos presentes
// (punteros no nil) se incluyen en el UPDATE. CategoryID usa doble puntero
// para distinguir "no tocar" (nil) de "dejar sin categoría" (*nil).
type ProductChanges struct {
	Name       *string
	PriceCents *int64
	Stock      *int64
	CategoryID **int64
}

// Empty indica si no hay ningún campo por actualizar.
func (c ProductChanges) Empty() bool {
	return c.Name == nil && c.PriceCents == nil && c.Stock == nil && c.CategoryID == nil
}

// Apply devuelve el producto resultante de aplicar los cambios sobre p.
func (c ProductChanges) Apply(p Product) Product {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.PriceCents != nil {
		p.PriceCents = *c.PriceCents
	}
	if c.Stock != nil {
		p.Stock = *c.Stock
	}
	if c.CategoryID != nil {
		p.CategoryID = *c.CategoryID
	}
	return p
}
