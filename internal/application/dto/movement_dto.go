package dto

import "time"

// MovementResponse entrada del historial de movimientos con joins.
type MovementResponse struct {
	ID         int64     `json:"id"`
	Tipo       string    `json:"tipo"`
	Cantidad   int64     `json:"cantidad"`
	Fecha      time.Time `json:"fecha"`
	ProductoID int64     `json:"productoId"`
	Producto   string    `json:"producto,omitempty"`
	UsuarioID  int64     `json:"usuarioId"`
	Usuario    string    `json:"usuario,omitempty"`
	Nota       string    `json:"nota"`
}
