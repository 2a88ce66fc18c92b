// Package movement implementa el registro y consulta del ledger de
// movimientos de stock. RecordStockChange valida y agrega exactamente una
// entrada dentro del scope transaccional que le pasa el llamador; nunca abre
// transacciones propias ni reintenta.
package movement

import (
	"context"
	"strconv"
	"strings"

	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
	"github.com/jhoicas/gestioncom-api/pkg/csvutil"
)

// Límite de la nota libre después de trim.
const maxNoteLen = 255

// UseCase consulta del historial + registro de cambios de stock.
// El repo inyectado (pool) se usa para lecturas; los writes van por el
// repositorio atado a la transacción del llamador.
type UseCase struct {
	repo repository.MovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.MovementRepository) *UseCase {
	return &UseCase{repo: repo}
}

// StockChangeInput intención de movimiento: kind + magnitud + referencias.
type StockChangeInput struct {
	Kind      string
	Quantity  int64
	ProductID int64
	UserID    int64
	Note      string
}

// RecordStockChange valida la intención y agrega una entrada al ledger usando
// el repositorio atado a la transacción del llamador (txRepo). Cualquier
// fallo del store se propaga sin tocar el scope: el rollback es
// responsabilidad de quien abrió la transacción.
func (uc *UseCase) RecordStockChange(ctx context.Context, txRepo repository.MovementRepository, in StockChangeInput) (int64, error) {
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	if !entity.ValidMovementKind(kind) {
		return 0, domain.NewValidation(domain.CodeEnumInvalid)
	}
	if in.Quantity <= 0 {
		return 0, domain.NewValidation(domain.CodeCheckInvalid)
	}
	if in.ProductID <= 0 {
		return 0, domain.NewValidation(domain.CodeProductIDInvalid)
	}
	if in.UserID <= 0 {
		return 0, domain.NewValidation(domain.CodeUserIDInvalid)
	}
	note := strings.TrimSpace(in.Note)
	if len(note) > maxNoteLen {
		return 0, domain.NewValidation(domain.CodeNotaTooLong)
	}
	if note == "" {
		note = "Movimiento de " + kind
	}

	return txRepo.Insert(ctx, &entity.StockMovement{
		Kind:      kind,
		Quantity:  in.Quantity,
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Note:      note,
	})
}

// List devuelve el historial paginado con nombre de usuario y producto.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.MovementResponse, *dto.PageMeta, error) {
	page.Normalize("fecha")

	rows, err := uc.repo.ListWithRelations(ctx, repository.ListParams{
		Limit:    page.Limit,
		Offset:   page.Offset,
		OrderBy:  page.OrderBy,
		OrderDir: page.OrderDir,
	})
	if err != nil {
		return nil, nil, domain.ErrMovListUnavailable
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, nil, domain.ErrMovListUnavailable
	}

	items := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		items = append(items, toMovementResponse(m))
	}
	meta := &dto.PageMeta{
		Total:    total,
		Limit:    page.Limit,
		Offset:   page.Offset,
		OrderBy:  page.OrderBy,
		OrderDir: page.OrderDir,
	}
	return items, meta, nil
}

// ExportCSV serializa todo el historial (sin paginar) con el contrato de
// escaping de csvutil. El BOM lo antepone el handler.
func (uc *UseCase) ExportCSV(ctx context.Context) (string, error) {
	rows, err := uc.repo.ListForExport(ctx)
	if err != nil {
		return "", domain.ErrMovExportUnavailable
	}

	var b strings.Builder
	b.WriteString(csvutil.Join("id", "fecha", "producto", "tipo", "cantidad", "usuario", "nota"))
	for _, m := range rows {
		b.WriteString("\n")
		b.WriteString(csvutil.Join(
			formatInt(m.ID),
			csvutil.FormatTimestamp(m.OccurredAt),
			m.ProductName,
			m.Kind,
			formatInt(m.Quantity),
			m.UserName,
			m.Note,
		))
	}
	return b.String(), nil
}

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }

func toMovementResponse(m entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		Tipo:       m.Kind,
		Cantidad:   m.Quantity,
		Fecha:      m.OccurredAt,
		ProductoID: m.ProductID,
		Producto:   m.ProductName,
		UsuarioID:  m.UserID,
		Usuario:    m.UserName,
		Nota:       m.Note,
	}
}
