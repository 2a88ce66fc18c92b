// Package product implementa el orquestador de consistencia de stock: toda
// creación o patch que cambie el stock persiste la fila del producto, calcula
// el delta y agrega el movimiento correspondiente como una sola unidad
// atómica, con relectura de verificación antes del commit.
package product

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/application/movement"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
	"github.com/jhoicas/gestioncom-api/pkg/csvutil"
)

// PatchOutcome resultado de un Patch. NotFound y NoChange son resultados
// esperados, no errores: el orquestador solo falla por anomalías de
// infraestructura o integridad.
type PatchOutcome int

const (
	PatchApplied PatchOutcome = iota
	PatchNoChange
	PatchNotFound
)

// Centinelas internos del closure transaccional: fuerzan el rollback del
// scope y se traducen al outcome fuera de la transacción.
var (
	errPatchNotFound = errors.New("patch: producto no existe")
	errPatchNoChange = errors.New("patch: sin cambios")
)

// UseCase orquestador de productos. Las lecturas van por repo (pool); las
// mutaciones multi-paso abren su scope exclusivo vía txRunner.
type UseCase struct {
	txRunner  TxRunner
	repo      repository.ProductRepository
	movements *movement.UseCase
	pdf       CatalogPDFGenerator
}

// NewUseCase construye el orquestador.
func NewUseCase(txRunner TxRunner, repo repository.ProductRepository, movements *movement.UseCase, pdf CatalogPDFGenerator) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, movements: movements, pdf: pdf}
}

// Create inserta el producto y, si el stock inicial es positivo, registra el
// movimiento de entrada en la misma transacción. La fila insertada se relee
// dentro del scope antes del commit; si la relectura no devuelve nada se
// aborta con REGISTER_READ_BACK_FAILED.
func (uc *UseCase) Create(ctx context.Context, actorID int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	draft, err := validateCreate(in)
	if err != nil {
		return nil, err
	}
	if actorID <= 0 {
		return nil, domain.NewValidation(domain.CodeUserIDInvalid)
	}

	var created *entity.Product
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		id, err := productRepo.Insert(ctx, draft)
		if err != nil {
			return err
		}
		row, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return domain.ErrReadBackFailed
		}
		if row.Stock > 0 {
			if _, err := uc.movements.RecordStockChange(ctx, movRepo, movement.StockChangeInput{
				Kind:      entity.MovementIn,
				Quantity:  row.Stock,
				ProductID: id,
				UserID:    actorID,
				Note:      in.Nota,
			}); err != nil {
				return err
			}
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err)
	}
	resp := toProductResponse(*created)
	return &resp, nil
}

// Patch aplica un subconjunto de campos sobre el producto. Si el stock está
// entre los cambios, el delta firmado decide el kind del movimiento (entrada
// si sube, salida si baja) y su magnitud; delta cero o stock ausente no
// generan movimiento. El patch aplica completo y commitea, o no deja ningún
// efecto visible.
func (uc *UseCase) Patch(ctx context.Context, id int64, in dto.UpdateProductRequest, actorID int64) (*dto.ProductResponse, PatchOutcome, error) {
	if id <= 0 {
		return nil, PatchApplied, domain.NewValidation(domain.CodeInvalidID)
	}
	if actorID <= 0 {
		return nil, PatchApplied, domain.NewValidation(domain.CodeUserIDInvalid)
	}
	changes, err := validatePatch(in)
	if err != nil {
		return nil, PatchApplied, err
	}

	var final *entity.Product
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		current, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return errPatchNotFound
		}
		if changes.Empty() {
			return errPatchNoChange
		}

		merged := changes.Apply(*current)

		// Delta solo si vino stock en los cambios
		var delta int64
		if changes.Stock != nil {
			delta = merged.Stock - current.Stock
		}

		affected, err := productRepo.UpdatePartial(ctx, id, changes)
		if err != nil {
			return err
		}
		if !affected {
			return errPatchNoChange
		}

		if delta != 0 {
			kind := entity.MovementIn
			quantity := delta
			if delta < 0 {
				kind = entity.MovementOut
				quantity = -delta
			}
			if _, err := uc.movements.RecordStockChange(ctx, movRepo, movement.StockChangeInput{
				Kind:      kind,
				Quantity:  quantity,
				ProductID: id,
				UserID:    actorID,
				Note:      in.Nota,
			}); err != nil {
				return err
			}
		}

		row, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return domain.ErrReadBackFailed
		}
		final = row
		return nil
	})
	switch {
	case errors.Is(err, errPatchNotFound):
		return nil, PatchNotFound, nil
	case errors.Is(err, errPatchNoChange):
		return nil, PatchNoChange, nil
	case err != nil:
		return nil, PatchApplied, translateStoreError(err)
	}
	resp := toProductResponse(*final)
	return &resp, PatchApplied, nil
}

// Remove borra el producto. Si el store reporta que hay movimientos que lo
// referencian, el conflicto sube como PRODUCT_IN_USE. found=false cuando la
// fila no existía (centinela, no error).
func (uc *UseCase) Remove(ctx context.Context, id int64) (found bool, err error) {
	if id <= 0 {
		return false, domain.NewValidation(domain.CodeInvalidID)
	}
	found, err = uc.repo.Remove(ctx, id)
	if err != nil {
		return false, translateStoreError(err)
	}
	return found, nil
}

// GetByID devuelve nil (sin error) cuando el producto no existe.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	if id <= 0 {
		return nil, domain.NewValidation(domain.CodeInvalidID)
	}
	row, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal
	}
	if row == nil {
		return nil, nil
	}
	resp := toProductResponse(*row)
	return &resp, nil
}

// List devuelve la página con meta consistente para el front.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, *dto.PageMeta, error) {
	page.Normalize("created_at")

	rows, err := uc.repo.List(ctx, repository.ListParams{
		Limit:    page.Limit,
		Offset:   page.Offset,
		OrderBy:  page.OrderBy,
		OrderDir: page.OrderDir,
	})
	if err != nil {
		return nil, nil, domain.ErrInternal
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, nil, domain.ErrInternal
	}

	items := make([]dto.ProductResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, toProductResponse(p))
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

// TopByPrice devuelve los N productos más caros.
func (uc *UseCase) TopByPrice(ctx context.Context, limit int) ([]dto.ProductResponse, error) {
	rows, err := uc.repo.TopByPrice(ctx, limit)
	if err != nil {
		return nil, domain.ErrInternal
	}
	items := make([]dto.ProductResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, toProductResponse(p))
	}
	return items, nil
}

// TopByTotalValue devuelve los N productos por valor total (precio × stock).
func (uc *UseCase) TopByTotalValue(ctx context.Context, limit int) ([]dto.ProductTotalValueResponse, error) {
	rows, err := uc.repo.TopByTotalValue(ctx, limit)
	if err != nil {
		return nil, domain.ErrInternal
	}
	items := make([]dto.ProductTotalValueResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ProductTotalValueResponse{
			ProductResponse: toProductResponse(r.Product),
			ValorTotal:      r.TotalValue.String(),
		})
	}
	return items, nil
}

// ExportCSV serializa todos los productos. El precio se renderiza en unidades
// (centavos ÷ 100); la categoría ausente sale como "sin categoria".
func (uc *UseCase) ExportCSV(ctx context.Context) (string, error) {
	rows, err := uc.repo.ListForExport(ctx)
	if err != nil {
		return "", domain.ErrProductExportUnavailable
	}

	var b strings.Builder
	b.WriteString(csvutil.Join("id", "nombre", "precio", "stock", "categoria", "creado", "actualizado"))
	for _, p := range rows {
		category := p.CategoryName
		if category == "" {
			category = "sin categoria"
		}
		price := decimal.NewFromInt(p.PriceCents).Div(decimal.NewFromInt(100))
		b.WriteString("\n")
		b.WriteString(csvutil.Join(
			formatInt(p.ID),
			p.Name,
			price.String(),
			formatInt(p.Stock),
			category,
			csvutil.FormatTimestamp(p.CreatedAt),
			csvutil.FormatTimestamp(p.UpdatedAt),
		))
	}
	return b.String(), nil
}

// ExportPDF genera el catálogo completo en PDF.
func (uc *UseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.repo.ListForExport(ctx)
	if err != nil {
		return nil, domain.ErrProductExportUnavailable
	}
	return uc.pdf.GenerateCatalog(ctx, rows)
}

// validateCreate verifica presencia + tipos/rangos básicos del draft.
func validateCreate(in dto.CreateProductRequest) (entity.ProductDraft, error) {
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return entity.ProductDraft{}, domain.NewValidation(domain.CodeProductNameRequired)
	}
	if in.PrecioCents == nil || *in.PrecioCents < 0 {
		return entity.ProductDraft{}, domain.NewValidation(domain.CodeProductPriceInvalid)
	}
	if in.Stock == nil || *in.Stock < 0 {
		return entity.ProductDraft{}, domain.NewValidation(domain.CodeProductStockInvalid)
	}
	if in.CategoriaID.Invalid {
		return entity.ProductDraft{}, domain.NewValidation(domain.CodeProductCatInvalid)
	}
	return entity.ProductDraft{
		Name:       name,
		PriceCents: *in.PrecioCents,
		Stock:      *in.Stock,
		CategoryID: in.CategoriaID.ID,
	}, nil
}

// validatePatch construye el change-set con los campos presentes que pasan
// la allow-list de campos parcheables.
func validatePatch(in dto.UpdateProductRequest) (entity.ProductChanges, error) {
	var changes entity.ProductChanges
	if in.Nombre != nil {
		name := strings.TrimSpace(*in.Nombre)
		if name == "" {
			return changes, domain.NewValidation(domain.CodeProductNameRequired)
		}
		changes.Name = &name
	}
	if in.PrecioCents != nil {
		if *in.PrecioCents < 0 {
			return changes, domain.NewValidation(domain.CodeProductPriceInvalid)
		}
		changes.PriceCents = in.PrecioCents
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return changes, domain.NewValidation(domain.CodeProductStockInvalid)
		}
		changes.Stock = in.Stock
	}
	if in.CategoriaID.Present {
		if in.CategoriaID.Invalid {
			return changes, domain.NewValidation(domain.CodeProductCatInvalid)
		}
		id := in.CategoriaID.ID
		changes.CategoryID = &id
	}
	return changes, nil
}

// translateStoreError deja pasar los errores de dominio ya traducidos por el
// repositorio (duplicado, categoría inexistente, en uso, read-back) y
// colapsa cualquier otro fallo a INTERNAL_ERROR para no filtrar detalles.
func translateStoreError(err error) error {
	switch {
	case errors.Is(err, domain.ErrProductDuplicate),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrProductInUse),
		errors.Is(err, domain.ErrReadBackFailed),
		domain.IsValidation(err):
		return err
	default:
		return domain.ErrInternal
	}
}

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Nombre:      p.Name,
		PrecioCents: p.PriceCents,
		Stock:       p.Stock,
		CategoriaID: p.CategoryID,
		Categoria:   p.CategoryName,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
