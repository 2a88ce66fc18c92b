// Package category implementa el CRUD de categorías.
package category

import (
	"context"
	"strings"

	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
)

// UseCase casos de uso de categorías.
type UseCase struct {
	repo repository.CategoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CategoryRepository) *UseCase {
	return &UseCase{repo: repo}
}

// PatchOutcome resultado de un Patch (mismo contrato de tres vías que productos).
type PatchOutcome int

const (
	PatchApplied PatchOutcome = iota
	PatchNoChange
	PatchNotFound
)

// Create crea una categoría; nombre duplicado sube como CATEGORY_DUPLICATE.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, domain.NewValidation(domain.CodeCategoryNameReq)
	}
	id, err := uc.repo.Insert(ctx, name)
	if err != nil {
		return nil, translate(err)
	}
	row, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal
	}
	if row == nil {
		return nil, domain.ErrReadBackFailed
	}
	resp := toResponse(*row)
	return &resp, nil
}

// GetByID devuelve nil (sin error) cuando la categoría no existe.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
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
	resp := toResponse(*row)
	return &resp, nil
}

// Patch renombra la categoría. Tres vías: aplicado, sin cambios, no existe.
func (uc *UseCase) Patch(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, PatchOutcome, error) {
	if id <= 0 {
		return nil, PatchApplied, domain.NewValidation(domain.CodeInvalidID)
	}
	if in.Nombre == nil {
		return nil, PatchNoChange, nil
	}
	name := strings.TrimSpace(*in.Nombre)
	if name == "" {
		return nil, PatchApplied, domain.NewValidation(domain.CodeCategoryNameReq)
	}

	current, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, PatchApplied, domain.ErrInternal
	}
	if current == nil {
		return nil, PatchNotFound, nil
	}

	affected, err := uc.repo.UpdateName(ctx, id, name)
	if err != nil {
		return nil, PatchApplied, translate(err)
	}
	if !affected {
		return nil, PatchNoChange, nil
	}

	row, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, PatchApplied, domain.ErrInternal
	}
	if row == nil {
		return nil, PatchApplied, domain.ErrReadBackFailed
	}
	resp := toResponse(*row)
	return &resp, PatchApplied, nil
}

// Remove borra la categoría; productos que la referencian suben como CATEGORY_IN_USE.
func (uc *UseCase) Remove(ctx context.Context, id int64) (found bool, err error) {
	if id <= 0 {
		return false, domain.NewValidation(domain.CodeInvalidID)
	}
	found, err = uc.repo.Remove(ctx, id)
	if err != nil {
		return false, translate(err)
	}
	return found, nil
}

// List devuelve la página de categorías con meta.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CategoryResponse, *dto.PageMeta, error) {
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

	items := make([]dto.CategoryResponse, 0, len(rows))
	for _, c := range rows {
		items = append(items, toResponse(c))
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

func translate(err error) error {
	switch err {
	case domain.ErrCategoryDuplicate, domain.ErrCategoryInUse:
		return err
	default:
		return domain.ErrInternal
	}
}

func toResponse(c entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		Nombre:    c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
