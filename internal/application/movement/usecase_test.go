package movement_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/application/movement"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake append-only del ledger
// ──────────────────────────────────────────────────────────────────────────────

type memLedger struct {
	entries []entity.StockMovement
	nextID  int64
	err     error
}

func (l *memLedger) Insert(_ context.Context, m *entity.StockMovement) (int64, error) {
	if l.err != nil {
		return 0, l.err
	}
	l.nextID++
	rec := *m
	rec.ID = l.nextID
	rec.OccurredAt = time.Now()
	l.entries = append(l.entries, rec)
	return l.nextID, nil
}

func (l *memLedger) ListWithRelations(_ context.Context, _ repository.ListParams) ([]entity.StockMovement, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.entries, nil
}

func (l *memLedger) Count(_ context.Context) (int64, error) {
	if l.err != nil {
		return 0, l.err
	}
	return int64(len(l.entries)), nil
}

func (l *memLedger) ListForExport(_ context.Context) ([]entity.StockMovement, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.entries, nil
}

func validInput() movement.StockChangeInput {
	return movement.StockChangeInput{
		Kind:      entity.MovementIn,
		Quantity:  5,
		ProductID: 1,
		UserID:    2,
	}
}

func assertValidation(t *testing.T, err error, code string) {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, code, ve.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordStockChange
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordStockChange_AgregaEntradaAlLedger(t *testing.T) {
	ledger := &memLedger{}
	uc := movement.NewUseCase(ledger)

	id, err := uc.RecordStockChange(context.Background(), ledger, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, ledger.entries, 1)
	assert.Equal(t, entity.MovementIn, ledger.entries[0].Kind)
	assert.Equal(t, int64(5), ledger.entries[0].Quantity)
}

// El kind se normaliza (trim + minúsculas) antes de validarse.
func TestRecordStockChange_NormalizaElKind(t *testing.T) {
	ledger := &memLedger{}
	uc := movement.NewUseCase(ledger)

	_, err := uc.RecordStockChange(context.Background(), ledger, movement.StockChangeInput{
		Kind: "  SALIDA ", Quantity: 3, ProductID: 1, UserID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementOut, ledger.entries[0].Kind)
}

func TestRecordStockChange_KindDesconocidoEsInvalido(t *testing.T) {
	ledger := &memLedger{}
	uc := movement.NewUseCase(ledger)

	in := validInput()
	in.Kind = "ajuste"
	_, err := uc.RecordStockChange(context.Background(), ledger, in)
	assertValidation(t, err, domain.CodeEnumInvalid)
	assert.Empty(t, ledger.entries, "el rechazo ocurre antes del write")
}

// La cantidad nunca lleva dirección: cero y negativos se rechazan.
func TestRecordStockChange_CantidadNoPositivaEsInvalida(t *testing.T) {
	ledger := &memLedger{}
	uc := movement.NewUseCase(ledger)

	for _, qty := range []int64{0, -4} {
		in := validInput()
		in.Quantity = qty
		_, err := uc.RecordStockChange(context.Background(), ledger, in)
		assertValidation(t, err, domain.CodeCheckInvalid)
	}
}

func TestRecordStockChange_ReferenciasInvalidas(t *testing.T) {
	ledger := &memLedger{}
	uc := movement.NewUseCase(ledger)

	in := validInput()
	in.ProductID = 0
	_, err := uc.RecordStockChange(context.Background(), ledger, in)
	assertValidation(t, err, domain.CodeProductIDInvalid)

	in = validInput()
	in.UserID = -1
	_, err = uc.RecordStockChange(context.Background(), ledger, in)
	assertValidation(t, err, domain.CodeUserIDInvalid)
}

// Nota vacía: se sintetiza "Movimiento de <kind>".
func TestRecordStockChange_NotaPorDefecto(t *testing.T) {
	ledger := &memLedger{}
	uc := movement.NewUseCase(ledger)

	in := validInput()
	in.Kind = entity.MovementOut
	in.Note = "   "
	_, err := uc.RecordStockChange(context.Background(), ledger, in)
	require.NoError(t, err)
	assert.Equal(t, "Movimiento de salida", ledger.entries[0].Note)
}

func TestRecordStockChange_NotaDemasiadoLarga(t *testing.T) {
	ledger := &memLedger{}
	uc := movement.NewUseCase(ledger)

	in := validInput()
	in.Note = strings.Repeat("x", 256)
	_, err := uc.RecordStockChange(context.Background(), ledger, in)
	assertValidation(t, err, domain.CodeNotaTooLong)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / ExportCSV
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FalloDelStoreEsUnavailable(t *testing.T) {
	ledger := &memLedger{err: assert.AnError}
	uc := movement.NewUseCase(ledger)

	_, _, err := uc.List(context.Background(), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrMovListUnavailable)
}

func TestExportCSV_EncabezadoYEscaping(t *testing.T) {
	ledger := &memLedger{}
	uc := movement.NewUseCase(ledger)

	in := validInput()
	in.Note = `salida; urgente "hoy"`
	_, err := uc.RecordStockChange(context.Background(), ledger, in)
	require.NoError(t, err)

	out, err := uc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id;fecha;producto;tipo;cantidad;usuario;nota", lines[0])
	assert.Contains(t, lines[1], `"salida; urgente ""hoy"""`,
		"el valor con ';' y comillas va entre comillas con comillas dobladas")
}

func TestExportCSV_FalloDelStoreEsUnavailable(t *testing.T) {
	ledger := &memLedger{err: assert.AnError}
	uc := movement.NewUseCase(ledger)

	_, err := uc.ExportCSV(context.Background())
	assert.ErrorIs(t, err, domain.ErrMovExportUnavailable)
}
