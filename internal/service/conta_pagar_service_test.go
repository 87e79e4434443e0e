package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContaPagarRepo is an in-memory ContaPagarRepository for testing.
type stubContaPagarRepo struct {
	contas map[uuid.UUID]*model.ContaPagar
}

func newStubContaPagarRepo() *stubContaPagarRepo {
	return &stubContaPagarRepo{contas: make(map[uuid.UUID]*model.ContaPagar)}
}

func (r *stubContaPagarRepo) CreateBatch(_ context.Context, contas []model.ContaPagar) error {
	for i := range contas {
		if contas[i].ID == uuid.Nil {
			contas[i].ID = uuid.New()
		}
		c := contas[i]
		r.contas[c.ID] = &c
	}
	return nil
}

func (r *stubContaPagarRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ContaPagar, error) {
	c, ok := r.contas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubContaPagarRepo) List(_ context.Context, _ dto.ContaPagarFilter) ([]model.ContaPagar, int64, error) {
	var out []model.ContaPagar
	for _, c := range r.contas {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubContaPagarRepo) ListVencidas(_ context.Context, referencia time.Time) ([]model.ContaPagar, error) {
	var out []model.ContaPagar
	for _, c := range r.contas {
		if !c.Pago && c.Vencimento.Before(referencia) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubContaPagarRepo) Update(_ context.Context, c *model.ContaPagar) error {
	r.contas[c.ID] = c
	return nil
}

func (r *stubContaPagarRepo) SetPago(_ context.Context, id uuid.UUID, pago bool) error {
	c, ok := r.contas[id]
	if !ok {
		return errors.New("not found")
	}
	c.Pago = pago
	return nil
}

func (r *stubContaPagarRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.contas, id)
	return nil
}

func (r *stubContaPagarRepo) DeleteSerie(_ context.Context, serieID uuid.UUID) (int64, error) {
	var removidas int64
	for id, c := range r.contas {
		if c.SerieID != nil && *c.SerieID == serieID {
			delete(r.contas, id)
			removidas++
		}
	}
	return removidas, nil
}

var _ repository.ContaPagarRepository = (*stubContaPagarRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCriarContaSimples(t *testing.T) {
	repo := newStubContaPagarRepo()
	svc := NewContaPagarService(repo)

	resp, err := svc.Criar(context.Background(), dto.CriarContaPagarRequest{
		Nome:       "Aluguel",
		Valor:      decimal.RequireFromString("1200.00"),
		Vencimento: "2025-03-05",
		Pago:       true,
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)

	assert.Equal(t, "Aluguel", resp[0].Nome)
	assert.Equal(t, "2025-03-05", resp[0].Vencimento)
	// An unparceled entry keeps the caller's Pago flag.
	assert.True(t, resp[0].Pago)
	assert.Nil(t, resp[0].SerieID)
}

func TestCriarContaParceladaMensal(t *testing.T) {
	repo := newStubContaPagarRepo()
	svc := NewContaPagarService(repo)

	resp, err := svc.Criar(context.Background(), dto.CriarContaPagarRequest{
		Nome:           "Impressora",
		Valor:          decimal.RequireFromString("100.00"),
		Vencimento:     "2025-01-31",
		Pago:           true, // ignored for series
		Parcelado:      true,
		NumeroParcelas: 3,
		Cadencia:       "mensal",
	})
	require.NoError(t, err)
	require.Len(t, resp, 3)

	assert.Equal(t, "Impressora - Parcela 1/3", resp[0].Nome)
	assert.Equal(t, "Impressora - Parcela 2/3", resp[1].Nome)
	assert.Equal(t, "Impressora - Parcela 3/3", resp[2].Nome)

	// 100/3 with the remainder absorbed by the last parcel
	assert.True(t, resp[0].Valor.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, resp[1].Valor.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, resp[2].Valor.Equal(decimal.RequireFromString("33.34")))

	// Month-end due dates clamp instead of overflowing into the next month.
	assert.Equal(t, "2025-01-31", resp[0].Vencimento)
	assert.Equal(t, "2025-02-28", resp[1].Vencimento)
	assert.Equal(t, "2025-03-31", resp[2].Vencimento)

	// Every series member shares the id and starts unpaid.
	require.NotNil(t, resp[0].SerieID)
	for _, c := range resp {
		assert.False(t, c.Pago)
		assert.Equal(t, *resp[0].SerieID, *c.SerieID)
		require.NotNil(t, c.TotalParcelasSerie)
		assert.Equal(t, 3, *c.TotalParcelasSerie)
	}
}

func TestCriarContaParceladaSemanal(t *testing.T) {
	repo := newStubContaPagarRepo()
	svc := NewContaPagarService(repo)

	resp, err := svc.Criar(context.Background(), dto.CriarContaPagarRequest{
		Nome:           "Insumos",
		Valor:          decimal.RequireFromString("90.00"),
		Vencimento:     "2025-06-02",
		Parcelado:      true,
		NumeroParcelas: 3,
		Cadencia:       "semanal",
	})
	require.NoError(t, err)
	require.Len(t, resp, 3)

	assert.Equal(t, "2025-06-02", resp[0].Vencimento)
	assert.Equal(t, "2025-06-09", resp[1].Vencimento)
	assert.Equal(t, "2025-06-16", resp[2].Vencimento)
}

func TestAlternarPagoSimetrico(t *testing.T) {
	repo := newStubContaPagarRepo()
	svc := NewContaPagarService(repo)

	resp, err := svc.Criar(context.Background(), dto.CriarContaPagarRequest{
		Nome:       "Energia",
		Valor:      decimal.RequireFromString("340.00"),
		Vencimento: "2025-04-10",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp[0].ID)

	toggled, err := svc.AlternarPago(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, toggled.Pago)

	toggled, err = svc.AlternarPago(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, toggled.Pago)
}

func TestExcluirSerieRemoveTudo(t *testing.T) {
	repo := newStubContaPagarRepo()
	svc := NewContaPagarService(repo)

	resp, err := svc.Criar(context.Background(), dto.CriarContaPagarRequest{
		Nome:           "Financiamento",
		Valor:          decimal.RequireFromString("600.00"),
		Vencimento:     "2025-02-15",
		Parcelado:      true,
		NumeroParcelas: 6,
	})
	require.NoError(t, err)
	serieID := uuid.MustParse(*resp[0].SerieID)

	// One parcel already paid does not block cascade removal.
	_, err = svc.AlternarPago(context.Background(), uuid.MustParse(resp[0].ID))
	require.NoError(t, err)

	removidas, err := svc.ExcluirSerie(context.Background(), serieID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), removidas)
	assert.Empty(t, repo.contas)
}

func TestExcluirSerieInexistente(t *testing.T) {
	repo := newStubContaPagarRepo()
	svc := NewContaPagarService(repo)

	_, err := svc.ExcluirSerie(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrContaNaoEncontrada)
}

func TestAtualizarContaVencimento(t *testing.T) {
	repo := newStubContaPagarRepo()
	svc := NewContaPagarService(repo)

	resp, err := svc.Criar(context.Background(), dto.CriarContaPagarRequest{
		Nome:       "Internet",
		Valor:      decimal.RequireFromString("120.00"),
		Vencimento: "2025-05-01",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp[0].ID)

	novoValor := decimal.RequireFromString("130.00")
	atualizado, err := svc.Atualizar(context.Background(), id, dto.AtualizarContaPagarRequest{
		Valor:      &novoValor,
		Vencimento: "2025-05-10",
	})
	require.NoError(t, err)
	assert.True(t, atualizado.Valor.Equal(novoValor))
	assert.Equal(t, "2025-05-10", atualizado.Vencimento)
}
