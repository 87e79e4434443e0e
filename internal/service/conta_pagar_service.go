package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/pricing"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrContaNaoEncontrada = errors.New("conta a pagar nao encontrada")

type ContaPagarService interface {
	Criar(ctx context.Context, req dto.CriarContaPagarRequest) ([]dto.ContaPagarResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ContaPagarResponse, error)
	Listar(ctx context.Context, filter dto.ContaPagarFilter) (*dto.ContaPagarListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarContaPagarRequest) (*dto.ContaPagarResponse, error)
	AlternarPago(ctx context.Context, id uuid.UUID) (*dto.ContaPagarResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
	ExcluirSerie(ctx context.Context, serieID uuid.UUID) (int64, error)
}

type contaPagarService struct {
	repo repository.ContaPagarRepository
}

func NewContaPagarService(repo repository.ContaPagarRepository) ContaPagarService {
	return &contaPagarService{repo: repo}
}

// Criar creates one payable, or a whole series when Parcelado is set. The
// installment engine splits the total and schedules the due dates; every
// series member starts unpaid regardless of the Pago flag on the request,
// because marking a future parcel paid up front is never what the caller
// means.
func (s *contaPagarService) Criar(ctx context.Context, req dto.CriarContaPagarRequest) ([]dto.ContaPagarResponse, error) {
	vencimento, err := time.Parse("2006-01-02", req.Vencimento)
	if err != nil {
		return nil, errors.New("vencimento invalido, use AAAA-MM-DD")
	}

	var contas []model.ContaPagar

	if req.Parcelado && req.NumeroParcelas > 1 {
		cadencia := req.Cadencia
		if cadencia == "" {
			cadencia = pricing.CadenciaMensal
		}
		parcelas, err := pricing.GerarParcelas(req.Valor, vencimento, req.NumeroParcelas, cadencia)
		if err != nil {
			return nil, err
		}
		serieID := uuid.New()
		total := len(parcelas)
		for i, p := range parcelas {
			numero := i + 1
			contas = append(contas, model.ContaPagar{
				Nome:               fmt.Sprintf("%s - Parcela %d/%d", req.Nome, numero, total),
				Valor:              p.Valor,
				Vencimento:         p.Vencimento,
				Pago:               false,
				Observacoes:        req.Observacoes,
				SerieID:            &serieID,
				TotalParcelasSerie: &total,
				NumeroParcelaSerie: &numero,
			})
		}
	} else {
		contas = append(contas, model.ContaPagar{
			Nome:        req.Nome,
			Valor:       req.Valor,
			Vencimento:  vencimento,
			Pago:        req.Pago,
			Observacoes: req.Observacoes,
		})
	}

	if err := s.repo.CreateBatch(ctx, contas); err != nil {
		return nil, err
	}
	log.Info().Int("entradas", len(contas)).Str("nome", req.Nome).Msg("conta a pagar criada")

	resp := make([]dto.ContaPagarResponse, 0, len(contas))
	for i := range contas {
		resp = append(resp, *contaToResponse(&contas[i]))
	}
	return resp, nil
}

func (s *contaPagarService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ContaPagarResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrContaNaoEncontrada
	}
	return contaToResponse(c), nil
}

func (s *contaPagarService) Listar(ctx context.Context, filter dto.ContaPagarFilter) (*dto.ContaPagarListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	contas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ContaPagarResponse, 0, len(contas))
	for i := range contas {
		data = append(data, *contaToResponse(&contas[i]))
	}
	return &dto.ContaPagarListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *contaPagarService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarContaPagarRequest) (*dto.ContaPagarResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrContaNaoEncontrada
	}
	if req.Nome != "" {
		c.Nome = req.Nome
	}
	if req.Valor != nil {
		c.Valor = *req.Valor
	}
	if req.Vencimento != "" {
		vencimento, err := time.Parse("2006-01-02", req.Vencimento)
		if err != nil {
			return nil, errors.New("vencimento invalido, use AAAA-MM-DD")
		}
		c.Vencimento = vencimento
	}
	if req.Observacoes != nil {
		c.Observacoes = req.Observacoes
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return contaToResponse(c), nil
}

// AlternarPago flips the paid flag. The toggle is symmetric and has no side
// effects, so un-marking a payment is always safe.
func (s *contaPagarService) AlternarPago(ctx context.Context, id uuid.UUID) (*dto.ContaPagarResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrContaNaoEncontrada
	}
	c.Pago = !c.Pago
	if err := s.repo.SetPago(ctx, id, c.Pago); err != nil {
		return nil, err
	}
	return contaToResponse(c), nil
}

func (s *contaPagarService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrContaNaoEncontrada
	}
	return s.repo.Delete(ctx, id)
}

// ExcluirSerie removes every entry sharing the series id, paid or not, and
// returns how many rows went away.
func (s *contaPagarService) ExcluirSerie(ctx context.Context, serieID uuid.UUID) (int64, error) {
	removidas, err := s.repo.DeleteSerie(ctx, serieID)
	if err != nil {
		return 0, err
	}
	if removidas == 0 {
		return 0, ErrContaNaoEncontrada
	}
	log.Info().Int64("removidas", removidas).Str("serie_id", serieID.String()).Msg("serie de contas excluida")
	return removidas, nil
}

func contaToResponse(c *model.ContaPagar) *dto.ContaPagarResponse {
	var serieID *string
	if c.SerieID != nil {
		id := c.SerieID.String()
		serieID = &id
	}
	return &dto.ContaPagarResponse{
		ID:                 c.ID.String(),
		Nome:               c.Nome,
		Valor:              c.Valor,
		Vencimento:         c.Vencimento.Format("2006-01-02"),
		Pago:               c.Pago,
		Observacoes:        c.Observacoes,
		SerieID:            serieID,
		TotalParcelasSerie: c.TotalParcelasSerie,
		NumeroParcelaSerie: c.NumeroParcelaSerie,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
	}
}
