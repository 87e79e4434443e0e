package service

import (
	"context"
	"errors"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/infra"
)

var ErrSugestaoIndisponivel = errors.New("servico de sugestao indisponivel")

// SugestaoService drafts customer-facing quote text through the external
// sidecar, guarded by a circuit breaker so sidecar outages fail fast
// instead of tying up request handlers.
type SugestaoService interface {
	SugerirTexto(ctx context.Context, req dto.SugestaoTextoRequest) (*dto.SugestaoTextoResponse, error)
	EstadoCircuito() string
}

type sugestaoService struct {
	client *infra.SugestaoClient
	cb     *infra.CircuitBreaker
}

func NewSugestaoService(client *infra.SugestaoClient, cb *infra.CircuitBreaker) SugestaoService {
	return &sugestaoService{client: client, cb: cb}
}

func (s *sugestaoService) SugerirTexto(ctx context.Context, req dto.SugestaoTextoRequest) (*dto.SugestaoTextoResponse, error) {
	var result *infra.SugestaoResponse
	err := s.cb.Execute(func() error {
		var callErr error
		result, callErr = s.client.Sugerir(ctx, infra.SugestaoPayload{
			Tipo:     "observacao",
			Contexto: req.Contexto,
		})
		return callErr
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		return nil, ErrSugestaoIndisponivel
	}
	if err != nil {
		return nil, err
	}
	return &dto.SugestaoTextoResponse{Texto: result.Texto}, nil
}

func (s *sugestaoService) EstadoCircuito() string {
	return s.cb.State().String()
}
