package service

import (
	"context"
	"errors"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"
)

var ErrEmpresaNaoConfigurada = errors.New("perfil da empresa ainda nao configurado")

// EmpresaService manages the single-row company profile.
type EmpresaService interface {
	Obter(ctx context.Context) (*dto.EmpresaResponse, error)
	Atualizar(ctx context.Context, req dto.AtualizarEmpresaRequest) (*dto.EmpresaResponse, error)
}

type empresaService struct {
	repo repository.EmpresaRepository
}

func NewEmpresaService(repo repository.EmpresaRepository) EmpresaService {
	return &empresaService{repo: repo}
}

func (s *empresaService) Obter(ctx context.Context) (*dto.EmpresaResponse, error) {
	e, err := s.repo.Get(ctx)
	if err != nil {
		return nil, ErrEmpresaNaoConfigurada
	}
	return empresaToResponse(e), nil
}

func (s *empresaService) Atualizar(ctx context.Context, req dto.AtualizarEmpresaRequest) (*dto.EmpresaResponse, error) {
	e, err := s.repo.Get(ctx)
	if err != nil {
		e = &model.Empresa{}
	}
	e.Nome = req.Nome
	e.CNPJ = req.CNPJ
	e.Endereco = req.Endereco
	e.Telefone = req.Telefone
	e.Email = req.Email
	e.Site = req.Site
	e.LogotipoPath = req.LogotipoPath
	if err := s.repo.Upsert(ctx, e); err != nil {
		return nil, err
	}
	return empresaToResponse(e), nil
}

func empresaToResponse(e *model.Empresa) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		ID:           e.ID.String(),
		Nome:         e.Nome,
		CNPJ:         e.CNPJ,
		Endereco:     e.Endereco,
		Telefone:     e.Telefone,
		Email:        e.Email,
		Site:         e.Site,
		LogotipoPath: e.LogotipoPath,
	}
}
