package service

import (
	"context"
	"errors"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"

	"github.com/google/uuid"
)

type FornecedorService interface {
	Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error)
	Listar(ctx context.Context, filter dto.FornecedorFilter) (*dto.FornecedorListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFornecedorRequest) (*dto.FornecedorResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type fornecedorService struct {
	repo        repository.FornecedorRepository
	produtoRepo repository.ProdutoRepository
}

func NewFornecedorService(repo repository.FornecedorRepository, produtoRepo repository.ProdutoRepository) FornecedorService {
	return &fornecedorService{repo: repo, produtoRepo: produtoRepo}
}

func (s *fornecedorService) Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f := &model.Fornecedor{
		RazaoSocial:       req.RazaoSocial,
		CNPJ:              req.CNPJ,
		Telefone:          req.Telefone,
		Email:             req.Email,
		Endereco:          req.Endereco,
		CondicaoPagamento: req.CondicaoPagamento,
		Ativo:             true,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fornecedor nao encontrado")
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Listar(ctx context.Context, filter dto.FornecedorFilter) (*dto.FornecedorListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	fornecedores, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.FornecedorResponse, 0, len(fornecedores))
	for i := range fornecedores {
		data = append(data, *fornecedorToResponse(&fornecedores[i]))
	}
	return &dto.FornecedorListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *fornecedorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fornecedor nao encontrado")
	}
	if req.RazaoSocial != "" {
		f.RazaoSocial = req.RazaoSocial
	}
	if req.CNPJ != nil {
		f.CNPJ = req.CNPJ
	}
	if req.Telefone != nil {
		f.Telefone = req.Telefone
	}
	if req.Email != nil {
		f.Email = req.Email
	}
	if req.Endereco != nil {
		f.Endereco = req.Endereco
	}
	if req.CondicaoPagamento != nil {
		f.CondicaoPagamento = req.CondicaoPagamento
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

// Desativar refuses to deactivate a supplier that still has active products
// linked to it, so the catalog never points at a dead supplier.
func (s *fornecedorService) Desativar(ctx context.Context, id uuid.UUID) error {
	produtos, err := s.produtoRepo.FindByFornecedorID(ctx, id)
	if err == nil && len(produtos) > 0 {
		return errors.New("fornecedor possui produtos ativos vinculados")
	}
	return s.repo.SoftDelete(ctx, id)
}

func fornecedorToResponse(f *model.Fornecedor) *dto.FornecedorResponse {
	return &dto.FornecedorResponse{
		ID:                f.ID.String(),
		RazaoSocial:       f.RazaoSocial,
		CNPJ:              f.CNPJ,
		Telefone:          f.Telefone,
		Email:             f.Email,
		Endereco:          f.Endereco,
		CondicaoPagamento: f.CondicaoPagamento,
		Ativo:             f.Ativo,
	}
}
