package service

import (
	"context"
	"errors"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"

	"github.com/google/uuid"
)

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type produtoService struct {
	repo repository.ProdutoRepository
}

func NewProdutoService(repo repository.ProdutoRepository) ProdutoService {
	return &produtoService{repo: repo}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		Categoria:     req.Categoria,
		ModeloPreco:   req.ModeloPreco,
		PrecoUnitario: req.PrecoUnitario,
		UnidadeMedida: req.UnidadeMedida,
		Ativo:         true,
	}
	if p.UnidadeMedida == "" {
		if p.ModeloPreco == model.ModeloPrecoM2 {
			p.UnidadeMedida = "m2"
		} else {
			p.UnidadeMedida = "unidade"
		}
	}
	if req.FornecedorID != nil {
		fid, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, errors.New("fornecedor_id invalido")
		}
		p.FornecedorID = &fid
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		data = append(data, *produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}
	if req.Nome != "" {
		p.Nome = req.Nome
	}
	if req.Descricao != nil {
		p.Descricao = req.Descricao
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.ModeloPreco != "" {
		p.ModeloPreco = req.ModeloPreco
	}
	if req.PrecoUnitario != nil {
		p.PrecoUnitario = *req.PrecoUnitario
	}
	if req.UnidadeMedida != nil {
		p.UnidadeMedida = *req.UnidadeMedida
	}
	if req.FornecedorID != nil {
		fid, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, errors.New("fornecedor_id invalido")
		}
		p.FornecedorID = &fid
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *produtoService) Reativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reativar(ctx, id)
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	var fornecedorID *string
	if p.FornecedorID != nil {
		id := p.FornecedorID.String()
		fornecedorID = &id
	}
	return &dto.ProdutoResponse{
		ID:            p.ID.String(),
		Nome:          p.Nome,
		Descricao:     p.Descricao,
		Categoria:     p.Categoria,
		ModeloPreco:   p.ModeloPreco,
		PrecoUnitario: p.PrecoUnitario,
		UnidadeMedida: p.UnidadeMedida,
		FornecedorID:  fornecedorID,
		Ativo:         p.Ativo,
	}
}
