package dto

import "github.com/shopspring/decimal"

type CriarProdutoRequest struct {
	Nome          string          `json:"nome"           validate:"required"`
	Descricao     *string         `json:"descricao"`
	Categoria     string          `json:"categoria"`
	ModeloPreco   string          `json:"modelo_preco"   validate:"required,oneof=unidade m2"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" validate:"required,gt=0"`
	UnidadeMedida string          `json:"unidade_medida"`
	FornecedorID  *string         `json:"fornecedor_id"  validate:"omitempty,uuid"`
}

type AtualizarProdutoRequest struct {
	Nome          string           `json:"nome"`
	Descricao     *string          `json:"descricao"`
	Categoria     *string          `json:"categoria"`
	ModeloPreco   string           `json:"modelo_preco"   validate:"omitempty,oneof=unidade m2"`
	PrecoUnitario *decimal.Decimal `json:"preco_unitario" validate:"omitempty,gt=0"`
	UnidadeMedida *string          `json:"unidade_medida"`
	FornecedorID  *string          `json:"fornecedor_id"  validate:"omitempty,uuid"`
}

// ProdutoFilter is bound from query string of GET /v1/produtos.
type ProdutoFilter struct {
	Nome         string `form:"nome"`
	Categoria    string `form:"categoria"`
	FornecedorID string `form:"fornecedor_id"`
	Ativo        string `form:"ativo"` // "false" = inativos, "all" = todos, default ativos
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProdutoResponse struct {
	ID            string          `json:"id"`
	Nome          string          `json:"nome"`
	Descricao     *string         `json:"descricao,omitempty"`
	Categoria     string          `json:"categoria"`
	ModeloPreco   string          `json:"modelo_preco"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	UnidadeMedida string          `json:"unidade_medida"`
	FornecedorID  *string         `json:"fornecedor_id,omitempty"`
	Ativo         bool            `json:"ativo"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
