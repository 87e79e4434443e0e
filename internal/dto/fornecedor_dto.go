package dto

type CriarFornecedorRequest struct {
	RazaoSocial       string  `json:"razao_social" validate:"required"`
	CNPJ              *string `json:"cnpj"`
	Telefone          *string `json:"telefone"`
	Email             *string `json:"email"        validate:"omitempty,email"`
	Endereco          *string `json:"endereco"`
	CondicaoPagamento *string `json:"condicao_pagamento"`
}

type AtualizarFornecedorRequest struct {
	RazaoSocial       string  `json:"razao_social"`
	CNPJ              *string `json:"cnpj"`
	Telefone          *string `json:"telefone"`
	Email             *string `json:"email"        validate:"omitempty,email"`
	Endereco          *string `json:"endereco"`
	CondicaoPagamento *string `json:"condicao_pagamento"`
}

type FornecedorFilter struct {
	Nome  string `form:"nome"`
	Ativo string `form:"ativo"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type FornecedorResponse struct {
	ID                string  `json:"id"`
	RazaoSocial       string  `json:"razao_social"`
	CNPJ              *string `json:"cnpj,omitempty"`
	Telefone          *string `json:"telefone,omitempty"`
	Email             *string `json:"email,omitempty"`
	Endereco          *string `json:"endereco,omitempty"`
	CondicaoPagamento *string `json:"condicao_pagamento,omitempty"`
	Ativo             bool    `json:"ativo"`
}

type FornecedorListResponse struct {
	Data  []FornecedorResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
