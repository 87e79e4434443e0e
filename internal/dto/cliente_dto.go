package dto

type CriarClienteRequest struct {
	Nome      string  `json:"nome"      validate:"required"`
	Documento *string `json:"documento"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Endereco  *string `json:"endereco"`
	Cidade    *string `json:"cidade"`
}

type AtualizarClienteRequest struct {
	Nome      string  `json:"nome"`
	Documento *string `json:"documento"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Endereco  *string `json:"endereco"`
	Cidade    *string `json:"cidade"`
}

type ClienteFilter struct {
	Nome  string `form:"nome"`
	Ativo string `form:"ativo"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Documento *string `json:"documento,omitempty"`
	Telefone  *string `json:"telefone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Endereco  *string `json:"endereco,omitempty"`
	Cidade    *string `json:"cidade,omitempty"`
	Ativo     bool    `json:"ativo"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
