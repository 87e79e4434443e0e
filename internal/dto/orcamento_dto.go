package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemOrcamentoRequest adds one line to a quote. For "m2" products the
// dimension trio is required and the quantity is derived server-side;
// for "unidade" products the caller sends the quantity directly.
type ItemOrcamentoRequest struct {
	ProdutoID  string           `json:"produto_id" validate:"required,uuid"`
	Quantidade *decimal.Decimal `json:"quantidade" validate:"omitempty,gt=0"`
	Largura    *decimal.Decimal `json:"largura"    validate:"omitempty,gt=0"`
	Altura     *decimal.Decimal `json:"altura"     validate:"omitempty,gt=0"`
	Pecas      *int             `json:"pecas"      validate:"omitempty,min=1"`
}

type CriarOrcamentoRequest struct {
	ClienteID      *string                `json:"cliente_id"      validate:"omitempty,uuid"`
	Itens          []ItemOrcamentoRequest `json:"itens"           validate:"required,min=1,dive"`
	DescontoTipo   string                 `json:"desconto_tipo"   validate:"omitempty,oneof=nenhum percentual fixo"`
	DescontoValor  decimal.Decimal        `json:"desconto_valor"  validate:"min=0"`
	FormaPagamento string                 `json:"forma_pagamento"`
	SinalAplicado  decimal.Decimal        `json:"sinal_aplicado"  validate:"min=0"`
	Observacoes    *string                `json:"observacoes"`
}

// AtualizarOrcamentoRequest replaces the quote content wholesale — items are
// immutable once added, so edits arrive as the full new list.
type AtualizarOrcamentoRequest = CriarOrcamentoRequest

type AtualizarStatusOrcamentoRequest struct {
	Status string `json:"status" validate:"required,oneof=rascunho enviado aprovado recusado"`
}

// PreviewTotaisRequest computes totals without persisting anything; the
// quote editor calls it on every change.
type PreviewTotaisRequest struct {
	Itens          []ItemOrcamentoRequest `json:"itens"           validate:"required,dive"`
	DescontoTipo   string                 `json:"desconto_tipo"   validate:"omitempty,oneof=nenhum percentual fixo"`
	DescontoValor  decimal.Decimal        `json:"desconto_valor"  validate:"min=0"`
	FormaPagamento string                 `json:"forma_pagamento"`
	SinalAplicado  decimal.Decimal        `json:"sinal_aplicado"  validate:"min=0"`
}

// ExportarPDFRequest triggers the async PDF export; when Email is present
// the document is also mailed to the customer.
type ExportarPDFRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
}

type SugestaoTextoRequest struct {
	Contexto string `json:"contexto" validate:"required,min=3"`
}

type SugestaoTextoResponse struct {
	Texto string `json:"texto"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemOrcamentoResponse struct {
	ProdutoID     *string          `json:"produto_id,omitempty"`
	ProdutoNome   string           `json:"produto_nome"`
	ModeloPreco   string           `json:"modelo_preco"`
	Quantidade    decimal.Decimal  `json:"quantidade"`
	PrecoUnitario decimal.Decimal  `json:"preco_unitario"`
	PrecoTotal    decimal.Decimal  `json:"preco_total"`
	Largura       *decimal.Decimal `json:"largura,omitempty"`
	Altura        *decimal.Decimal `json:"altura,omitempty"`
	Pecas         *int             `json:"pecas,omitempty"`
}

// TotaisResponse carries the derived amounts plus the payment-dependent
// fields the editor renders live.
type TotaisResponse struct {
	Subtotal            decimal.Decimal `json:"subtotal"`
	ValorDesconto       decimal.Decimal `json:"valor_desconto"`
	SubtotalComDesconto decimal.Decimal `json:"subtotal_com_desconto"`
	TotalVista          decimal.Decimal `json:"total_vista"`
	TotalCartao         decimal.Decimal `json:"total_cartao"`
	ValorDevido         decimal.Decimal `json:"valor_devido"`
	Sobrepago           bool            `json:"sobrepago"`
	TextoParcelamento   string          `json:"texto_parcelamento"`
}

type OrcamentoResponse struct {
	ID             string                  `json:"id"`
	Numero         int                     `json:"numero"`
	Status         string                  `json:"status"`
	ClienteID      *string                 `json:"cliente_id,omitempty"`
	ClienteNome    string                  `json:"cliente_nome,omitempty"`
	Itens          []ItemOrcamentoResponse `json:"itens"`
	DescontoTipo   string                  `json:"desconto_tipo"`
	DescontoValor  decimal.Decimal         `json:"desconto_valor"`
	FormaPagamento string                  `json:"forma_pagamento"`
	SinalAplicado  decimal.Decimal         `json:"sinal_aplicado"`
	Totais         TotaisResponse          `json:"totais"`
	Observacoes    *string                 `json:"observacoes,omitempty"`
	CreatedAt      string                  `json:"created_at"`
}

// OrcamentoFilter is bound from query string of GET /v1/orcamentos.
type OrcamentoFilter struct {
	Status    string `form:"status"` // rascunho | enviado | aprovado | recusado | all
	ClienteID string `form:"cliente_id"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type OrcamentoListResponse struct {
	Data  []OrcamentoResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
