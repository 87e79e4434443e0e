package dto

import "github.com/shopspring/decimal"

// CriarContaPagarRequest creates either a single payable entry or, when
// Parcelado is set, a whole installment series. Vencimento is the due date
// of the single entry / first parcel.
type CriarContaPagarRequest struct {
	Nome        string          `json:"nome"       validate:"required"`
	Valor       decimal.Decimal `json:"valor"      validate:"required,gt=0"`
	Vencimento  string          `json:"vencimento" validate:"required,datetime=2006-01-02"`
	Pago        bool            `json:"pago"`
	Observacoes *string         `json:"observacoes"`

	Parcelado      bool   `json:"parcelado"`
	NumeroParcelas int    `json:"numero_parcelas" validate:"omitempty,min=1,max=60"`
	Cadencia       string `json:"cadencia"        validate:"omitempty,oneof=semanal mensal"`
}

type AtualizarContaPagarRequest struct {
	Nome        string           `json:"nome"`
	Valor       *decimal.Decimal `json:"valor"      validate:"omitempty,gt=0"`
	Vencimento  string           `json:"vencimento" validate:"omitempty,datetime=2006-01-02"`
	Observacoes *string          `json:"observacoes"`
}

// ContaPagarFilter is bound from query string of GET /v1/contas-pagar.
type ContaPagarFilter struct {
	Mes   string `form:"mes" validate:"omitempty,datetime=2006-01"` // empty = todos
	Pago  string `form:"pago"`                                     // "true" | "false" | empty
	Page  int    `form:"page,default=1"    validate:"min=1"`
	Limit int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type ContaPagarResponse struct {
	ID          string          `json:"id"`
	Nome        string          `json:"nome"`
	Valor       decimal.Decimal `json:"valor"`
	Vencimento  string          `json:"vencimento"`
	Pago        bool            `json:"pago"`
	Observacoes *string         `json:"observacoes,omitempty"`

	SerieID            *string `json:"serie_id,omitempty"`
	TotalParcelasSerie *int    `json:"total_parcelas_serie,omitempty"`
	NumeroParcelaSerie *int    `json:"numero_parcela_serie,omitempty"`

	CreatedAt string `json:"created_at"`
}

type ContaPagarListResponse struct {
	Data  []ContaPagarResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
