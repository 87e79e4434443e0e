package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote lifecycle. A quote starts as rascunho, is sent to the customer and
// then approved or refused. Approval is what feeds contas a pagar / PDF.
const (
	OrcamentoRascunho = "rascunho"
	OrcamentoEnviado  = "enviado"
	OrcamentoAprovado = "aprovado"
	OrcamentoRecusado = "recusado"
)

// Discount types stored on a quote.
const (
	DescontoNenhum     = "nenhum"
	DescontoPercentual = "percentual"
	DescontoFixo       = "fixo"
)

// Orcamento is a quote. The five derived totals are recomputed together by
// the pricing engine on every write; they are never edited field by field.
type Orcamento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    int       `gorm:"uniqueIndex;not null"`
	ClienteID *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID uuid.UUID  `gorm:"type:uuid;not null"`
	Status    string     `gorm:"type:varchar(20);not null;default:'rascunho'"`

	DescontoTipo  string          `gorm:"type:varchar(10);not null;default:'nenhum'"`
	DescontoValor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// FormaPagamento keeps the free text shown on the printed quote
	// ("Cartão de Crédito 6x"); the pricing engine parses it once into a
	// structured value.
	FormaPagamento string          `gorm:"not null;default:''"`
	SinalAplicado  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Subtotal            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorDesconto       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SubtotalComDesconto decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalVista          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCartao         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Observacoes *string
	PDFPath     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cliente *Cliente        `gorm:"foreignKey:ClienteID"`
	Usuario *Usuario        `gorm:"foreignKey:UsuarioID"`
	Itens   []OrcamentoItem `gorm:"foreignKey:OrcamentoID;constraint:OnDelete:CASCADE"`
}

func (Orcamento) TableName() string { return "orcamentos" }

// OrcamentoItem is an immutable line of a quote. Items are never edited in
// place — the editor removes and re-adds. For ModeloPreco "m2" the quantity
// is Largura * Altura * Pecas, recomputed server-side on every write;
// PrecoTotal is always Quantidade * PrecoUnitario.
type OrcamentoItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrcamentoID uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProdutoID   *uuid.UUID `gorm:"type:uuid"`
	ProdutoNome string     `gorm:"not null"`
	ModeloPreco string     `gorm:"type:varchar(10);not null;default:'unidade'"`

	Quantidade    decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecoTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Dimension inputs, only meaningful for "m2" items.
	Largura *decimal.Decimal `gorm:"type:decimal(8,3)"`
	Altura  *decimal.Decimal `gorm:"type:decimal(8,3)"`
	Pecas   *int
}

func (OrcamentoItem) TableName() string { return "orcamento_itens" }
