package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing models supported by the catalog. Products sold by area (banners,
// adesivos) carry "m2"; the quote editor derives the quantity from the
// dimensions of each item.
const (
	ModeloPrecoUnidade = "unidade"
	ModeloPrecoM2      = "m2"
)

// Produto is a catalog entry. Quotes snapshot the name and price at the
// moment the item is added, so later catalog edits never rewrite history.
type Produto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome          string    `gorm:"index;not null"`
	Descricao     *string
	Categoria     string          `gorm:"not null;default:''"`
	ModeloPreco   string          `gorm:"type:varchar(10);not null;default:'unidade'"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnidadeMedida string          `gorm:"not null;default:'unidade'"`
	FornecedorID  *uuid.UUID      `gorm:"type:uuid;index"`
	Ativo         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

func (Produto) TableName() string { return "produtos" }
