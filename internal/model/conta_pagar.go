package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContaPagar is one accounts-payable entry. Entries created from a parceled
// debt share a SerieID; each row remains independently editable and the only
// lifecycle mutation is the Pago toggle (symmetric, no side effects).
type ContaPagar struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome       string          `gorm:"not null"`
	Valor      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Vencimento time.Time       `gorm:"index;not null"`
	Pago       bool            `gorm:"not null;default:false"`
	Observacoes *string

	// Series metadata, nil for unparceled entries.
	SerieID            *uuid.UUID `gorm:"type:uuid;index"`
	TotalParcelasSerie *int
	NumeroParcelaSerie *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ContaPagar) TableName() string { return "contas_pagar" }
