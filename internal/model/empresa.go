package model

import (
	"time"

	"github.com/google/uuid"
)

// Empresa is the single-row company profile embedded verbatim in every
// exported quote PDF (header, contact block, logo).
type Empresa struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome         string    `gorm:"not null"`
	CNPJ         *string   `gorm:"column:cnpj"`
	Endereco     *string
	Telefone     *string
	Email        *string
	Site         *string
	LogotipoPath *string
	UpdatedAt    time.Time
}

func (Empresa) TableName() string { return "empresa" }
