package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente holds customer contact and billing data used by quotes and PDFs.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"index;not null"`
	Documento *string   `gorm:"index"` // CPF ou CNPJ
	Telefone  *string
	Email     *string
	Endereco  *string
	Cidade    *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
