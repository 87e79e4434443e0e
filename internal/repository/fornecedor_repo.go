package repository

import (
	"context"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FornecedorRepository interface {
	Create(ctx context.Context, f *model.Fornecedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error)
	List(ctx context.Context, filter dto.FornecedorFilter) ([]model.Fornecedor, int64, error)
	Update(ctx context.Context, f *model.Fornecedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type fornecedorRepo struct{ db *gorm.DB }

func NewFornecedorRepository(db *gorm.DB) FornecedorRepository { return &fornecedorRepo{db: db} }

func (r *fornecedorRepo) Create(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fornecedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error) {
	var f model.Fornecedor
	err := r.db.WithContext(ctx).Preload("Produtos").First(&f, id).Error
	return &f, err
}

func (r *fornecedorRepo) List(ctx context.Context, filter dto.FornecedorFilter) ([]model.Fornecedor, int64, error) {
	var fornecedores []model.Fornecedor
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Fornecedor{})
	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
	default:
		q = q.Where("ativo = true")
	}
	if filter.Nome != "" {
		q = q.Where("razao_social ILIKE ?", "%"+filter.Nome+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("razao_social ASC").Limit(filter.Limit).Offset(offset).Find(&fornecedores).Error
	return fornecedores, total, err
}

func (r *fornecedorRepo) Update(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fornecedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Fornecedor{}).Where("id = ?", id).Update("ativo", false).Error
}
