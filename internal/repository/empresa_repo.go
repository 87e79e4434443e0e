package repository

import (
	"context"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"

	"gorm.io/gorm"
)

// EmpresaRepository reads and writes the single company profile row.
type EmpresaRepository interface {
	Get(ctx context.Context) (*model.Empresa, error)
	Upsert(ctx context.Context, e *model.Empresa) error
}

type empresaRepo struct{ db *gorm.DB }

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository { return &empresaRepo{db: db} }

func (r *empresaRepo) Get(ctx context.Context) (*model.Empresa, error) {
	var e model.Empresa
	err := r.db.WithContext(ctx).First(&e).Error
	return &e, err
}

func (r *empresaRepo) Upsert(ctx context.Context, e *model.Empresa) error {
	var existing model.Empresa
	err := r.db.WithContext(ctx).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(e).Error
	}
	if err != nil {
		return err
	}
	e.ID = existing.ID
	return r.db.WithContext(ctx).Save(e).Error
}
