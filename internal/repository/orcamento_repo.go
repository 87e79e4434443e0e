package repository

import (
	"context"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrcamentoRepository defines data access for quotes. Writes that touch the
// item list run inside a transaction opened by the service layer.
type OrcamentoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Orcamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Orcamento, error)
	List(ctx context.Context, filter dto.OrcamentoFilter) ([]model.Orcamento, int64, error)
	Update(ctx context.Context, tx *gorm.DB, o *model.Orcamento) error
	ReplaceItens(ctx context.Context, tx *gorm.DB, orcamentoID uuid.UUID, itens []model.OrcamentoItem) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextNumero(ctx context.Context, tx *gorm.DB) (int, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type orcamentoRepo struct{ db *gorm.DB }

func NewOrcamentoRepository(db *gorm.DB) OrcamentoRepository { return &orcamentoRepo{db: db} }

func (r *orcamentoRepo) DB() *gorm.DB { return r.db }

func (r *orcamentoRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Orcamento) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orcamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Orcamento, error) {
	var o model.Orcamento
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Preload("Cliente").
		Preload("Usuario").
		First(&o, id).Error
	return &o, err
}

func (r *orcamentoRepo) List(ctx context.Context, filter dto.OrcamentoFilter) ([]model.Orcamento, int64, error) {
	var orcamentos []model.Orcamento
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Orcamento{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Itens").Preload("Cliente").
		Order("numero DESC").Limit(filter.Limit).Offset(offset).Find(&orcamentos).Error
	return orcamentos, total, err
}

func (r *orcamentoRepo) Update(ctx context.Context, tx *gorm.DB, o *model.Orcamento) error {
	// Save without the Itens association — items are replaced explicitly.
	return tx.WithContext(ctx).Omit("Itens").Save(o).Error
}

func (r *orcamentoRepo) ReplaceItens(ctx context.Context, tx *gorm.DB, orcamentoID uuid.UUID, itens []model.OrcamentoItem) error {
	if err := tx.WithContext(ctx).Where("orcamento_id = ?", orcamentoID).Delete(&model.OrcamentoItem{}).Error; err != nil {
		return err
	}
	for i := range itens {
		itens[i].OrcamentoID = orcamentoID
	}
	if len(itens) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&itens).Error
}

func (r *orcamentoRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Orcamento{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orcamentoRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Orcamento{}).Where("id = ?", id).Update("pdf_path", path).Error
}

func (r *orcamentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Itens").Delete(&model.Orcamento{ID: id}).Error
}

func (r *orcamentoRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic quote numbering
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('orcamentos_numero_seq')").Scan(&num).Error
	return num, err
}
