package repository

import (
	"context"
	"time"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContaPagarRepository defines data access for accounts payable.
// CreateBatch inserts a whole installment series atomically.
type ContaPagarRepository interface {
	CreateBatch(ctx context.Context, contas []model.ContaPagar) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ContaPagar, error)
	List(ctx context.Context, filter dto.ContaPagarFilter) ([]model.ContaPagar, int64, error)
	ListVencidas(ctx context.Context, referencia time.Time) ([]model.ContaPagar, error)
	Update(ctx context.Context, c *model.ContaPagar) error
	SetPago(ctx context.Context, id uuid.UUID, pago bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteSerie(ctx context.Context, serieID uuid.UUID) (int64, error)
}

type contaPagarRepo struct{ db *gorm.DB }

func NewContaPagarRepository(db *gorm.DB) ContaPagarRepository { return &contaPagarRepo{db: db} }

func (r *contaPagarRepo) CreateBatch(ctx context.Context, contas []model.ContaPagar) error {
	return r.db.WithContext(ctx).Create(&contas).Error
}

func (r *contaPagarRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ContaPagar, error) {
	var c model.ContaPagar
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *contaPagarRepo) List(ctx context.Context, filter dto.ContaPagarFilter) ([]model.ContaPagar, int64, error) {
	var contas []model.ContaPagar
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ContaPagar{})
	if filter.Mes != "" {
		inicio, err := time.Parse("2006-01", filter.Mes)
		if err == nil {
			q = q.Where("vencimento >= ? AND vencimento < ?", inicio, inicio.AddDate(0, 1, 0))
		}
	}
	switch filter.Pago {
	case "true":
		q = q.Where("pago = true")
	case "false":
		q = q.Where("pago = false")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("vencimento ASC, created_at ASC").Limit(filter.Limit).Offset(offset).Find(&contas).Error
	return contas, total, err
}

// ListVencidas returns unpaid entries due strictly before the reference date.
func (r *contaPagarRepo) ListVencidas(ctx context.Context, referencia time.Time) ([]model.ContaPagar, error) {
	var contas []model.ContaPagar
	err := r.db.WithContext(ctx).
		Where("pago = false AND vencimento < ?", referencia).
		Order("vencimento ASC").Find(&contas).Error
	return contas, err
}

func (r *contaPagarRepo) Update(ctx context.Context, c *model.ContaPagar) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *contaPagarRepo) SetPago(ctx context.Context, id uuid.UUID, pago bool) error {
	return r.db.WithContext(ctx).Model(&model.ContaPagar{}).Where("id = ?", id).Update("pago", pago).Error
}

func (r *contaPagarRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ContaPagar{}, id).Error
}

func (r *contaPagarRepo) DeleteSerie(ctx context.Context, serieID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("serie_id = ?", serieID).Delete(&model.ContaPagar{})
	return res.RowsAffected, res.Error
}
