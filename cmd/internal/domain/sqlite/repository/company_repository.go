package repository

import (
	"context"
	"errors"
	"hotelrp/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultCompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *DefaultCompanyRepository {
	return &DefaultCompanyRepository{db: db}
}

// Load returns every company ordered by id, one consistent read.
func (r *DefaultCompanyRepository) Load(ctx context.Context) ([]*entity.Company, error) {
	var companies []*entity.Company
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// Save replaces the whole collection with companies.
func (r *DefaultCompanyRepository) Save(ctx context.Context, companies []*entity.Company) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&entity.Company{}).Error
		if err != nil {
			return err
		}

		if len(companies) == 0 {
			return nil
		}
		return tx.CreateInBatches(companies, 100).Error
	})
}

func (r *DefaultCompanyRepository) FindByID(ctx context.Context, id int64) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByCNPJ looks a company up by its digits-only CNPJ.
func (r *DefaultCompanyRepository) FindByCNPJ(ctx context.Context, digits string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).
		Where("cnpj_digits = ?", digits).
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *DefaultCompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *DefaultCompanyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete reports whether a row was removed.
func (r *DefaultCompanyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Company{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
