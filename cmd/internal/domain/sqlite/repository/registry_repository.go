package repository

import (
	"errors"
	"hotelrp/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultRegistryRepository stores registry lookups, including negative results.
type DefaultRegistryRepository struct {
	db *gorm.DB
}

func NewRegistryRepository(db *gorm.DB) *DefaultRegistryRepository {
	return &DefaultRegistryRepository{db: db}
}

func (r *DefaultRegistryRepository) FindByCNPJ(cnpj string) (*entity.RegistryRecord, error) {
	var record entity.RegistryRecord
	err := r.db.
		Where("cnpj = ?", cnpj).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *DefaultRegistryRepository) Save(record *entity.RegistryRecord) error {
	return r.db.Save(record).Error
}

func (r *DefaultRegistryRepository) DeleteExpired(before int64) error {
	return r.db.
		Where("cached_at < ?", before).
		Delete(&entity.RegistryRecord{}).Error
}
