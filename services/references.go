package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"employee-records-api/models"
)

var errUnknownReference = errors.New("unknown reference")

// referenceCache resolves work and bank rows once per request.
type referenceCache struct {
	db    *gorm.DB
	works map[uint]*models.Work
	banks map[uint]*models.Bank
}

func newReferenceCache(db *gorm.DB) *referenceCache {
	return &referenceCache{
		db:    db,
		works: map[uint]*models.Work{},
		banks: map[uint]*models.Bank{},
	}
}

func (r *referenceCache) Work(id uint) (*models.Work, error) {
	if work, ok := r.works[id]; ok {
		if work == nil {
			return nil, fmt.Errorf("%w: work_id %d", errUnknownReference, id)
		}
		return work, nil
	}

	var work models.Work
	err := r.db.First(&work, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.works[id] = nil
		return nil, fmt.Errorf("%w: work_id %d", errUnknownReference, id)
	}
	if err != nil {
		return nil, err
	}
	r.works[id] = &work
	return &work, nil
}

func (r *referenceCache) Bank(id uint) (*models.Bank, error) {
	if bank, ok := r.banks[id]; ok {
		if bank == nil {
			return nil, fmt.Errorf("%w: bank_id %d", errUnknownReference, id)
		}
		return bank, nil
	}

	var bank models.Bank
	err := r.db.First(&bank, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.banks[id] = nil
		return nil, fmt.Errorf("%w: bank_id %d", errUnknownReference, id)
	}
	if err != nil {
		return nil, err
	}
	r.banks[id] = &bank
	return &bank, nil
}

// checkReferences attaches the lookup rows of a payload that is about to be
// stored. A missing row is a validation error.
func checkReferences[P models.Payload](tx *gorm.DB, p *P) error {
	ref, ok := any(p).(models.Referencing)
	if !ok {
		return nil
	}
	err := ref.ResolveReferences(newReferenceCache(tx))
	if errors.Is(err, errUnknownReference) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return err
}

// attachReferences fills lookup rows for display. Rows removed since the
// record was stored are left out.
func attachReferences[P models.Payload](cache *referenceCache, p *P) error {
	ref, ok := any(p).(models.Referencing)
	if !ok {
		return nil
	}
	if err := ref.ResolveReferences(cache); err != nil && !errors.Is(err, errUnknownReference) {
		return err
	}
	return nil
}
