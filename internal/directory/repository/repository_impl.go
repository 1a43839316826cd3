package repository

import (
	"context"
	"strings"
	"time"

	"github.com/runportcullis/portcullis-bot/internal/directory/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) UpsertUser(ctx context.Context, db *gorm.DB, user *domain.UserRecord) error {
	if strings.TrimSpace(user.ID) == "" {
		return domain.ErrInvalidID
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(user).Error
}

func (r *repo) UpsertOrganization(ctx context.Context, db *gorm.DB, org *domain.OrganizationRecord) error {
	if strings.TrimSpace(org.ID) == "" {
		return domain.ErrInvalidID
	}
	now := time.Now().UTC()
	if org.CreatedAt.IsZero() {
		org.CreatedAt = now
	}
	org.UpdatedAt = now
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(org).Error
}

func (r *repo) FindUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.UserRecord, error) {
	var user domain.UserRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindOrganizationByID(ctx context.Context, db *gorm.DB, id string) (*domain.OrganizationRecord, error) {
	var org domain.OrganizationRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *repo) SetBillingCustomerID(ctx context.Context, db *gorm.DB, orgID, customerID string) error {
	if strings.TrimSpace(orgID) == "" {
		return domain.ErrInvalidID
	}
	res := db.WithContext(ctx).
		Model(&domain.OrganizationRecord{}).
		Where("id = ?", orgID).
		Updates(map[string]any{
			"billing_customer_id": customerID,
			"updated_at":          time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
