package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/runportcullis/portcullis-bot/internal/directory/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.UserRecord{}, &domain.OrganizationRecord{}))
	return db
}

func sampleUser() *domain.UserRecord {
	return &domain.UserRecord{
		ID:            "user_1",
		Email:         "ada@acme.io",
		DiscordUserID: "discord_1",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Domain:        "acme.io",
		Metadata:      datatypes.JSONMap{"source": "discord_bot"},
	}
}

func sampleOrg() *domain.OrganizationRecord {
	return &domain.OrganizationRecord{
		ID:        "org_1",
		Name:      "Acme Corp",
		Slug:      "acme-corp",
		CreatedBy: "user_1",
		APIKey:    "pk_acme-corp_secret",
		Domain:    "acme.io",
	}
}

func TestUpsertUserRequiresID(t *testing.T) {
	repo := Provide()
	err := repo.UpsertUser(context.Background(), newTestDB(t), &domain.UserRecord{ID: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpsertUserLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.UpsertUser(ctx, db, sampleUser()))

	updated := sampleUser()
	updated.Email = "ada.lovelace@acme.io"
	updated.OrganizationID = "org_1"
	require.NoError(t, repo.UpsertUser(ctx, db, updated))

	got, err := repo.FindUserByID(ctx, db, "user_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ada.lovelace@acme.io", got.Email)
	assert.Equal(t, "org_1", got.OrganizationID)

	var count int64
	require.NoError(t, db.Model(&domain.UserRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertOrganizationLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.UpsertOrganization(ctx, db, sampleOrg()))

	updated := sampleOrg()
	updated.Name = "Acme Corporation"
	updated.LogoURL = "https://img.logo.dev/acme.io?token=tok"
	require.NoError(t, repo.UpsertOrganization(ctx, db, updated))

	got, err := repo.FindOrganizationByID(ctx, db, "org_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme Corporation", got.Name)
	assert.Equal(t, "https://img.logo.dev/acme.io?token=tok", got.LogoURL)
}

func TestFindMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()

	user, err := repo.FindUserByID(context.Background(), db, "missing")
	require.NoError(t, err)
	assert.Nil(t, user)

	org, err := repo.FindOrganizationByID(context.Background(), db, "missing")
	require.NoError(t, err)
	assert.Nil(t, org)
}

func TestSetBillingCustomerID(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.UpsertOrganization(ctx, db, sampleOrg()))
	require.NoError(t, repo.SetBillingCustomerID(ctx, db, "org_1", "cus_1"))

	got, err := repo.FindOrganizationByID(ctx, db, "org_1")
	require.NoError(t, err)
	assert.Equal(t, "cus_1", got.BillingCustomerID)
}

func TestSetBillingCustomerIDMissingOrganization(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()

	err := repo.SetBillingCustomerID(context.Background(), db, "org_missing", "cus_1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.SetBillingCustomerID(context.Background(), db, "", "cus_1")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
