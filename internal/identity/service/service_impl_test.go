package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	directorydomain "github.com/runportcullis/portcullis-bot/internal/directory/domain"
	directoryrepo "github.com/runportcullis/portcullis-bot/internal/directory/repository"
	"github.com/runportcullis/portcullis-bot/internal/identity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// -- Fakes --

type clientFake struct {
	createUserCalls int
	createOrgCalls  int
	logoUploads     int

	createUserErr error
	createOrgErr  error
	logoErr       error

	lastOrgAPIKey string
	lastOrgSlug   string
	lastLogo      []byte
}

func (f *clientFake) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	f.createUserCalls++
	if f.createUserErr != nil {
		return nil, f.createUserErr
	}
	return &domain.User{
		ID:        "user_1",
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Domain:    req.Domain,
		Source:    "discord_bot",
	}, nil
}

func (f *clientFake) CreateOrganization(ctx context.Context, name, slug, createdBy, apiKey string) (*domain.Organization, error) {
	f.createOrgCalls++
	f.lastOrgSlug = slug
	f.lastOrgAPIKey = apiKey
	if f.createOrgErr != nil {
		return nil, f.createOrgErr
	}
	return &domain.Organization{
		ID:        "org_1",
		Name:      name,
		Slug:      slug,
		CreatedBy: createdBy,
		APIKey:    apiKey,
	}, nil
}

func (f *clientFake) UpdateOrganizationLogo(ctx context.Context, orgID string, image []byte) error {
	f.logoUploads++
	f.lastLogo = image
	return f.logoErr
}

type logoFake struct {
	calls int
	err   error
}

func (f *logoFake) Fetch(ctx context.Context, domainName string) ([]byte, string, error) {
	f.calls++
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("png-bytes"), "https://img.logo.dev/" + domainName + "?token=tok", nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&directorydomain.UserRecord{}, &directorydomain.OrganizationRecord{}))
	return db
}

type identityFixture struct {
	db     *gorm.DB
	client *clientFake
	logos  *logoFake
	svc    domain.Service
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()
	f := &identityFixture{
		db:     newTestDB(t),
		client: &clientFake{},
		logos:  &logoFake{},
	}
	f.svc = New(Params{
		DB:        f.db,
		Log:       zap.NewNop(),
		Client:    f.client,
		Logos:     f.logos,
		Directory: directoryrepo.Provide(),
	})
	return f
}

// -- Tests --

func TestProvisionUserValidates(t *testing.T) {
	f := newIdentityFixture(t)

	_, err := f.svc.ProvisionUser(context.Background(), domain.CreateUserRequest{
		Email: "not-an-email", FirstName: "Ada", LastName: "Lovelace",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = f.svc.ProvisionUser(context.Background(), domain.CreateUserRequest{
		Email: "ada@acme.io", FirstName: " ", LastName: "Lovelace",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	assert.Zero(t, f.client.createUserCalls)
}

func TestProvisionOrganizationDerivesSlugAndKey(t *testing.T) {
	f := newIdentityFixture(t)

	org, err := f.svc.ProvisionOrganization(context.Background(), "Acme Corp", "user_1", "acme.io")
	require.NoError(t, err)

	assert.Equal(t, "acme-corp", f.client.lastOrgSlug)
	assert.True(t, strings.HasPrefix(f.client.lastOrgAPIKey, "pk_acme-corp_"))
	assert.Equal(t, "acme.io", org.Domain)
	assert.Equal(t, "https://img.logo.dev/acme.io?token=tok", org.LogoURL)
	assert.Equal(t, []byte("png-bytes"), f.client.lastLogo)
	assert.Equal(t, 1, f.client.logoUploads)
}

func TestProvisionOrganizationLogoFetchFailureAbortsCreate(t *testing.T) {
	f := newIdentityFixture(t)
	f.logos.err = errors.New("logo service down")

	_, err := f.svc.ProvisionOrganization(context.Background(), "Acme Corp", "user_1", "acme.io")
	require.Error(t, err)
	assert.Zero(t, f.client.createOrgCalls)
}

func TestCreateUserWithoutOrganization(t *testing.T) {
	f := newIdentityFixture(t)

	result, err := f.svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Email:         "ada@acme.io",
		DiscordUserID: "discord_1",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Domain:        "acme.io",
	})
	require.NoError(t, err)
	assert.Nil(t, result.Organization)
	assert.Zero(t, f.client.createOrgCalls)

	var user directorydomain.UserRecord
	require.NoError(t, f.db.First(&user, "id = ?", "user_1").Error)
	assert.Equal(t, "discord_1", user.DiscordUserID)
	assert.Empty(t, user.OrganizationID)
}

func TestCreateUserWithOrganizationPersistsBoth(t *testing.T) {
	f := newIdentityFixture(t)

	result, err := f.svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Email:            "ada@acme.io",
		DiscordUserID:    "discord_1",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Domain:           "acme.io",
		OrganizationName: "Acme Corp",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Organization)

	var org directorydomain.OrganizationRecord
	require.NoError(t, f.db.First(&org, "id = ?", "org_1").Error)
	assert.Equal(t, "Acme Corp", org.Name)
	assert.Equal(t, "acme-corp", org.Slug)
	assert.Equal(t, result.Organization.APIKey, org.APIKey)

	var user directorydomain.UserRecord
	require.NoError(t, f.db.First(&user, "id = ?", "user_1").Error)
	assert.Equal(t, "org_1", user.OrganizationID)
}

func TestCreateUserPlatformFailureWritesNothing(t *testing.T) {
	f := newIdentityFixture(t)
	f.client.createOrgErr = errors.New("identity platform down")

	_, err := f.svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Email:            "ada@acme.io",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Domain:           "acme.io",
		OrganizationName: "Acme Corp",
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, f.db.Model(&directorydomain.UserRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPersistDirectoryIsIdempotent(t *testing.T) {
	f := newIdentityFixture(t)

	user := &domain.User{ID: "user_1", Email: "ada@acme.io", FirstName: "Ada", LastName: "Lovelace", Domain: "acme.io", Source: "discord_bot"}
	org := &domain.Organization{ID: "org_1", Name: "Acme Corp", Slug: "acme-corp", CreatedBy: "user_1", APIKey: "pk_acme-corp_x", Domain: "acme.io"}

	require.NoError(t, f.svc.PersistDirectory(context.Background(), user, "discord_1", org))

	user.Email = "ada.lovelace@acme.io"
	require.NoError(t, f.svc.PersistDirectory(context.Background(), user, "discord_1", org))

	var count int64
	require.NoError(t, f.db.Model(&directorydomain.UserRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var record directorydomain.UserRecord
	require.NoError(t, f.db.First(&record, "id = ?", "user_1").Error)
	assert.Equal(t, "ada.lovelace@acme.io", record.Email)
}
