package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	directorydomain "github.com/runportcullis/portcullis-bot/internal/directory/domain"
	"github.com/runportcullis/portcullis-bot/internal/identity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Client    domain.Client
	Logos     domain.LogoFetcher
	Directory directorydomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	client    domain.Client
	logos     domain.LogoFetcher
	directory directorydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("identity.service"),
		client:    p.Client,
		logos:     p.Logos,
		directory: p.Directory,
	}
}

// CreateUser is the full provisioning operation behind the create-user
// command. Platform creates are never rolled back: a directory failure after
// a platform create surfaces a hard error and the platform record stays in
// place for manual reconciliation.
func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.CreateUserResult, error) {
	user, err := s.ProvisionUser(ctx, req)
	if err != nil {
		return nil, err
	}

	var org *domain.Organization
	if orgName := strings.TrimSpace(req.OrganizationName); orgName != "" {
		org, err = s.ProvisionOrganization(ctx, orgName, user.ID, req.Domain)
		if err != nil {
			return nil, err
		}
	}

	if err := s.PersistDirectory(ctx, user, req.DiscordUserID, org); err != nil {
		return nil, err
	}

	return &domain.CreateUserResult{User: user, Organization: org}, nil
}

func (s *Service) ProvisionUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, domain.ErrInvalidName
	}

	user, err := s.client.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info("identity user created",
		zap.String("user_id", user.ID),
		zap.String("domain", req.Domain),
	)
	return user, nil
}

// ProvisionOrganization derives the API key and fetches the logo before the
// platform create so that a failure in either aborts the whole operation and
// no organization exists without them.
func (s *Service) ProvisionOrganization(ctx context.Context, name, createdBy, domainName string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	orgSlug := slug.Make(name)

	apiKey, err := generateAPIKey(orgSlug)
	if err != nil {
		return nil, err
	}

	logo, logoURL, err := s.logos.Fetch(ctx, domainName)
	if err != nil {
		return nil, fmt.Errorf("fetch logo for %s: %w", domainName, err)
	}

	org, err := s.client.CreateOrganization(ctx, name, orgSlug, createdBy, apiKey)
	if err != nil {
		return nil, err
	}
	org.LogoURL = logoURL
	org.Domain = domainName

	if err := s.client.UpdateOrganizationLogo(ctx, org.ID, logo); err != nil {
		return nil, fmt.Errorf("upload logo for organization %s: %w", org.ID, err)
	}

	s.log.Info("identity organization created",
		zap.String("org_id", org.ID),
		zap.String("slug", org.Slug),
	)
	return org, nil
}

// PersistDirectory upserts the organization row first, then the user row.
// Each upsert is independently idempotent; nothing links them transactionally.
func (s *Service) PersistDirectory(ctx context.Context, user *domain.User, discordUserID string, org *domain.Organization) error {
	orgID := ""
	if org != nil {
		orgID = org.ID
		record := &directorydomain.OrganizationRecord{
			ID:        org.ID,
			Name:      org.Name,
			Slug:      org.Slug,
			CreatedBy: org.CreatedBy,
			APIKey:    org.APIKey,
			Domain:    org.Domain,
			LogoURL:   org.LogoURL,
			Metadata:  datatypes.JSONMap{"source": sourceMetadata},
		}
		if err := s.directory.UpsertOrganization(ctx, s.db, record); err != nil {
			return fmt.Errorf("persist organization %s: %w", org.ID, err)
		}
	}

	record := &directorydomain.UserRecord{
		ID:             user.ID,
		Email:          user.Email,
		DiscordUserID:  discordUserID,
		OrganizationID: orgID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Domain:         user.Domain,
		Metadata:       datatypes.JSONMap{"source": user.Source},
	}
	if err := s.directory.UpsertUser(ctx, s.db, record); err != nil {
		return fmt.Errorf("persist user %s: %w", user.ID, err)
	}
	return nil
}

const sourceMetadata = "discord_bot"
