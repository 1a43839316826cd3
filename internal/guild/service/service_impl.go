package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/runportcullis/portcullis-bot/internal/config"
	"github.com/runportcullis/portcullis-bot/internal/guild/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Cfg       config.Config
	Connector domain.Connector
}

type Service struct {
	log            *zap.Logger
	operatorUserID string
	connector      domain.Connector
}

func New(p Params) domain.Service {
	return &Service{
		log:            p.Log.Named("guild.service"),
		operatorUserID: p.Cfg.OperatorUserID,
		connector:      p.Connector,
	}
}

// ProvisionChannel sets up the domain role (reusing an existing one when the
// name matches), the private welcome channel with its permission grants, the
// member's role assignment and the welcome message. Once the channel exists,
// later failures still return the partial result alongside the error.
func (s *Service) ProvisionChannel(ctx context.Context, req domain.ProvisionRequest) (*domain.ProvisionResult, error) {
	domainName := strings.TrimSpace(req.Domain)
	if domainName == "" {
		return nil, domain.ErrInvalidDomain
	}
	if strings.TrimSpace(req.Organization) == "" {
		return nil, domain.ErrInvalidOrganization
	}

	result := &domain.ProvisionResult{}

	role, created, err := s.ensureDomainRole(ctx, req.GuildID, domainName)
	if err != nil {
		return nil, fmt.Errorf("ensure role %q: %w", domainName, err)
	}
	result.Role = role
	result.RoleCreated = created

	overwrites := []domain.PermissionOverwrite{
		{ID: req.GuildID, Type: domain.OverwriteRole, Deny: permissionViewChannel},
		{ID: role.ID, Type: domain.OverwriteRole, Allow: permissionViewChannel | permissionSendMessages},
		{ID: s.operatorUserID, Type: domain.OverwriteMember, Allow: permissionViewChannel | permissionSendMessages},
		{ID: s.connector.BotUserID(), Type: domain.OverwriteMember, Allow: permissionViewChannel | permissionSendMessages | permissionManageChannels},
	}

	channel, err := s.connector.CreateChannel(ctx, req.GuildID, ChannelName(req.Organization), overwrites)
	if err != nil {
		return result, fmt.Errorf("create channel: %w", err)
	}
	result.Channel = channel

	if err := s.connector.AddMemberRole(ctx, req.GuildID, req.MemberUserID, role.ID); err != nil {
		return result, fmt.Errorf("assign role %s: %w", role.ID, err)
	}

	embed := domain.Embed{
		Title: fmt.Sprintf("Welcome %s %s!", req.FirstName, req.LastName),
		Description: fmt.Sprintf(
			"Thank you for registering with Portcullis.\n\n**Organization:** %s\n**Domain:** %s\n**Warehouse Tables:** %d",
			req.Organization, domainName, req.TableCount,
		),
		Color: role.Color,
	}
	if err := s.connector.SendEmbed(ctx, channel.ID, embed); err != nil {
		return result, fmt.Errorf("send welcome message: %w", err)
	}

	s.log.Info("channel provisioned",
		zap.String("channel_id", channel.ID),
		zap.String("role_id", role.ID),
		zap.Bool("role_created", created),
	)
	return result, nil
}

// ensureDomainRole reuses the role named exactly after the domain when one
// exists. Two concurrent submissions for a brand-new domain may both create
// the role; that race is tolerated.
func (s *Service) ensureDomainRole(ctx context.Context, guildID, domainName string) (*domain.Role, bool, error) {
	roles, err := s.connector.Roles(ctx, guildID)
	if err != nil {
		return nil, false, err
	}
	for i := range roles {
		if roles[i].Name == domainName {
			return &roles[i], false, nil
		}
	}

	role, err := s.connector.CreateRole(ctx, guildID, domainName, domain.DefaultRoleColor)
	if err != nil {
		return nil, false, err
	}
	return role, true, nil
}

// ChannelName derives the welcome channel name from the organization label:
// lowercase, every character outside [a-z0-9] mapped to '-', suffixed with
// "-welcome".
func ChannelName(organization string) string {
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, strings.ToLower(organization))
	return mapped + "-welcome"
}
