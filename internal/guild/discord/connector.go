// Package discord backs the guild Connector with the live gateway session.
package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/runportcullis/portcullis-bot/internal/guild/domain"
)

type connector struct {
	session *discordgo.Session
}

func NewConnector(session *discordgo.Session) domain.Connector {
	return &connector{session: session}
}

func (c *connector) BotUserID() string {
	if c.session.State != nil && c.session.State.User != nil {
		return c.session.State.User.ID
	}
	return ""
}

func (c *connector) Roles(ctx context.Context, guildID string) ([]domain.Role, error) {
	roles, err := c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, domain.Role{ID: r.ID, Name: r.Name, Color: r.Color})
	}
	return out, nil
}

func (c *connector) CreateRole(ctx context.Context, guildID, name string, color int) (*domain.Role, error) {
	role, err := c.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:  name,
		Color: &color,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &domain.Role{ID: role.ID, Name: role.Name, Color: role.Color}, nil
}

func (c *connector) CreateChannel(ctx context.Context, guildID, name string, overwrites []domain.PermissionOverwrite) (*domain.Channel, error) {
	data := discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		PermissionOverwrites: make([]*discordgo.PermissionOverwrite, 0, len(overwrites)),
	}
	for _, ow := range overwrites {
		t := discordgo.PermissionOverwriteTypeRole
		if ow.Type == domain.OverwriteMember {
			t = discordgo.PermissionOverwriteTypeMember
		}
		data.PermissionOverwrites = append(data.PermissionOverwrites, &discordgo.PermissionOverwrite{
			ID:    ow.ID,
			Type:  t,
			Allow: ow.Allow,
			Deny:  ow.Deny,
		})
	}

	channel, err := c.session.GuildChannelCreateComplex(guildID, data, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &domain.Channel{ID: channel.ID, Name: channel.Name}, nil
}

func (c *connector) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (c *connector) SendEmbed(ctx context.Context, channelID string, embed domain.Embed) error {
	_, err := c.session.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
	}, discordgo.WithContext(ctx))
	return err
}
