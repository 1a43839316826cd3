package service

import "github.com/bwmarrin/discordgo"

// Permission bits the provisioning flow grants, aliased so the service layer
// stays decoupled from the gateway library's naming.
const (
	permissionViewChannel    = discordgo.PermissionViewChannel
	permissionSendMessages   = discordgo.PermissionSendMessages
	permissionManageChannels = discordgo.PermissionManageChannels
)
