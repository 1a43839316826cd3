// Package commands declares the bot's slash-command surface. The definitions
// are shared by the gateway dispatcher and the deploy-commands tool so the
// two can never drift apart.
package commands

import "github.com/bwmarrin/discordgo"

const (
	SetupPortal    = "setup-portal"
	CreateUser     = "create-user"
	CreateCustomer = "create-customer"
	CreateQuote    = "create-quote"
)

// Component and modal identifiers used by the registration flow.
const (
	RegisterButtonID    = "register-client"
	RegistrationModalID = "client-registration-form"

	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldOrganization = "organization"
	FieldDomain       = "domain"
	FieldTableCount   = "tableCount"
)

var currencyChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "USD", Value: "USD"},
	{Name: "EUR", Value: "EUR"},
	{Name: "GBP", Value: "GBP"},
}

// Definitions returns every slash command the bot registers.
func Definitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        SetupPortal,
			Description: "Start the portal setup process",
		},
		{
			Name:        CreateUser,
			Description: "Create a new user in the identity platform",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "email",
					Description: "User email address",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "first_name",
					Description: "First name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "last_name",
					Description: "Last name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "domain",
					Description: "User domain",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "organization",
					Description: "Organization name (optional)",
					Required:    false,
				},
			},
		},
		{
			Name:        CreateCustomer,
			Description: "Create a new customer in the billing platform",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Customer legal name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "email",
					Description: "Billing email address",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "organization_id",
					Description: "Identity organization ID",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "type",
					Description: "Customer type",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Corporate", Value: "corporate"},
						{Name: "Person", Value: "person"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "currency",
					Description: "Currency code",
					Required:    true,
					Choices:     currencyChoices,
				},
			},
		},
		{
			Name:        CreateQuote,
			Description: "Create a quote for a customer",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "customer_id",
					Description: "Billing customer ID",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Quote amount in minor currency units",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "currency",
					Description: "Currency code",
					Required:    true,
					Choices:     currencyChoices,
				},
			},
		},
	}
}
