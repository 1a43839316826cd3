package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	billingdomain "github.com/runportcullis/portcullis-bot/internal/billing/domain"
	"github.com/runportcullis/portcullis-bot/internal/commands"
	identitydomain "github.com/runportcullis/portcullis-bot/internal/identity/domain"
	"github.com/runportcullis/portcullis-bot/internal/observability"
	onboardingdomain "github.com/runportcullis/portcullis-bot/internal/onboarding/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	embedColor = 0x0099FF
	// interactionTimeout bounds one interaction's provisioning work.
	interactionTimeout = 2 * time.Minute
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Onboarding onboardingdomain.Service
	Identity   identitydomain.Service
	Billing    billingdomain.Service
	Metrics    *observability.Metrics `optional:"true"`
}

// Bot routes gateway events to the provisioning services.
type Bot struct {
	log        *zap.Logger
	onboarding onboardingdomain.Service
	identity   identitydomain.Service
	billing    billingdomain.Service
	metrics    *observability.Metrics
}

func New(p Params) *Bot {
	return &Bot{
		log:        p.Log.Named("bot"),
		onboarding: p.Onboarding,
		identity:   p.Identity,
		billing:    p.Billing,
		metrics:    p.Metrics,
	}
}

// HandleInteraction is the single gateway entry point for commands, buttons
// and modal submissions. Every path acknowledges the interaction exactly
// once via the responder.
func (b *Bot) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	r := newResponder(b.log, s, i.Interaction)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		switch data.Name {
		case commands.SetupPortal:
			b.handleSetupPortal(r)
		case commands.CreateUser:
			b.handleCreateUser(ctx, r, i)
		case commands.CreateCustomer:
			b.handleCreateCustomer(ctx, r, i)
		case commands.CreateQuote:
			b.handleCreateQuote(ctx, r, i)
		}
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == commands.RegisterButtonID {
			b.handleRegisterButton(r)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == commands.RegistrationModalID {
			b.handleRegistrationSubmit(ctx, r, i)
		}
	}

	if !r.Acknowledged() {
		r.Reply("There was an error processing your request.")
	}
}

func (b *Bot) handleSetupPortal(r *responder) {
	welcome := &discordgo.MessageEmbed{
		Title:       "Welcome to Portcullis",
		Description: "Access your data export tools and magic links through our client portal.",
		Color:       embedColor,
	}

	err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{welcome},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							CustomID: commands.RegisterButtonID,
							Label:    "Register",
							Style:    discordgo.PrimaryButton,
							Emoji:    &discordgo.ComponentEmoji{Name: "📝"},
						},
					},
				},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Error("setup-portal reply failed", zap.Error(err))
		b.countCommand(commands.SetupPortal, "error")
		return
	}
	b.countCommand(commands.SetupPortal, "ok")
}

func (b *Bot) handleRegisterButton(r *responder) {
	shortInput := func(id, label, placeholder string) discordgo.ActionsRow {
		return discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    id,
					Label:       label,
					Placeholder: placeholder,
					Style:       discordgo.TextInputShort,
					Required:    true,
				},
			},
		}
	}

	err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: commands.RegistrationModalID,
			Title:    "Client Registration",
			Components: []discordgo.MessageComponent{
				shortInput(commands.FieldFirstName, "First Name", ""),
				shortInput(commands.FieldLastName, "Last Name", ""),
				shortInput(commands.FieldOrganization, "Organization", ""),
				shortInput(commands.FieldDomain, "Domain", "e.g. runportcullis.co"),
				shortInput(commands.FieldTableCount, "Warehouse Table Count", "e.g. 500000"),
			},
		},
	})
	if err != nil {
		b.log.Error("registration modal failed", zap.Error(err))
	}
}

func (b *Bot) handleRegistrationSubmit(ctx context.Context, r *responder, i *discordgo.InteractionCreate) {
	r.Defer()

	values := modalValues(i.ModalSubmitData())
	result, err := b.onboarding.Register(ctx, onboardingdomain.RegisterRequest{
		GuildID:       i.GuildID,
		DiscordUserID: memberUserID(i),
		Fields: onboardingdomain.RawSubmission{
			FirstName:    values[commands.FieldFirstName],
			LastName:     values[commands.FieldLastName],
			Organization: values[commands.FieldOrganization],
			Domain:       values[commands.FieldDomain],
			TableCount:   values[commands.FieldTableCount],
		},
	})
	if err != nil {
		b.countCommand("register", "error")
		r.Reply(onboardingdomain.UserMessage(err))
		return
	}

	b.countCommand("register", "ok")
	r.Reply(result.Message)
}

func (b *Bot) handleCreateUser(ctx context.Context, r *responder, i *discordgo.InteractionCreate) {
	r.Defer()

	opts := commandOptions(i.ApplicationCommandData())
	result, err := b.identity.CreateUser(ctx, identitydomain.CreateUserRequest{
		Email:            opts.str("email"),
		DiscordUserID:    memberUserID(i),
		FirstName:        opts.str("first_name"),
		LastName:         opts.str("last_name"),
		Domain:           opts.str("domain"),
		OrganizationName: opts.str("organization"),
	})
	if err != nil {
		b.countCommand(commands.CreateUser, "error")
		b.log.Error("create-user failed", zap.Error(err))
		r.Reply(onboardingdomain.UserMessage(err))
		return
	}

	lines := []string{
		"✅ User created successfully!",
		"Email: " + result.User.Email,
		fmt.Sprintf("Name: %s %s", result.User.FirstName, result.User.LastName),
		"Identity ID: " + result.User.ID,
	}
	if result.Organization != nil {
		lines = append(lines,
			"Organization ID: "+result.Organization.ID,
			"API Key: "+result.Organization.APIKey,
		)
	}
	b.countCommand(commands.CreateUser, "ok")
	r.Reply(strings.Join(lines, "\n"))
}

func (b *Bot) handleCreateCustomer(ctx context.Context, r *responder, i *discordgo.InteractionCreate) {
	r.Defer()

	opts := commandOptions(i.ApplicationCommandData())
	customer, err := b.billing.CreateCustomer(ctx, billingdomain.CreateCustomerRequest{
		Name:           opts.str("name"),
		Type:           billingdomain.CustomerType(opts.str("type")),
		Currency:       opts.str("currency"),
		BillingEmail:   opts.str("email"),
		DirectoryOrgID: opts.str("organization_id"),
	})
	if err != nil {
		b.countCommand(commands.CreateCustomer, "error")
		b.log.Error("create-customer failed", zap.Error(err))
		r.Reply(onboardingdomain.UserMessage(err))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Customer Created",
		Description: "A new billing customer has been created",
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Name", Value: customer.Name, Inline: true},
			{Name: "Type", Value: string(customer.Type), Inline: true},
			{Name: "Customer ID", Value: customer.ID, Inline: true},
			{Name: "Organization ID", Value: opts.str("organization_id")},
		},
	}
	b.countCommand(commands.CreateCustomer, "ok")
	r.Reply("", embed)
}

func (b *Bot) handleCreateQuote(ctx context.Context, r *responder, i *discordgo.InteractionCreate) {
	r.Defer()

	opts := commandOptions(i.ApplicationCommandData())
	quote, err := b.billing.CreateQuote(ctx, billingdomain.CreateQuoteRequest{
		CustomerID: opts.str("customer_id"),
		Amount:     opts.integer("amount"),
		Currency:   opts.str("currency"),
	})
	if err != nil {
		b.countCommand(commands.CreateQuote, "error")
		b.log.Error("create-quote failed", zap.Error(err))
		r.Reply(onboardingdomain.UserMessage(err))
		return
	}

	hostedURL := quote.HostedURL
	if hostedURL == "" {
		hostedURL = "Not available"
	}
	status := quote.Status
	if status == "" {
		status = "pending"
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Quote Created",
		Description: "A new quote has been created for customer " + quote.CustomerID,
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Amount", Value: fmt.Sprintf("%.2f %s", float64(quote.Amount)/100, strings.ToUpper(quote.Currency)), Inline: true},
			{Name: "Status", Value: status, Inline: true},
			{Name: "Quote URL", Value: hostedURL},
		},
	}
	b.countCommand(commands.CreateQuote, "ok")
	r.Reply("", embed)
}

// HandleMemberAdd DMs new guild members a pointer at the onboarding flow.
// DM failure (closed DMs are common) is logged, never fatal.
func (b *Bot) HandleMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	channel, err := s.UserChannelCreate(m.User.ID)
	if err != nil {
		b.log.Warn("welcome DM channel failed",
			zap.String("user_id", m.User.ID),
			zap.Error(err),
		)
		return
	}

	welcome := &discordgo.MessageEmbed{
		Title: "Welcome to the Portcullis Hub!",
		Description: "We're super excited you're thinking about exploring Portcullis at your organization. " +
			"We'll need you to go through a small onboarding flow to get a bit of information about you and " +
			"your organization. To get started, run `/setup-portal` in your chat.",
		Color: embedColor,
	}
	if _, err := s.ChannelMessageSendEmbed(channel.ID, welcome); err != nil {
		b.log.Warn("welcome DM failed",
			zap.String("user_id", m.User.ID),
			zap.Error(err),
		)
	}
}

func (b *Bot) countCommand(command, result string) {
	if b.metrics != nil {
		b.metrics.CommandsTotal.WithLabelValues(command, result).Inc()
	}
}

// modalValues flattens a modal submission into customID → value.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if ti, ok := comp.(*discordgo.TextInput); ok {
				values[ti.CustomID] = ti.Value
			}
		}
	}
	return values
}

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func commandOptions(data discordgo.ApplicationCommandInteractionData) options {
	opts := make(options, len(data.Options))
	for _, o := range data.Options {
		opts[o.Name] = o
	}
	return opts
}

func (o options) str(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o options) integer(name string) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return 0
}

func memberUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
