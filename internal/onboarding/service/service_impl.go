package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/runportcullis/portcullis-bot/internal/billing/domain"
	"github.com/runportcullis/portcullis-bot/internal/config"
	guilddomain "github.com/runportcullis/portcullis-bot/internal/guild/domain"
	identitydomain "github.com/runportcullis/portcullis-bot/internal/identity/domain"
	"github.com/runportcullis/portcullis-bot/internal/observability"
	"github.com/runportcullis/portcullis-bot/internal/onboarding/domain"
	webhookdomain "github.com/runportcullis/portcullis-bot/internal/webhookapp/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Pricing  *config.PricingHolder
	Identity identitydomain.Service
	Webhook  webhookdomain.Service
	Billing  billingdomain.Service
	Guild    guilddomain.Service
	Metrics  *observability.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	pricing  *config.PricingHolder
	identity identitydomain.Service
	webhook  webhookdomain.Service
	billing  billingdomain.Service
	guild    guilddomain.Service
	metrics  *observability.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("onboarding.service"),
		genID:    p.GenID,
		pricing:  p.Pricing,
		identity: p.Identity,
		webhook:  p.Webhook,
		billing:  p.Billing,
		guild:    p.Guild,
		metrics:  p.Metrics,
	}
}

// Register drives one submission through the fixed provisioning sequence.
// Validation is the single gate before any external call; after that every
// stage's success is the precondition for the next, and the first fatal
// failure short-circuits the run. Committed records are never rolled back.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	runID := s.genID.Generate()
	log := s.log.With(
		zap.String("run_id", runID.String()),
		zap.String("discord_user_id", req.DiscordUserID),
	)

	result := &domain.RegisterResult{Stage: domain.StageReceived}

	submission, inputErr := domain.ParseSubmission(req.Fields)
	if inputErr != nil {
		s.countRun("input_error")
		log.Warn("submission rejected", zap.String("reason", inputErr.Error()))
		return result, inputErr
	}
	result.Stage = domain.StageValidated
	result.Submission = submission
	log = log.With(zap.String("domain", submission.Domain))

	email := submission.DeriveEmail()

	user, err := s.identity.ProvisionUser(ctx, identitydomain.CreateUserRequest{
		Email:         email,
		DiscordUserID: req.DiscordUserID,
		FirstName:     submission.FirstName,
		LastName:      submission.LastName,
		Domain:        submission.Domain,
	})
	if err != nil {
		return result, s.fail(log, result, domain.StageIdentityCreated, err)
	}
	result.Stage = domain.StageIdentityCreated
	result.IdentityUserID = user.ID

	org, err := s.identity.ProvisionOrganization(ctx, submission.Organization, user.ID, submission.Domain)
	if err != nil {
		return result, s.fail(log, result, domain.StageOrgCreated, err)
	}
	result.Stage = domain.StageOrgCreated
	result.IdentityOrgID = org.ID
	result.APIKey = org.APIKey

	appID, err := s.webhook.CreateApp(ctx, submission.Organization)
	if err != nil {
		return result, s.fail(log, result, domain.StageWebhookAppCreated, err)
	}
	result.Stage = domain.StageWebhookAppCreated
	result.WebhookAppID = appID

	if err := s.identity.PersistDirectory(ctx, user, req.DiscordUserID, org); err != nil {
		return result, s.fail(log, result, domain.StageDirectoryPersisted, err)
	}
	result.Stage = domain.StageDirectoryPersisted

	provisioned, err := s.guild.ProvisionChannel(ctx, guilddomain.ProvisionRequest{
		GuildID:      req.GuildID,
		Domain:       submission.Domain,
		Organization: submission.Organization,
		MemberUserID: req.DiscordUserID,
		FirstName:    submission.FirstName,
		LastName:     submission.LastName,
		TableCount:   submission.TableCount,
	})
	if provisioned != nil {
		if provisioned.Role != nil {
			result.RoleID = provisioned.Role.ID
		}
		if provisioned.Channel != nil {
			result.ChannelID = provisioned.Channel.ID
		}
	}
	if err != nil {
		return result, s.fail(log, result, domain.StageChannelProvisioned, err)
	}
	result.Stage = domain.StageChannelProvisioned

	pricing := s.pricing.Get()
	customer, err := s.billing.CreateCustomer(ctx, billingdomain.CreateCustomerRequest{
		Name:           submission.Organization,
		Type:           billingdomain.CustomerTypeCorporate,
		Currency:       pricing.Currency,
		BillingEmail:   email,
		DirectoryOrgID: org.ID,
	})
	if err != nil {
		return result, s.fail(log, result, domain.StageBillingCustomerCreated, err)
	}
	result.Stage = domain.StageBillingCustomerCreated
	result.CustomerID = customer.ID

	quote, err := s.billing.CreateQuote(ctx, billingdomain.CreateQuoteRequest{
		CustomerID: customer.ID,
		Amount:     submission.TableCount * pricing.UnitRateMinor,
		Currency:   pricing.Currency,
	})
	if err != nil {
		return result, s.fail(log, result, domain.StageQuoteIssued, err)
	}
	result.Stage = domain.StageQuoteIssued
	result.QuoteID = quote.ID
	result.QuoteURL = quote.HostedURL

	result.Stage = domain.StageCompleted
	result.Message = fmt.Sprintf("Registration complete! Please check <#%s>", result.ChannelID)
	s.countRun("completed")
	log.Info("onboarding completed",
		zap.String("user_id", result.IdentityUserID),
		zap.String("org_id", result.IdentityOrgID),
		zap.String("channel_id", result.ChannelID),
	)
	return result, nil
}

// fail wraps a stage failure, attaching the committed references when any
// durable record already exists so the operator can reconcile manually.
func (s *Service) fail(log *zap.Logger, result *domain.RegisterResult, stage domain.Stage, err error) error {
	s.countRun("failed")
	if s.metrics != nil {
		s.metrics.StageFailures.WithLabelValues(string(stage)).Inc()
	}
	log.Error("onboarding stage failed",
		zap.String("stage", string(stage)),
		zap.String("reached", string(result.Stage)),
		zap.Error(err),
	)

	committed := domain.Committed{
		IdentityUserID: result.IdentityUserID,
		IdentityOrgID:  result.IdentityOrgID,
		WebhookAppID:   result.WebhookAppID,
		RoleID:         result.RoleID,
		ChannelID:      result.ChannelID,
		CustomerID:     result.CustomerID,
	}
	if committed != (domain.Committed{}) {
		return &domain.PartialCompletionError{Stage: stage, Err: err, Committed: committed}
	}
	return &domain.StageError{Stage: stage, Err: err}
}

func (s *Service) countRun(outcome string) {
	if s.metrics != nil {
		s.metrics.OnboardingRuns.WithLabelValues(outcome).Inc()
	}
}
