package service

import (
	"context"
	"strings"
	"time"

	"github.com/runportcullis/portcullis-bot/internal/billing/domain"
	"github.com/runportcullis/portcullis-bot/internal/config"
	directorydomain "github.com/runportcullis/portcullis-bot/internal/directory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Client    domain.Client
	Pricing   *config.PricingHolder
	Directory directorydomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	client    domain.Client
	pricing   *config.PricingHolder
	directory directorydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("billing.service"),
		client:    p.Client,
		pricing:   p.Pricing,
		directory: p.Directory,
	}
}

// CreateCustomer provisions a billing customer and links it to the directory
// organization row, which must already exist. The platform create is not
// rolled back when the linkage fails.
func (s *Service) CreateCustomer(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Type != domain.CustomerTypeCorporate && req.Type != domain.CustomerTypePerson {
		return nil, domain.ErrInvalidType
	}
	email := strings.TrimSpace(req.BillingEmail)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = s.pricing.Get().Currency
	}

	customer, err := s.client.CreateCustomer(ctx, name, req.Type, currency, email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(customer.ID) == "" {
		return nil, domain.ErrNoCustomerID
	}

	if err := s.directory.SetBillingCustomerID(ctx, s.db, req.DirectoryOrgID, customer.ID); err != nil {
		if err == directorydomain.ErrNotFound || err == directorydomain.ErrInvalidID {
			return nil, domain.ErrOrganizationMissing
		}
		return nil, err
	}

	s.log.Info("billing customer created",
		zap.String("customer_id", customer.ID),
		zap.String("org_id", req.DirectoryOrgID),
	)
	return customer, nil
}

// CreateQuote issues a quote expiring after the configured validity window.
func (s *Service) CreateQuote(ctx context.Context, req domain.CreateQuoteRequest) (*domain.Quote, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, domain.ErrInvalidCustomerID
	}

	pricing := s.pricing.Get()
	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = pricing.Currency
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, pricing.QuoteValidityDays)
	quote, err := s.client.CreateQuote(ctx, customerID, req.Amount, currency, expiresAt)
	if err != nil {
		return nil, err
	}

	s.log.Info("billing quote created",
		zap.String("quote_id", quote.ID),
		zap.String("customer_id", customerID),
		zap.Int64("amount", req.Amount),
	)
	return quote, nil
}
