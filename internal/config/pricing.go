package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig drives quote generation for the onboarding workflow.
type PricingConfig struct {
	// UnitRateMinor is the per-table rate in minor currency units.
	UnitRateMinor int64  `mapstructure:"unitRateMinor"`
	Currency      string `mapstructure:"currency"`
	// QuoteValidityDays controls the quote expiry window.
	QuoteValidityDays int `mapstructure:"quoteValidityDays"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		UnitRateMinor:     250,
		Currency:          "USD",
		QuoteValidityDays: 30,
	}
}

// PricingHolder serves the current pricing config and reloads it on file change.
type PricingHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingHolder() (*PricingHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/portcullis")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PORTCULLIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingConfig()
	v.SetDefault("pricing.unitRateMinor", defaults.UnitRateMinor)
	v.SetDefault("pricing.currency", defaults.Currency)
	v.SetDefault("pricing.quoteValidityDays", defaults.QuoteValidityDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticPricingHolder wraps a fixed config, with no file watching.
func StaticPricingHolder(cfg PricingConfig) *PricingHolder {
	h := &PricingHolder{}
	h.current.Store(cfg)
	return h
}

func (h *PricingHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func validatePricingConfig(cfg PricingConfig) error {
	if cfg.UnitRateMinor <= 0 {
		return errors.New("pricing.unitRateMinor must be positive")
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		return errors.New("pricing.currency cannot be empty")
	}
	if cfg.QuoteValidityDays <= 0 {
		return errors.New("pricing.quoteValidityDays must be positive")
	}
	return nil
}
