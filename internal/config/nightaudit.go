package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// MealPriceDefaults are the fallback per-person meal unit prices applied
// when a hotel does not override them.
type MealPriceDefaults struct {
	Breakfast    float64 `mapstructure:"breakfast"`
	Lunch        float64 `mapstructure:"lunch"`
	Dinner       float64 `mapstructure:"dinner"`
	AllInclusive float64 `mapstructure:"allInclusive"`
}

// PostingAccounts names the well-known GL account codes the night audit
// posts against. Codes resolve to chart-of-accounts rows per hotel.
type PostingAccounts struct {
	GuestLedger        string `mapstructure:"guestLedger"`
	DefaultRoomRevenue string `mapstructure:"defaultRoomRevenue"`
	Breakfast          string `mapstructure:"breakfast"`
	Lunch              string `mapstructure:"lunch"`
	Dinner             string `mapstructure:"dinner"`
	AllInclusive       string `mapstructure:"allInclusive"`
}

// NightAuditConfig is the posting policy for end-of-day revenue
// recognition.
type NightAuditConfig struct {
	// AuditHour is the local hour (0-23) after which the previous
	// business date becomes eligible for automatic posting.
	AuditHour    int               `mapstructure:"auditHour"`
	ItemizeMeals bool              `mapstructure:"itemizeMeals"`
	MealPrices   MealPriceDefaults `mapstructure:"mealPrices"`
	Accounts     PostingAccounts   `mapstructure:"accounts"`
}

func DefaultNightAuditConfig() NightAuditConfig {
	return NightAuditConfig{
		AuditHour:    4,
		ItemizeMeals: true,
		Accounts: PostingAccounts{
			GuestLedger:        "guest_ledger",
			DefaultRoomRevenue: "room_revenue",
			Breakfast:          "breakfast_revenue",
			Lunch:              "lunch_revenue",
			Dinner:             "dinner_revenue",
			AllInclusive:       "all_inclusive_revenue",
		},
	}
}

// NightAuditConfigHolder exposes the current posting policy and hot
// reloads it when the config file changes.
type NightAuditConfigHolder struct {
	current atomic.Value // holds NightAuditConfig
}

func NewNightAuditConfigHolder() (*NightAuditConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("nightaudit")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/folio/config")
	v.AddConfigPath("/etc/folio")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultNightAuditConfig()
	v.SetDefault("nightAudit.auditHour", defaults.AuditHour)
	v.SetDefault("nightAudit.itemizeMeals", defaults.ItemizeMeals)
	v.SetDefault("nightAudit.accounts", defaults.Accounts)
	v.SetDefault("nightAudit.mealPrices", defaults.MealPrices)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg NightAuditConfig
	if err := v.UnmarshalKey("nightAudit", &cfg); err != nil {
		return nil, err
	}
	if err := validateNightAuditConfig(cfg); err != nil {
		return nil, err
	}

	holder := &NightAuditConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated NightAuditConfig
		if err := v.UnmarshalKey("nightAudit", &updated); err != nil {
			log.Printf("[nightaudit-config] reload failed: %v", err)
			return
		}
		if err := validateNightAuditConfig(updated); err != nil {
			log.Printf("[nightaudit-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[nightaudit-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticNightAuditConfigHolder wraps a fixed config without file
// watching, for tests and tools.
func NewStaticNightAuditConfigHolder(cfg NightAuditConfig) *NightAuditConfigHolder {
	holder := &NightAuditConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *NightAuditConfigHolder) Get() NightAuditConfig {
	return h.current.Load().(NightAuditConfig)
}

func validateNightAuditConfig(cfg NightAuditConfig) error {
	if cfg.AuditHour < 0 || cfg.AuditHour > 23 {
		return errors.New("nightAudit.auditHour must be 0-23")
	}
	if cfg.Accounts.GuestLedger == "" {
		return errors.New("nightAudit.accounts.guestLedger cannot be empty")
	}
	if cfg.Accounts.DefaultRoomRevenue == "" {
		return errors.New("nightAudit.accounts.defaultRoomRevenue cannot be empty")
	}
	if cfg.MealPrices.Breakfast < 0 || cfg.MealPrices.Lunch < 0 ||
		cfg.MealPrices.Dinner < 0 || cfg.MealPrices.AllInclusive < 0 {
		return errors.New("nightAudit.mealPrices must be non-negative")
	}
	return nil
}
