package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/srgjo27/staybook/internal/core/domain"
)

// Policy holds the booking rules of a deployment.
// Source: TOML file at POLICY_PATH; every key is optional.
type Policy struct {
	CheckInHour     int    `toml:"check_in_hour"`
	CheckOutHour    int    `toml:"check_out_hour"`
	TimeZone        string `toml:"time_zone"` // empty means the system zone
	MinStayDays     int    `toml:"min_stay_days"`
	MinAdults       int    `toml:"min_adults"`
	MaxAdults       int    `toml:"max_adults"`
	PropertyMinLen  int    `toml:"property_min_len"`
	PropertyMaxLen  int    `toml:"property_max_len"`
	DefaultProperty string `toml:"default_property"`
}

func DefaultPolicy() Policy {
	rules := domain.DefaultFormRules()
	return Policy{
		CheckInHour:     8,
		CheckOutHour:    14,
		MinStayDays:     rules.MinStayDays,
		MinAdults:       rules.MinAdults,
		MaxAdults:       rules.MaxAdults,
		PropertyMinLen:  rules.PropertyMinLen,
		PropertyMaxLen:  rules.PropertyMaxLen,
		DefaultProperty: "Property A",
	}
}

// LoadPolicy reads the policy file over the defaults. An empty path returns the defaults.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	if _, err := toml.DecodeFile(path, &policy); err != nil {
		return Policy{}, fmt.Errorf("failed to load booking policy: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

func (p Policy) Validate() error {
	if p.CheckInHour < 0 || p.CheckInHour > 23 {
		return fmt.Errorf("check_in_hour must be between 0 and 23, got %d", p.CheckInHour)
	}
	if p.CheckOutHour < 0 || p.CheckOutHour > 23 {
		return fmt.Errorf("check_out_hour must be between 0 and 23, got %d", p.CheckOutHour)
	}
	if p.MinStayDays < 0 {
		return fmt.Errorf("min_stay_days must not be negative")
	}
	if p.MinAdults < 1 || p.MaxAdults < p.MinAdults {
		return fmt.Errorf("adults range %d..%d is invalid", p.MinAdults, p.MaxAdults)
	}
	if p.PropertyMinLen < 1 || p.PropertyMaxLen < p.PropertyMinLen {
		return fmt.Errorf("property length range %d..%d is invalid", p.PropertyMinLen, p.PropertyMaxLen)
	}
	if _, err := p.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone, falling back to time.Local when it is empty.
func (p Policy) Location() (*time.Location, error) {
	if p.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time_zone %q: %w", p.TimeZone, err)
	}
	return loc, nil
}

func (p Policy) FormRules() domain.FormRules {
	return domain.FormRules{
		PropertyMinLen: p.PropertyMinLen,
		PropertyMaxLen: p.PropertyMaxLen,
		MinAdults:      p.MinAdults,
		MaxAdults:      p.MaxAdults,
		MinStayDays:    p.MinStayDays,
	}
}

// NewForm returns the values a blank booking form starts with.
func (p Policy) NewForm() domain.Form {
	return domain.Form{Property: p.DefaultProperty, Adults: p.MinAdults}
}
