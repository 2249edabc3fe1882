package config

import (
	"fmt"
	"time"
)

// TollConfig defines the exemption settings of the calculator.
type TollConfig struct {
	// TollFreeMonth is the month (1-12) during which no fee is charged.
	TollFreeMonth int `json:"toll_free_month"`
	// CacheHolidays memoizes holiday tables per year. Nil means enabled.
	CacheHolidays *bool `json:"cache_holidays"`
}

// SetDefaults applies sane defaults.
func (c *TollConfig) SetDefaults() {
	if c.TollFreeMonth == 0 {
		c.TollFreeMonth = int(time.July)
	}
	if c.CacheHolidays == nil {
		enabled := true
		c.CacheHolidays = &enabled
	}
}

// Validate checks the month range.
func (c TollConfig) Validate() error {
	if c.TollFreeMonth < 1 || c.TollFreeMonth > 12 {
		return fmt.Errorf("toll_free_month must be between 1 and 12, got %d", c.TollFreeMonth)
	}
	return nil
}

// Month returns TollFreeMonth as a time.Month.
func (c TollConfig) Month() time.Month { return time.Month(c.TollFreeMonth) }

// Cached reports whether holiday tables should be memoized.
func (c TollConfig) Cached() bool { return c.CacheHolidays == nil || *c.CacheHolidays }
