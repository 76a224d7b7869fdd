package config

import (
	"errors"
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a UI should
// surface before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	// Normalize tag aliases: lowercase keys and values, drop empties.
	if len(out.Tags.Aliases) > 0 {
		aliases := make(map[string]string, len(out.Tags.Aliases))
		for k, v := range out.Tags.Aliases {
			k = strings.ToLower(strings.TrimSpace(k))
			v = strings.ToLower(strings.TrimSpace(v))
			if k == "" || v == "" {
				res.addWarn("tags.aliases has an empty key or value; dropped")
				continue
			}
			aliases[k] = v
		}
		out.Tags.Aliases = aliases
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if strings.TrimSpace(out.Catalog.CSVPath) == "" {
		res.addErr("catalog.csv_path is required")
	}
	if out.Catalog.PerCategory < 0 {
		res.addErr("catalog.per_category must be >= 0")
	}
	if out.Catalog.PerCategory == 0 {
		res.addWarn("catalog.per_category is 0; the default of 4 will be used")
	}
	if out.Catalog.RefreshSeconds < 0 {
		res.addErr("catalog.refresh_seconds must be >= 0")
	} else if out.Catalog.RefreshSeconds > 0 && out.Catalog.RefreshSeconds < 30 {
		res.addWarn("catalog.refresh_seconds is very low (%d); the catalog file rarely changes that fast", out.Catalog.RefreshSeconds)
	}

	if out.Enrich.Enabled {
		if out.Enrich.ReqPerSec <= 0 {
			res.addErr("enrich.req_per_sec must be > 0 when enrich.enabled=true")
		}
		if out.Enrich.MaxConcurrent > 16 {
			res.addWarn("enrich.max_concurrent is high (%d); shop sites may rate limit", out.Enrich.MaxConcurrent)
		}
	}

	if out.API.RatePerSec < 0 {
		res.addErr("api.rate_per_sec must be >= 0")
	}
	if out.API.RatePerSec > 0 && out.API.Burst <= 0 {
		res.addErr("api.burst must be > 0 when api.rate_per_sec is set")
	}

	return out, res
}

// Validate is the hard-error gate used before persisting.
func Validate(cfg Config) error {
	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		return errors.New("config validation failed:\n- " + strings.Join(res.Errors, "\n- "))
	}
	return nil
}
