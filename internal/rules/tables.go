// Package rules holds the lookup tables that drive payload risk classification.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/qr-signal/internal/common"
)

// Category names one rule table.
type Category string

// Rule table categories.
const (
	CategoryShorteners            Category = "shorteners"
	CategoryTrackingParams        Category = "tracking_params"
	CategoryIPLoggers             Category = "ip_loggers"
	CategoryPaymentProviders      Category = "payment_providers"
	CategoryTransactionalKeywords Category = "transactional_keywords"
	CategoryAppStoreHosts         Category = "app_store_hosts"
	CategoryAppStoreSchemes       Category = "app_store_schemes"
	CategoryPackageSuffixes       Category = "package_suffixes"
)

// Categories returns every table category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryIPLoggers,
		CategoryPaymentProviders,
		CategoryTransactionalKeywords,
		CategoryShorteners,
		CategoryTrackingParams,
		CategoryAppStoreHosts,
		CategoryAppStoreSchemes,
		CategoryPackageSuffixes,
	}
}

// ParseCategory resolves a category name, ignoring case and dashes.
func ParseCategory(name string) (Category, error) {
	normalized := Category(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, c := range Categories() {
		if c == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown rule category %q", common.ErrNotFound, name)
}

// Tables maps each rule category to its list of patterns.
// Host tables hold bare domains, which also match their subdomains.
type Tables struct {
	Shorteners            []string `mapstructure:"shorteners" yaml:"shorteners" json:"shorteners,omitempty"`
	TrackingParams        []string `mapstructure:"tracking_params" yaml:"tracking_params" json:"tracking_params,omitempty"`
	IPLoggers             []string `mapstructure:"ip_loggers" yaml:"ip_loggers" json:"ip_loggers,omitempty"`
	PaymentProviders      []string `mapstructure:"payment_providers" yaml:"payment_providers" json:"payment_providers,omitempty"`
	TransactionalKeywords []string `mapstructure:"transactional_keywords" yaml:"transactional_keywords" json:"transactional_keywords,omitempty"`
	AppStoreHosts         []string `mapstructure:"app_store_hosts" yaml:"app_store_hosts" json:"app_store_hosts,omitempty"`
	AppStoreSchemes       []string `mapstructure:"app_store_schemes" yaml:"app_store_schemes" json:"app_store_schemes,omitempty"`
	PackageSuffixes       []string `mapstructure:"package_suffixes" yaml:"package_suffixes" json:"package_suffixes,omitempty"`
}

// DefaultTables returns the built-in rule tables.
func DefaultTables() Tables {
	return Tables{
		Shorteners: []string{
			"bit.ly", "t.co", "goo.gl", "tinyurl.com", "is.gd", "buff.ly", "adf.ly", "rebrand.ly",
		},
		TrackingParams: []string{
			"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
			"gclid", "fbclid", "mc_cid", "mc_eid",
		},
		IPLoggers: []string{
			"grabify.link", "iplogger.org", "blasze.com", "tracking-link.com", "short-link.org",
		},
		PaymentProviders: []string{
			"paypal.me", "cash.app", "venmo.com", "stripe.link", "checkout.stripe.com",
		},
		TransactionalKeywords: []string{
			"login", "signin", "auth", "oauth", "account", "secure", "wallet",
		},
		AppStoreHosts:   []string{"play.google.com", "apps.apple.com"},
		AppStoreSchemes: []string{"market", "itms-apps"},
		PackageSuffixes: []string{".apk"},
	}
}

// Get returns the table for a category.
func (t Tables) Get(c Category) []string {
	switch c {
	case CategoryShorteners:
		return t.Shorteners
	case CategoryTrackingParams:
		return t.TrackingParams
	case CategoryIPLoggers:
		return t.IPLoggers
	case CategoryPaymentProviders:
		return t.PaymentProviders
	case CategoryTransactionalKeywords:
		return t.TransactionalKeywords
	case CategoryAppStoreHosts:
		return t.AppStoreHosts
	case CategoryAppStoreSchemes:
		return t.AppStoreSchemes
	case CategoryPackageSuffixes:
		return t.PackageSuffixes
	default:
		return nil
	}
}

// Only returns a copy of t holding just category c.
func (t Tables) Only(c Category) Tables {
	var out Tables
	out.set(c, append([]string(nil), t.Get(c)...))
	return out
}

func (t *Tables) set(c Category, values []string) {
	switch c {
	case CategoryShorteners:
		t.Shorteners = values
	case CategoryTrackingParams:
		t.TrackingParams = values
	case CategoryIPLoggers:
		t.IPLoggers = values
	case CategoryPaymentProviders:
		t.PaymentProviders = values
	case CategoryTransactionalKeywords:
		t.TransactionalKeywords = values
	case CategoryAppStoreHosts:
		t.AppStoreHosts = values
	case CategoryAppStoreSchemes:
		t.AppStoreSchemes = values
	case CategoryPackageSuffixes:
		t.PackageSuffixes = values
	}
}

// Normalize lower-cases and trims every entry, strips host and scheme
// decorations, and drops blanks and duplicates while keeping order.
func (t Tables) Normalize() Tables {
	var out Tables
	for _, c := range Categories() {
		out.set(c, normalizeList(c, t.Get(c)))
	}
	return out
}

// Merge returns t extended with every entry of extra that t does not already hold.
func (t Tables) Merge(extra Tables) Tables {
	var out Tables
	for _, c := range Categories() {
		combined := make([]string, 0, len(t.Get(c))+len(extra.Get(c)))
		combined = append(combined, t.Get(c)...)
		combined = append(combined, extra.Get(c)...)
		out.set(c, normalizeList(c, combined))
	}
	return out
}

// Validate checks that every table has at least one usable entry.
func (t Tables) Validate() error {
	var problems []string
	for _, c := range Categories() {
		values := t.Get(c)
		if len(values) == 0 {
			problems = append(problems, fmt.Sprintf("%s is empty", c))
			continue
		}
		for i, v := range values {
			if strings.TrimSpace(v) == "" {
				problems = append(problems, fmt.Sprintf("%s[%d] is blank", c, i))
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return common.InvalidConfigf("rule tables: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Count returns the total number of entries across all tables.
func (t Tables) Count() int {
	total := 0
	for _, c := range Categories() {
		total += len(t.Get(c))
	}
	return total
}

func normalizeList(c Category, values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		switch c {
		case CategoryShorteners, CategoryIPLoggers, CategoryPaymentProviders, CategoryAppStoreHosts:
			v = strings.TrimPrefix(v, "https://")
			v = strings.TrimPrefix(v, "http://")
			v = strings.Trim(v, "./")
		case CategoryAppStoreSchemes:
			v = strings.TrimSuffix(v, "://")
			v = strings.TrimSuffix(v, ":")
		case CategoryTransactionalKeywords:
			v = strings.Trim(v, "/")
		case CategoryPackageSuffixes:
			if v != "" && !strings.HasPrefix(v, ".") {
				v = "." + v
			}
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	return out
}
