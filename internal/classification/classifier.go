// Package classification assigns a structural type to decoded QR payloads.
package classification

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/Veraticus/qr-signal/internal/model"
	"github.com/Veraticus/qr-signal/internal/rules"
)

// Prefix maps a payload prefix to a QR type.
type Prefix struct {
	Name     string
	Prefix   string
	Type     model.QrType
	Priority int // Higher priority prefixes are checked first
}

// Classifier performs prefix-based payload classification.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules    *rules.Set
	prefixes []Prefix
}

// NewClassifier creates a classifier for the given prefixes.
// A nil rule set falls back to the built-in tables.
func NewClassifier(set *rules.Set, prefixes []Prefix) (*Classifier, error) {
	if set == nil {
		set = rules.Default()
	}

	ordered := make([]Prefix, 0, len(prefixes))
	for _, p := range prefixes {
		if p.Prefix == "" {
			return nil, fmt.Errorf("prefix %q has an empty prefix", p.Name)
		}
		if !p.Type.IsValid() {
			return nil, fmt.Errorf("prefix %q has unknown type %q", p.Name, p.Type)
		}
		ordered = append(ordered, p)
	}

	// Sort by priority (highest first), keeping declaration order for ties
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	return &Classifier{
		rules:    set,
		prefixes: ordered,
	}, nil
}

// NewDefaultClassifier creates a classifier with DefaultPrefixes.
func NewDefaultClassifier(set *rules.Set) *Classifier {
	c, err := NewClassifier(set, DefaultPrefixes())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the type of content. It never fails; content matching
// no prefix is Unknown.
func (c *Classifier) Classify(content string) model.QrType {
	for _, p := range c.prefixes {
		if !hasPrefixFold(content, p.Prefix) {
			continue
		}
		if p.Type == model.TypeWebsite {
			return c.classifyURL(content)
		}
		return p.Type
	}
	return model.TypeUnknown
}

// PrefixCount returns the number of registered prefixes.
func (c *Classifier) PrefixCount() int {
	return len(c.prefixes)
}

// classifyURL refines an http(s) payload into Payment, App Download or Website.
func (c *Classifier) classifyURL(content string) model.QrType {
	u, err := url.Parse(content)
	if err != nil {
		return model.TypeWebsite
	}

	host := u.Hostname()
	if _, ok := c.rules.IsPaymentProvider(host); ok {
		return model.TypePayment
	}
	if _, ok := c.rules.TransactionalSegment(u.Path); ok {
		return model.TypePayment
	}

	if c.rules.IsAppStoreScheme(u.Scheme) || c.rules.HasPackageSuffix(u.Path) {
		return model.TypeAppDownload
	}
	if _, ok := c.rules.IsAppStoreHost(host); ok {
		return model.TypeAppDownload
	}

	return model.TypeWebsite
}

// StripPrefix removes prefix from s, ignoring case.
func StripPrefix(s, prefix string) string {
	if hasPrefixFold(s, prefix) {
		return s[len(prefix):]
	}
	return s
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
