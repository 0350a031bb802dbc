package rules

import (
	"net/url"
	"path"
	"strings"
)

// Set is a compiled, read-only view of Tables. It is safe for concurrent use.
type Set struct {
	tables         Tables
	tracking       map[string]bool
	keywords       map[string]bool
	appStoreScheme map[string]bool
}

// Compile validates and normalizes t into a Set.
func Compile(t Tables) (*Set, error) {
	normalized := t.Normalize()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	return &Set{
		tables:         normalized,
		tracking:       toSet(normalized.TrackingParams),
		keywords:       toSet(normalized.TransactionalKeywords),
		appStoreScheme: toSet(normalized.AppStoreSchemes),
	}, nil
}

// MustCompile is like Compile but panics on invalid tables.
func MustCompile(t Tables) *Set {
	s, err := Compile(t)
	if err != nil {
		panic(err)
	}
	return s
}

var defaultSet = MustCompile(DefaultTables())

// Default returns the compiled built-in tables.
func Default() *Set {
	return defaultSet
}

// Tables returns a copy of the normalized tables backing the set.
func (s *Set) Tables() Tables {
	var out Tables
	for _, c := range Categories() {
		values := s.tables.Get(c)
		cp := make([]string, len(values))
		copy(cp, values)
		out.set(c, cp)
	}
	return out
}

// IsIPLogger returns the matching IP-logger domain for host, if any.
func (s *Set) IsIPLogger(host string) (string, bool) {
	return matchHost(host, s.tables.IPLoggers)
}

// IsPaymentProvider returns the matching payment-provider domain for host, if any.
func (s *Set) IsPaymentProvider(host string) (string, bool) {
	return matchHost(host, s.tables.PaymentProviders)
}

// IsShortener returns the matching shortener domain for host, if any.
func (s *Set) IsShortener(host string) (string, bool) {
	return matchHost(host, s.tables.Shorteners)
}

// IsAppStoreHost returns the matching app store domain for host, if any.
func (s *Set) IsAppStoreHost(host string) (string, bool) {
	return matchHost(host, s.tables.AppStoreHosts)
}

// IsAppStoreScheme reports whether scheme launches an app store.
func (s *Set) IsAppStoreScheme(scheme string) bool {
	return s.appStoreScheme[strings.ToLower(scheme)]
}

// HasPackageSuffix reports whether the URL path names an installable package.
func (s *Set) HasPackageSuffix(p string) bool {
	p = strings.ToLower(p)
	for _, suffix := range s.tables.PackageSuffixes {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	return false
}

// TransactionalSegment returns the first path segment that is a
// transactional keyword. A file extension on the segment is ignored,
// so "/login.php" matches "login".
func (s *Set) TransactionalSegment(p string) (string, bool) {
	for _, segment := range strings.Split(p, "/") {
		if segment == "" {
			continue
		}
		if unescaped, err := url.PathUnescape(segment); err == nil {
			segment = unescaped
		}
		segment = strings.ToLower(segment)
		if s.keywords[segment] {
			return segment, true
		}
		if ext := path.Ext(segment); ext != "" && s.keywords[strings.TrimSuffix(segment, ext)] {
			return strings.TrimSuffix(segment, ext), true
		}
	}
	return "", false
}

// TrackingParams returns the tracking parameter names present in rawQuery,
// in the order they first appear. Names keep their original spelling and
// each name is reported once.
func (s *Set) TrackingParams(rawQuery string) []string {
	var found []string
	seen := make(map[string]bool)

	for _, pair := range strings.FieldsFunc(rawQuery, func(r rune) bool { return r == '&' || r == ';' }) {
		name, _, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(name); err == nil {
			name = unescaped
		}
		key := strings.ToLower(name)
		if !s.tracking[key] || seen[key] {
			continue
		}
		seen[key] = true
		found = append(found, name)
	}

	return found
}

// matchHost reports the table entry host equals or is a subdomain of.
func matchHost(host string, domains []string) (string, bool) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return "", false
	}
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return d, true
		}
	}
	return "", false
}

func toSet(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
