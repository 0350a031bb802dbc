package analysis

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/Veraticus/qr-signal/internal/model"
)

// linkVerdict accumulates the outcome of the link rules. The signal only
// ever moves up in severity.
type linkVerdict struct {
	qrType  model.QrType
	signal  model.Signal
	notices []string
	hidden  []string
}

func (v *linkVerdict) escalate(signal model.Signal, notice string) {
	if signal.Severity() > v.signal.Severity() {
		v.signal = signal
	}
	v.notices = append(v.notices, notice)
}

// analyzeWebsite evaluates a link payload. Rules run in priority order:
// IP loggers, then transactional surfaces, then obscuring (shorteners and
// tracking parameters), and a rule only runs while no stronger one fired.
func (e *Engine) analyzeWebsite(content string, qrType model.QrType) model.AnalysisResult {
	u, ok := parseStrictURL(content)
	if !ok {
		return malformedResult(content)
	}

	host := strings.ToLower(u.Hostname())
	set := e.deps.Rules
	v := &linkVerdict{
		qrType: qrType,
		signal: model.SignalEmerald,
	}

	if _, hit := set.IsIPLogger(host); hit {
		v.escalate(model.SignalCrimson, ipLoggerNotice)
	}

	if v.signal != model.SignalCrimson {
		_, provider := set.IsPaymentProvider(host)
		_, keyword := set.TransactionalSegment(u.Path)
		if provider || keyword {
			v.escalate(model.SignalAmethyst, transactionalNotice)
			v.qrType = model.TypePayment
		}
	}

	if v.signal == model.SignalEmerald {
		if _, hit := set.IsShortener(host); hit {
			v.escalate(model.SignalAmber, fmt.Sprintf(shortenerNotice, host))
		}
		if found := set.TrackingParams(u.RawQuery); len(found) > 0 {
			v.escalate(model.SignalAmber, trackingNotice)
			v.hidden = found
		}
	}

	var description, action string
	switch v.qrType {
	case model.TypePayment:
		description = paymentDescription
		action = fmt.Sprintf(paymentAction, host)
	case model.TypeAppDownload:
		description = appDownloadDescription
		action = fmt.Sprintf(appDownloadAction, host)
		v.notices = append(v.notices, appInstallNotice)
	default:
		description = websiteDescription
		action = fmt.Sprintf(websiteAction, host)
	}

	return model.AnalysisResult{
		Content:     content,
		Type:        v.qrType,
		Signal:      v.signal,
		Description: description,
		Action:      action,
		Awareness:   e.linkAwareness(v.notices),
		Details: model.URLDetails{
			RootDomain:        host,
			RegistrableDomain: registrableDomain(host),
			HiddenVariables:   v.hidden,
		},
	}
}

func (e *Engine) linkAwareness(notices []string) string {
	parts := make([]string, 0, len(notices)+1)
	if e.config.VerifyDestinationNotice {
		parts = append(parts, verifyDestinationNotice)
	}
	if len(notices) == 0 {
		parts = append(parts, nothingUnusualNotice)
	}
	parts = append(parts, notices...)
	return strings.Join(parts, " ")
}

// parseStrictURL accepts only absolute URLs with a scheme and a host.
func parseStrictURL(content string) (*url.URL, bool) {
	u, err := url.Parse(content)
	if err != nil {
		return nil, false
	}
	if u.Scheme == "" || u.Opaque != "" || u.Hostname() == "" {
		return nil, false
	}
	return u, true
}

// registrableDomain returns the eTLD+1 of host, or "" for IP literals and
// hosts without a registrable part.
func registrableDomain(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if net.ParseIP(host) != nil {
		return ""
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return registrable
}
