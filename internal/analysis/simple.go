package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/qr-signal/internal/classification"
	"github.com/Veraticus/qr-signal/internal/model"
)

var (
	// Field values may contain backslash-escaped separators.
	wifiSSIDRegex     = regexp.MustCompile(`S:((?:\\.|[^\\;])+);`)
	wifiSecurityRegex = regexp.MustCompile(`T:([^;]*);`)
	wifiHiddenRegex   = regexp.MustCompile(`(?i)H:(true|false);`)

	wifiUnescaper = strings.NewReplacer(`\;`, ";", `\,`, ",", `\:`, ":", `\"`, `"`, `\\`, `\`)
)

// analyzeSimple handles payloads that trigger a device-local action. These
// always carry the INDIGO signal; missing fields fall back to placeholders.
func analyzeSimple(content string, qrType model.QrType) model.AnalysisResult {
	result := model.AnalysisResult{
		Content: content,
		Type:    qrType,
		Signal:  model.SignalIndigo,
	}

	switch qrType {
	case model.TypeWiFi:
		details := parseWiFi(content)
		ssid := details.SSID
		if ssid == "" {
			ssid = wifiUnknownSSID
		}
		result.Description = wifiDescription
		result.Action = fmt.Sprintf(wifiAction, ssid)
		result.Awareness = wifiAwareness
		result.Details = details
	case model.TypeContact:
		result.Description = contactDescription
		result.Action = contactAction
		result.Awareness = contactAwareness
		result.Details = model.ContactDetails{}
	case model.TypeEmail:
		address, _, _ := strings.Cut(classification.StripPrefix(content, "mailto:"), "?")
		shown := address
		if shown == "" {
			shown = emailUnknownAddress
		}
		result.Description = emailDescription
		result.Action = fmt.Sprintf(emailAction, shown)
		result.Awareness = emailAwareness
		result.Details = model.EmailDetails{Address: address}
	case model.TypePhone:
		number := classification.StripPrefix(content, "tel:")
		shown := number
		if shown == "" {
			shown = phoneUnknownNumber
		}
		result.Description = phoneDescription
		result.Action = fmt.Sprintf(phoneAction, shown)
		result.Awareness = phoneAwareness
		result.Details = model.PhoneDetails{Number: number}
	default:
		return unknownResult(content)
	}

	return result
}

func parseWiFi(content string) model.WiFiDetails {
	var details model.WiFiDetails
	if m := wifiSSIDRegex.FindStringSubmatch(content); m != nil {
		details.SSID = wifiUnescaper.Replace(m[1])
	}
	if m := wifiSecurityRegex.FindStringSubmatch(content); m != nil {
		details.Security = m[1]
	}
	if m := wifiHiddenRegex.FindStringSubmatch(content); m != nil {
		details.Hidden = strings.EqualFold(m[1], "true")
	}
	return details
}
