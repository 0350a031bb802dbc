package classification

import "github.com/Veraticus/qr-signal/internal/model"

// DefaultPrefixes returns the standard QR payload prefixes.
// URL schemes come first; the remaining prefixes cannot overlap.
func DefaultPrefixes() []Prefix {
	return []Prefix{
		{Name: "HTTPS URL", Prefix: "https://", Type: model.TypeWebsite, Priority: 100},
		{Name: "HTTP URL", Prefix: "http://", Type: model.TypeWebsite, Priority: 100},
		{Name: "Wi-Fi Network", Prefix: "WIFI:", Type: model.TypeWiFi, Priority: 90},
		{Name: "vCard", Prefix: "BEGIN:VCARD", Type: model.TypeContact, Priority: 80},
		{Name: "Email", Prefix: "mailto:", Type: model.TypeEmail, Priority: 70},
		{Name: "Phone", Prefix: "tel:", Type: model.TypePhone, Priority: 60},
		{Name: "Embedded File", Prefix: "data:application", Type: model.TypeFile, Priority: 50},
	}
}
