package testutil

import "github.com/Veraticus/qr-signal/internal/model"

// Payload is a sample QR payload with the verdict the default rules give it.
type Payload struct {
	Content string
	Type    model.QrType
	Signal  model.Signal
}

// Sample payloads, one per verdict path.
var (
	PlainWebsite   = Payload{"https://example.com/menu", model.TypeWebsite, model.SignalEmerald}
	TrackedWebsite = Payload{"https://example.com/?utm_source=flyer&fbclid=1", model.TypeWebsite, model.SignalAmber}
	ShortenedLink  = Payload{"https://bit.ly/3abc", model.TypeWebsite, model.SignalAmber}
	LoginPage      = Payload{"https://example.com/account/login", model.TypePayment, model.SignalAmethyst}
	PaymentLink    = Payload{"https://paypal.me/someone", model.TypePayment, model.SignalAmethyst}
	IPLogger       = Payload{"https://grabify.link/XYZ", model.TypeWebsite, model.SignalCrimson}
	AppStoreLink   = Payload{"https://play.google.com/store/apps/details?id=com.example", model.TypeAppDownload, model.SignalEmerald}
	MalformedLink  = Payload{"https://", model.TypeUnknown, model.SignalCrimson}
	WiFiNetwork    = Payload{"WIFI:S:Cafe;T:WPA;P:secret;;", model.TypeWiFi, model.SignalIndigo}
	ContactCard    = Payload{"BEGIN:VCARD\nFN:Alice\nEND:VCARD", model.TypeContact, model.SignalIndigo}
	EmailAddress   = Payload{"mailto:alice@example.com", model.TypeEmail, model.SignalIndigo}
	PhoneNumber    = Payload{"tel:+15550100", model.TypePhone, model.SignalIndigo}
	EmbeddedFile   = Payload{"data:application/pdf;base64,JVBERi0=", model.TypeFile, model.SignalCrimson}
	PlainText      = Payload{"hello world", model.TypeUnknown, model.SignalAmber}
)

// AllPayloads returns every sample payload.
func AllPayloads() []Payload {
	return []Payload{
		PlainWebsite, TrackedWebsite, ShortenedLink, LoginPage, PaymentLink,
		IPLogger, AppStoreLink, MalformedLink, WiFiNetwork, ContactCard,
		EmailAddress, PhoneNumber, EmbeddedFile, PlainText,
	}
}

// Contents returns the raw content of each payload.
func Contents(payloads ...Payload) []string {
	out := make([]string, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.Content)
	}
	return out
}
