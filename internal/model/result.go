package model

import (
	"encoding/json"
	"fmt"
)

// Details carries the fields specific to one analyzer branch.
// The set of implementations is closed to this package.
type Details interface {
	isDetails()
}

// URLDetails is produced by the website, payment and app download branch.
type URLDetails struct {
	RootDomain        string
	RegistrableDomain string
	HiddenVariables   []string
}

// WiFiDetails is produced for WIFI: payloads.
type WiFiDetails struct {
	SSID     string
	Security string
	Hidden   bool
}

// ContactDetails is produced for vCard payloads.
type ContactDetails struct{}

// EmailDetails is produced for mailto: payloads.
type EmailDetails struct {
	Address string
}

// PhoneDetails is produced for tel: payloads.
type PhoneDetails struct {
	Number string
}

// FileDetails is produced for embedded data: files.
type FileDetails struct {
	MediaType string
}

// TextDetails is produced for unrecognized payloads and sentinel verdicts.
type TextDetails struct{}

func (URLDetails) isDetails()     {}
func (WiFiDetails) isDetails()    {}
func (ContactDetails) isDetails() {}
func (EmailDetails) isDetails()   {}
func (PhoneDetails) isDetails()   {}
func (FileDetails) isDetails()    {}
func (TextDetails) isDetails()    {}

// AnalysisResult is the outcome of analyzing a single payload.
// Values are never mutated after the engine returns them.
type AnalysisResult struct {
	Details     Details
	Content     string
	Type        QrType
	Signal      Signal
	Description string
	Action      string
	Awareness   string
}

// RootDomain returns the parsed hostname for URL results and "" otherwise.
func (r AnalysisResult) RootDomain() string {
	if d, ok := r.Details.(URLDetails); ok {
		return d.RootDomain
	}
	return ""
}

// RegistrableDomain returns the eTLD+1 of the hostname for URL results.
func (r AnalysisResult) RegistrableDomain() string {
	if d, ok := r.Details.(URLDetails); ok {
		return d.RegistrableDomain
	}
	return ""
}

// HiddenVariables returns a copy of the tracking parameters found in a URL result.
func (r AnalysisResult) HiddenVariables() []string {
	d, ok := r.Details.(URLDetails)
	if !ok || len(d.HiddenVariables) == 0 {
		return nil
	}
	out := make([]string, len(d.HiddenVariables))
	copy(out, d.HiddenVariables)
	return out
}

// Subject returns the most salient value of the payload for list views.
func (r AnalysisResult) Subject() string {
	switch d := r.Details.(type) {
	case URLDetails:
		if d.RootDomain != "" {
			return d.RootDomain
		}
	case WiFiDetails:
		if d.SSID != "" {
			return d.SSID
		}
	case EmailDetails:
		if d.Address != "" {
			return d.Address
		}
	case PhoneDetails:
		if d.Number != "" {
			return d.Number
		}
	}
	return string(r.Type)
}

type resultJSON struct {
	QrContent         string   `json:"qrContent"`
	Type              QrType   `json:"type"`
	Signal            Signal   `json:"signal"`
	Description       string   `json:"description"`
	Action            string   `json:"action"`
	Awareness         string   `json:"awareness"`
	RootDomain        string   `json:"rootDomain,omitempty"`
	RegistrableDomain string   `json:"registrableDomain,omitempty"`
	HiddenVariables   []string `json:"hiddenVariables,omitempty"`
	SSID              string   `json:"ssid,omitempty"`
	Security          string   `json:"security,omitempty"`
	Hidden            bool     `json:"hidden,omitempty"`
	Address           string   `json:"address,omitempty"`
	Number            string   `json:"number,omitempty"`
	MediaType         string   `json:"mediaType,omitempty"`
}

// MarshalJSON flattens the result into a single record.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		QrContent:   r.Content,
		Type:        r.Type,
		Signal:      r.Signal,
		Description: r.Description,
		Action:      r.Action,
		Awareness:   r.Awareness,
	}

	switch d := r.Details.(type) {
	case URLDetails:
		out.RootDomain = d.RootDomain
		out.RegistrableDomain = d.RegistrableDomain
		out.HiddenVariables = d.HiddenVariables
	case WiFiDetails:
		out.SSID = d.SSID
		out.Security = d.Security
		out.Hidden = d.Hidden
	case EmailDetails:
		out.Address = d.Address
	case PhoneDetails:
		out.Number = d.Number
	case FileDetails:
		out.MediaType = d.MediaType
	}

	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the details variant from the flattened record.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if !in.Type.IsValid() {
		return fmt.Errorf("unknown qr type %q", in.Type)
	}
	if !in.Signal.IsValid() {
		return fmt.Errorf("unknown signal %q", in.Signal)
	}

	*r = AnalysisResult{
		Content:     in.QrContent,
		Type:        in.Type,
		Signal:      in.Signal,
		Description: in.Description,
		Action:      in.Action,
		Awareness:   in.Awareness,
	}

	switch {
	case in.Type.IsURL():
		r.Details = URLDetails{
			RootDomain:        in.RootDomain,
			RegistrableDomain: in.RegistrableDomain,
			HiddenVariables:   in.HiddenVariables,
		}
	case in.Type == TypeWiFi:
		r.Details = WiFiDetails{SSID: in.SSID, Security: in.Security, Hidden: in.Hidden}
	case in.Type == TypeContact:
		r.Details = ContactDetails{}
	case in.Type == TypeEmail:
		r.Details = EmailDetails{Address: in.Address}
	case in.Type == TypePhone:
		r.Details = PhoneDetails{Number: in.Number}
	case in.Type == TypeFile:
		r.Details = FileDetails{MediaType: in.MediaType}
	default:
		r.Details = TextDetails{}
	}

	return nil
}
