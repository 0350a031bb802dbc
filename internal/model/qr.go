// Package model defines the core domain models used throughout the application.
package model

// QrType is the structural type of a decoded QR payload.
type QrType string

// QR payload types.
const (
	TypeWebsite     QrType = "Website"
	TypePayment     QrType = "Payment"
	TypeWiFi        QrType = "Wi-Fi"
	TypeContact     QrType = "Contact"
	TypeEmail       QrType = "Email"
	TypePhone       QrType = "Phone"
	TypeAppDownload QrType = "App Download"
	TypeFile        QrType = "File"
	TypeUnknown     QrType = "Unknown"
)

// AllTypes lists every QrType in display order.
func AllTypes() []QrType {
	return []QrType{
		TypeWebsite,
		TypePayment,
		TypeWiFi,
		TypeContact,
		TypeEmail,
		TypePhone,
		TypeAppDownload,
		TypeFile,
		TypeUnknown,
	}
}

// IsValid reports whether t is one of the known types.
func (t QrType) IsValid() bool {
	for _, known := range AllTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// IsURL reports whether the type is resolved through the URL branch.
func (t QrType) IsURL() bool {
	return t == TypeWebsite || t == TypePayment || t == TypeAppDownload
}

func (t QrType) String() string {
	return string(t)
}

// Signal is the discrete risk verdict assigned to a payload.
type Signal string

// Signals, listed from least to most severe.
const (
	SignalEmerald  Signal = "EMERALD"
	SignalIndigo   Signal = "INDIGO"
	SignalAmber    Signal = "AMBER"
	SignalAmethyst Signal = "AMETHYST"
	SignalCrimson  Signal = "CRIMSON"
)

// AllSignals lists every Signal ordered by severity.
func AllSignals() []Signal {
	return []Signal{SignalEmerald, SignalIndigo, SignalAmber, SignalAmethyst, SignalCrimson}
}

// Severity returns the display rank of the signal. Unknown signals rank -1.
func (s Signal) Severity() int {
	for i, known := range AllSignals() {
		if s == known {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is one of the known signals.
func (s Signal) IsValid() bool {
	return s.Severity() >= 0
}

// Label returns a short human description of the signal.
func (s Signal) Label() string {
	switch s {
	case SignalEmerald:
		return "transparent"
	case SignalIndigo:
		return "functional"
	case SignalAmber:
		return "obscured"
	case SignalAmethyst:
		return "transactional"
	case SignalCrimson:
		return "critical"
	default:
		return "unknown"
	}
}

func (s Signal) String() string {
	return string(s)
}
