package analysis

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/model"
	"github.com/Veraticus/qr-signal/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Analyze_Scenarios(t *testing.T) {
	engine := New()

	tests := []struct {
		name       string
		input      string
		wantType   model.QrType
		wantSignal model.Signal
		check      func(t *testing.T, r model.AnalysisResult)
	}{
		{
			name:       "plain website",
			input:      "https://example.com/page",
			wantType:   model.TypeWebsite,
			wantSignal: model.SignalEmerald,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Equal(t, "example.com", r.RootDomain())
				assert.Empty(t, r.HiddenVariables())
				assert.Equal(t, "This is a link to a website.", r.Description)
				assert.Equal(t, "It will open your browser and go to example.com.", r.Action)
				assert.Equal(t, "Nothing unusual was found in this link.", r.Awareness)
			},
		},
		{
			name:       "tracked link",
			input:      "https://example.com/?utm_source=x&gclid=y",
			wantType:   model.TypeWebsite,
			wantSignal: model.SignalAmber,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Equal(t, []string{"utm_source", "gclid"}, r.HiddenVariables())
				assert.Equal(t, "This link includes tracking parameters to monitor your activity.", r.Awareness)
			},
		},
		{
			name:       "shortener",
			input:      "https://bit.ly/abc",
			wantType:   model.TypeWebsite,
			wantSignal: model.SignalAmber,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Contains(t, r.Awareness, "bit.ly")
				assert.Equal(t, "bit.ly", r.RootDomain())
			},
		},
		{
			name:       "ip logger",
			input:      "https://grabify.link/x",
			wantType:   model.TypeWebsite,
			wantSignal: model.SignalCrimson,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Contains(t, r.Awareness, "IP logging")
			},
		},
		{
			name:       "wifi",
			input:      "WIFI:S:MyNet;T:WPA;P:secret;;",
			wantType:   model.TypeWiFi,
			wantSignal: model.SignalIndigo,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Contains(t, r.Action, "MyNet")
				assert.Empty(t, r.RootDomain())
				assert.Nil(t, r.HiddenVariables())
				assert.Equal(t, model.WiFiDetails{SSID: "MyNet", Security: "WPA"}, r.Details)
			},
		},
		{
			name:       "empty string",
			input:      "",
			wantType:   model.TypeUnknown,
			wantSignal: model.SignalCrimson,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Equal(t, "", r.Content)
				assert.Equal(t, "The QR code is empty.", r.Description)
			},
		},
		{
			name:       "whitespace only",
			input:      " \t\n ",
			wantType:   model.TypeUnknown,
			wantSignal: model.SignalCrimson,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Equal(t, "", r.Content)
			},
		},
		{
			name:       "malformed url",
			input:      "https://",
			wantType:   model.TypeUnknown,
			wantSignal: model.SignalCrimson,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Contains(t, r.Description, "malformed data")
				assert.Empty(t, r.RootDomain())
			},
		},
		{
			name:       "invalid percent escape",
			input:      "https://example.com/%zz",
			wantType:   model.TypeUnknown,
			wantSignal: model.SignalCrimson,
		},
		{
			name:       "upper case host",
			input:      "HTTPS://EXAMPLE.COM/page",
			wantType:   model.TypeWebsite,
			wantSignal: model.SignalEmerald,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Equal(t, "example.com", r.RootDomain())
				assert.Equal(t, "It will open your browser and go to example.com.", r.Action)
			},
		},
		{
			name:       "upper case shortener",
			input:      "https://BIT.LY/abc",
			wantType:   model.TypeWebsite,
			wantSignal: model.SignalAmber,
			check: func(t *testing.T, r model.AnalysisResult) {
				t.Helper()
				assert.Contains(t, r.Awareness, "(bit.ly)")
				assert.NotContains(t, r.Awareness, "BIT.LY")
				assert.Equal(t, "bit.ly", r.RootDomain())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := engine.Analyze(tt.input)
			assert.Equal(t, tt.wantType, r.Type)
			assert.Equal(t, tt.wantSignal, r.Signal)
			assert.NotEmpty(t, r.Awareness)
			if tt.check != nil {
				tt.check(t, r)
			}
		})
	}
}

func TestEngine_Analyze_Escalation(t *testing.T) {
	engine := New()

	tests := []struct {
		name        string
		input       string
		wantType    model.QrType
		wantSignal  model.Signal
		wantHidden  []string
		wantNotices []string
	}{
		{
			name:        "shortener with tracking stays amber with both notices",
			input:       "https://bit.ly/abc?utm_campaign=spring&fbclid=1",
			wantType:    model.TypeWebsite,
			wantSignal:  model.SignalAmber,
			wantHidden:  []string{"utm_campaign", "fbclid"},
			wantNotices: []string{"It uses a URL shortener (bit.ly), which hides the final destination. Proceed with caution.", trackingNotice},
		},
		{
			name:        "ip logger beats transactional path",
			input:       "https://grabify.link/login?utm_source=x",
			wantType:    model.TypePayment,
			wantSignal:  model.SignalCrimson,
			wantNotices: []string{ipLoggerNotice},
		},
		{
			name:        "payment provider",
			input:       "https://paypal.me/alice",
			wantType:    model.TypePayment,
			wantSignal:  model.SignalAmethyst,
			wantNotices: []string{transactionalNotice},
		},
		{
			name:        "transactional keyword suppresses tracking",
			input:       "https://example.com/account/settings?utm_source=mail",
			wantType:    model.TypePayment,
			wantSignal:  model.SignalAmethyst,
			wantNotices: []string{transactionalNotice},
		},
		{
			name:        "app download gets install notice",
			input:       "https://play.google.com/store/apps/details?id=com.example",
			wantType:    model.TypeAppDownload,
			wantSignal:  model.SignalEmerald,
			wantNotices: []string{appInstallNotice},
		},
		{
			name:        "tracked apk",
			input:       "https://cdn.example.com/app.apk?utm_medium=qr",
			wantType:    model.TypeAppDownload,
			wantSignal:  model.SignalAmber,
			wantHidden:  []string{"utm_medium"},
			wantNotices: []string{trackingNotice, appInstallNotice},
		},
		{
			name:        "ordinary query params are not hidden variables",
			input:       "https://example.com/search?q=qr&page=2",
			wantType:    model.TypeWebsite,
			wantSignal:  model.SignalEmerald,
			wantNotices: []string{nothingUnusualNotice},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := engine.Analyze(tt.input)
			assert.Equal(t, tt.wantType, r.Type)
			assert.Equal(t, tt.wantSignal, r.Signal)
			assert.Equal(t, tt.wantHidden, r.HiddenVariables())
			assert.Equal(t, strings.Join(tt.wantNotices, " "), r.Awareness)
		})
	}
}

func TestEngine_Analyze_SimpleProtocols(t *testing.T) {
	engine := New()

	tests := []struct {
		name        string
		input       string
		wantType    model.QrType
		wantAction  string
		wantDetails model.Details
	}{
		{
			name:        "wifi without ssid",
			input:       "WIFI:T:WPA;P:secret;;",
			wantType:    model.TypeWiFi,
			wantAction:  `Your device will ask to connect to the network named "an unknown network".`,
			wantDetails: model.WiFiDetails{Security: "WPA"},
		},
		{
			name:        "wifi escaped ssid and hidden flag",
			input:       `WIFI:S:Cafe\;Bar;T:nopass;H:true;;`,
			wantType:    model.TypeWiFi,
			wantAction:  `Your device will ask to connect to the network named "Cafe;Bar".`,
			wantDetails: model.WiFiDetails{SSID: "Cafe;Bar", Security: "nopass", Hidden: true},
		},
		{
			name:        "contact",
			input:       "BEGIN:VCARD\nFN:Alice\nEND:VCARD",
			wantType:    model.TypeContact,
			wantAction:  "Your device will offer to save a new contact.",
			wantDetails: model.ContactDetails{},
		},
		{
			name:        "email with subject",
			input:       "mailto:alice@example.com?subject=Hi&body=There",
			wantType:    model.TypeEmail,
			wantAction:  "It will open your email app with a new draft addressed to alice@example.com.",
			wantDetails: model.EmailDetails{Address: "alice@example.com"},
		},
		{
			name:        "email without address",
			input:       "mailto:?subject=Hi",
			wantType:    model.TypeEmail,
			wantAction:  "It will open your email app with a new draft addressed to an unspecified recipient.",
			wantDetails: model.EmailDetails{},
		},
		{
			name:        "upper case email prefix",
			input:       "MAILTO:bob@example.com",
			wantType:    model.TypeEmail,
			wantAction:  "It will open your email app with a new draft addressed to bob@example.com.",
			wantDetails: model.EmailDetails{Address: "bob@example.com"},
		},
		{
			name:        "phone",
			input:       "tel:+1-555-0100",
			wantType:    model.TypePhone,
			wantAction:  "Your device will prompt you to call the number +1-555-0100.",
			wantDetails: model.PhoneDetails{Number: "+1-555-0100"},
		},
		{
			name:        "phone without number",
			input:       "tel:",
			wantType:    model.TypePhone,
			wantAction:  "Your device will prompt you to call the number an unknown number.",
			wantDetails: model.PhoneDetails{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := engine.Analyze(tt.input)
			assert.Equal(t, tt.wantType, r.Type)
			assert.Equal(t, model.SignalIndigo, r.Signal)
			assert.Equal(t, tt.wantAction, r.Action)
			assert.Equal(t, tt.wantDetails, r.Details)
			assert.NotEmpty(t, r.Awareness)
		})
	}
}

func TestEngine_Analyze_FixedVerdicts(t *testing.T) {
	engine := New()

	file := engine.Analyze("data:application/octet-stream;base64,TVqQAAMAAAAEAAAA")
	assert.Equal(t, model.TypeFile, file.Type)
	assert.Equal(t, model.SignalCrimson, file.Signal)
	assert.Contains(t, file.Awareness, "high-risk")
	assert.Equal(t, model.FileDetails{MediaType: "application/octet-stream"}, file.Details)

	text := engine.Analyze("  -----BEGIN PGP MESSAGE-----  ")
	assert.Equal(t, model.TypeUnknown, text.Type)
	assert.Equal(t, model.SignalAmber, text.Signal)
	assert.Contains(t, text.Awareness, "private key")
	assert.Equal(t, "-----BEGIN PGP MESSAGE-----", text.Content)
}

func TestEngine_Analyze_RegistrableDomain(t *testing.T) {
	engine := New()

	tests := []struct {
		input string
		want  string
	}{
		{input: "https://shop.example.co.uk/item", want: "example.co.uk"},
		{input: "https://www.example.com", want: "example.com"},
		{input: "http://192.168.1.10/admin", want: ""},
		{input: "http://[::1]:8080/", want: ""},
		{input: "http://localhost:3000/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := engine.Analyze(tt.input)
			require.IsType(t, model.URLDetails{}, r.Details)
			assert.Equal(t, tt.want, r.RegistrableDomain())
		})
	}
}

func TestEngine_VerifyDestinationNotice(t *testing.T) {
	engine := NewEngine(Deps{}, Config{VerifyDestinationNotice: true})

	plain := engine.Analyze("https://example.com/page")
	assert.Equal(t, verifyDestinationNotice+" "+nothingUnusualNotice, plain.Awareness)

	logger := engine.Analyze("https://iplogger.org/abc")
	assert.Equal(t, verifyDestinationNotice+" "+ipLoggerNotice, logger.Awareness)

	// Non-link payloads are unaffected.
	wifi := engine.Analyze("WIFI:S:Home;;")
	assert.NotContains(t, wifi.Awareness, verifyDestinationNotice)
}

func TestEngine_CustomRules(t *testing.T) {
	tables := rules.DefaultTables().Merge(rules.Tables{
		Shorteners:     []string{"cutt.ly"},
		TrackingParams: []string{"ref"},
	})
	set, err := rules.Compile(tables)
	require.NoError(t, err)

	engine := NewEngine(Deps{Rules: set}, DefaultConfig())

	r := engine.Analyze("https://cutt.ly/xyz?ref=poster")
	assert.Equal(t, model.SignalAmber, r.Signal)
	assert.Equal(t, []string{"ref"}, r.HiddenVariables())

	assert.Equal(t, model.SignalEmerald, New().Analyze("https://cutt.ly/xyz?ref=poster").Signal)
}

func TestEngine_Analyze_Idempotent(t *testing.T) {
	engine := New()
	inputs := []string{
		"https://bit.ly/abc?utm_source=x",
		"WIFI:S:MyNet;;",
		"",
		"https://",
		"data:application/pdf,",
		"just text",
	}

	for _, in := range inputs {
		assert.Equal(t, engine.Analyze(in), engine.Analyze(in), in)
	}
}

func TestEngine_Analyze_LogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := common.NewLogger(&buf, slog.LevelDebug, "console")
	require.NoError(t, err)

	engine := NewEngine(Deps{Logger: logger}, DefaultConfig())
	engine.Analyze("https://bit.ly/abc")

	assert.Contains(t, buf.String(), "Analyzed payload")
	assert.Contains(t, buf.String(), "signal=AMBER")
}

func FuzzEngine_Analyze(f *testing.F) {
	seeds := []string{
		"",
		"https://example.com/?utm_source=x&gclid=y",
		"https://",
		"http://[::1",
		"WIFI:S:;;",
		"BEGIN:VCARD",
		"mailto:",
		"tel:",
		"data:application",
		"\xff\xfe",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	engine := New()
	f.Fuzz(func(t *testing.T, input string) {
		r := engine.Analyze(input)

		if !r.Type.IsValid() {
			t.Fatalf("invalid type %q for %q", r.Type, input)
		}
		if !r.Signal.IsValid() {
			t.Fatalf("invalid signal %q for %q", r.Signal, input)
		}
		if r.Awareness == "" {
			t.Fatalf("empty awareness for %q", input)
		}
		if r.Details == nil {
			t.Fatalf("nil details for %q", input)
		}
		if _, isURL := r.Details.(model.URLDetails); isURL != r.Type.IsURL() {
			t.Fatalf("details %T do not match type %q", r.Details, r.Type)
		}
		if r.Content != strings.TrimSpace(input) {
			t.Fatalf("content %q is not the trimmed input", r.Content)
		}
	})
}
