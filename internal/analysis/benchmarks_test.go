package analysis

import (
	"fmt"
	"strings"
	"testing"
)

var benchmarkPayloads = []string{
	"https://example.com/products/42",
	"https://shop.example.co.uk/cart?utm_source=qr&utm_medium=poster&gclid=abc",
	"https://bit.ly/3xYz",
	"https://grabify.link/ABC123",
	"https://paypal.me/someone/25",
	"https://example.com/account/login",
	`WIFI:S:Cafe\;Guest;T:WPA;P:secret;H:false;;`,
	"BEGIN:VCARD\nVERSION:3.0\nFN:Alice\nEND:VCARD",
	"mailto:someone@example.com?subject=hi",
	"tel:+15550100",
	"data:application/pdf;base64,JVBERi0xLjQK",
	"just some words",
}

func BenchmarkEngine_Analyze(b *testing.B) {
	engine := New()

	for _, payload := range benchmarkPayloads {
		name := strings.SplitN(payload, ":", 2)[0]
		b.Run(fmt.Sprintf("%s_%d", name, len(payload)), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = engine.Analyze(payload)
			}
		})
	}
}

func BenchmarkEngine_AnalyzeLongQuery(b *testing.B) {
	engine := New()

	params := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		params = append(params, fmt.Sprintf("p%d=%d", i, i))
	}
	payload := "https://example.com/?" + strings.Join(params, "&") + "&utm_source=qr"

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Analyze(payload)
	}
}

func BenchmarkCached_Analyze(b *testing.B) {
	cached := NewCached(New(), len(benchmarkPayloads))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cached.Analyze(benchmarkPayloads[i%len(benchmarkPayloads)])
	}
}
