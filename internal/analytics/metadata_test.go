package analytics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vadimbarashkov/trimmer/internal/entity"
)

func TestDeviceClass(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"empty", "", entity.DeviceUnknown},
		{"desktop chrome", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", entity.DeviceDesktop},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148", entity.DeviceMobile},
		{"android phone", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36", entity.DeviceMobile},
		{"android tablet", "Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 Chrome/120.0 Safari/537.36", entity.DeviceTablet},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148", entity.DeviceTablet},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", entity.DeviceBot},
		{"curl", "curl/8.4.0", entity.DeviceBot},
		{"windows without browser token", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", entity.DeviceDesktop},
		{"blank", "   ", entity.DeviceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeviceClass(tt.ua))
		})
	}
}

func TestMetadataFromRequest(t *testing.T) {
	t.Run("all headers", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/abc2345", nil)
		r.Header.Set("Referer", "https://News.Example.com/post/1?utm=x")
		r.Header.Set("User-Agent", "curl/8.4.0")
		r.Header.Set("CF-IPCountry", "de")

		meta := MetadataFromRequest(r)

		assert.Equal(t, "news.example.com", meta.Referrer)
		assert.Equal(t, entity.DeviceBot, meta.Device)
		assert.Equal(t, "DE", meta.Country)
	})

	t.Run("fallback country header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/abc2345", nil)
		r.Header.Set("CF-IPCountry", "XX")
		r.Header.Set("X-Country-Code", "FR")

		assert.Equal(t, "FR", MetadataFromRequest(r).Country)
	})

	t.Run("nothing known", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/abc2345", nil)
		r.Header.Set("X-Country-Code", "France")

		meta := MetadataFromRequest(r)

		assert.Empty(t, meta.Referrer)
		assert.Equal(t, entity.DeviceUnknown, meta.Device)
		assert.Empty(t, meta.Country)
	})
}
