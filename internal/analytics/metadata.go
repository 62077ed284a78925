package analytics

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mileusna/useragent"
	"github.com/vadimbarashkov/trimmer/internal/entity"
)

var countryHeaders = []string{"CF-IPCountry", "X-Country-Code"}


// MetadataFromRequest derives coarse click metadata from a redirect request.
func MetadataFromRequest(r *http.Request) entity.ClickMetadata {
	return entity.ClickMetadata{
		Referrer: referrerHost(r.Referer()),
		Device:   DeviceClass(r.UserAgent()),
		Country:  country(r.Header),
	}
}

func referrerHost(ref string) string {
	if ref == "" {
		return ""
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	return strings.ToLower(u.Hostname())
}

// DeviceClass maps a User-Agent to one of the entity.Device* classes.
// Clients that name no platform at all (curl, scripts) count as bots.
func DeviceClass(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return entity.DeviceUnknown
	}

	ua := useragent.Parse(userAgent)

	switch {
	case ua.Bot:
		return entity.DeviceBot
	case ua.Tablet, ua.OS == useragent.Android && !ua.Mobile:
		return entity.DeviceTablet
	case ua.Mobile:
		return entity.DeviceMobile
	case ua.Desktop:
		return entity.DeviceDesktop
	case ua.OS == "":
		return entity.DeviceBot
	default:
		return entity.DeviceDesktop
	}
}

func country(h http.Header) string {
	for _, name := range countryHeaders {
		c := strings.ToUpper(strings.TrimSpace(h.Get(name)))
		if len(c) != 2 || c == "XX" {
			continue
		}
		if c[0] < 'A' || c[0] > 'Z' || c[1] < 'A' || c[1] > 'Z' {
			continue
		}
		return c
	}

	return ""
}
