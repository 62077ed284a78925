package entity

import "time"

// Coarse device classes derived from the visitor's User-Agent.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

// ClickMetadata holds best-effort attributes of a visit.
type ClickMetadata struct {
	Referrer string // Referrer is the host of the referring page, if any.
	Device   string // Device is one of the Device* classes.
	Country  string // Country is an ISO country code supplied by the edge, if any.
}

// ClickEvent is one recorded visit to a link.
type ClickEvent struct {
	LinkID    string
	Timestamp time.Time
	Metadata  ClickMetadata
}

// LinkStats aggregates the clicks recorded for a link.
type LinkStats struct {
	LinkID       string
	ClickCount   int64
	RecentEvents []ClickEvent    // RecentEvents is ordered newest first.
	Devices      map[string]int64 // Devices counts events per device class.
	Countries    map[string]int64 // Countries counts events per country code.
}
