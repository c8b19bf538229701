package model

// ChannelRecord is a registry entry for a known VTuber channel.
// Missing blacklist flags read as false.
type ChannelRecord struct {
	URL                ChannelURL `json:"url"`
	Name               string     `json:"name"`
	Thumbnail          *string    `json:"thumbnail,omitempty"`
	Affiliations       []string   `json:"affiliations,omitempty"`
	IsHostBlacklisted  bool       `json:"is_host_blacklisted"`
	IsGuestBlacklisted bool       `json:"is_guest_blacklisted"`
}

// BlacklistUpdate changes only the flags that are set.
type BlacklistUpdate struct {
	IsHostBlacklisted  *bool
	IsGuestBlacklisted *bool
}

func (u BlacklistUpdate) Empty() bool {
	return u.IsHostBlacklisted == nil && u.IsGuestBlacklisted == nil
}
