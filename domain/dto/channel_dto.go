package dto

import "collab-notifier/domain/model"

// Res is the generic error body returned by the API.
type Res struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}

// ChannelBlacklistRequest updates the blacklist flags of a registered channel.
// Flags left out of the body are not changed.
type ChannelBlacklistRequest struct {
	URL                string `json:"url" binding:"required"`
	IsHostBlacklisted  *bool  `json:"is_host_blacklisted"`
	IsGuestBlacklisted *bool  `json:"is_guest_blacklisted"`
}

type NotifyPreviewRequest struct {
	URL string `json:"url" binding:"required"`
}

type NotifyCandidate struct {
	Variant string `json:"variant"`
	Text    string `json:"text"`
	Valid   bool   `json:"valid"`
}

// NotifyPreviewResponse shows what the notifier would post for a video.
type NotifyPreviewResponse struct {
	Video        model.VideoRecord `json:"video"`
	Participants []string          `json:"participants"`
	Eligible     bool              `json:"eligible"`
	Candidates   []NotifyCandidate `json:"candidates"`
	Message      string            `json:"message,omitempty"`
}
