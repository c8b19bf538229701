package configuration

import "strconv"

// TwitterConfig holds the OAuth 2.0 user context used to post.
type TwitterConfig struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
	DryRun       bool
}

func GetTwitterConfig() *TwitterConfig {
	config := &TwitterConfig{
		ClientID:     getConfigValue(C.Twitter.ClientID, "TWITTER_CLIENT_ID", ""),
		ClientSecret: getConfigValue(C.Twitter.ClientSecret, "TWITTER_CLIENT_SECRET", ""),
		AccessToken:  getConfigValue(C.Twitter.AccessToken, "TWITTER_ACCESS_TOKEN", ""),
		RefreshToken: getConfigValue(C.Twitter.RefreshToken, "TWITTER_REFRESH_TOKEN", ""),
		DryRun:       C.Twitter.DryRun,
	}
	if v, err := strconv.ParseBool(getEnv("TWITTER_DRY_RUN", "")); err == nil {
		config.DryRun = v
	}
	// Without credentials nothing can be posted.
	if config.AccessToken == "" && config.RefreshToken == "" {
		config.DryRun = true
	}
	return config
}
