package config

// NewLearnerForTest creates a Learner config for testing purposes
func NewLearnerForTest(configPath string) *Learner {
	return &Learner{configPath: configPath}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID, alertChannel string) *Slack {
	return &Slack{
		botToken:     botToken,
		channelID:    channelID,
		alertChannel: alertChannel,
	}
}
