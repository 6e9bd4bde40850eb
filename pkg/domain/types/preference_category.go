package types

import "fmt"

// PreferenceCategory classifies a learned preference statement
type PreferenceCategory string

const (
	PreferenceCommunicationStyle PreferenceCategory = "communication_style"
	PreferenceTiming             PreferenceCategory = "timing"
	PreferencePricing            PreferenceCategory = "pricing"
	PreferenceTone               PreferenceCategory = "tone"
	PreferenceUrgencyThreshold   PreferenceCategory = "urgency_threshold"
	PreferenceFollowUpFrequency  PreferenceCategory = "follow_up_frequency"
	PreferenceResponseLength     PreferenceCategory = "response_length"
	PreferenceFormality          PreferenceCategory = "formality"
	PreferenceAutomationLevel    PreferenceCategory = "automation_level"
)

// AllPreferenceCategories returns all valid preference categories
func AllPreferenceCategories() []PreferenceCategory {
	return []PreferenceCategory{
		PreferenceCommunicationStyle,
		PreferenceTiming,
		PreferencePricing,
		PreferenceTone,
		PreferenceUrgencyThreshold,
		PreferenceFollowUpFrequency,
		PreferenceResponseLength,
		PreferenceFormality,
		PreferenceAutomationLevel,
	}
}

// IsValid checks if the preference category is valid
func (c PreferenceCategory) IsValid() bool {
	switch c {
	case PreferenceCommunicationStyle,
		PreferenceTiming,
		PreferencePricing,
		PreferenceTone,
		PreferenceUrgencyThreshold,
		PreferenceFollowUpFrequency,
		PreferenceResponseLength,
		PreferenceFormality,
		PreferenceAutomationLevel:
		return true
	default:
		return false
	}
}

// String returns the string representation of the preference category
func (c PreferenceCategory) String() string {
	return string(c)
}

// ParsePreferenceCategory parses a string into a PreferenceCategory
func ParsePreferenceCategory(s string) (PreferenceCategory, error) {
	c := PreferenceCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid preference category: %s", s)
	}
	return c, nil
}
