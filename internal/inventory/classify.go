package inventory

// classify.go derives the closed category and channel classifications from
// free-text cells. Both classifiers are ordered rule lists evaluated top-down
// so the priority between overlapping keywords is explicit.

import "strings"

// categoryRule maps a keyword to a category; rules are checked in order and
// the first keyword found in the title wins.
type categoryRule struct {
	keyword  string
	category LicenseTypeCategory
}

var categoryRules = []categoryRule{
	{"license", CategoryLicense},
	{"permit", CategoryPermit},
	{"stamp", CategoryStamp},
	{"registration", CategoryRegistration},
	{"certificate", CategoryCertificate},
	{"approval", CategoryApproval},
}

// ClassifyLicenseType derives the closed category from a free-text
// license/permit title. Titles matching no rule classify as Other.
func ClassifyLicenseType(title string) LicenseTypeCategory {
	t := strings.ToLower(title)
	for _, rule := range categoryRules {
		if strings.Contains(t, rule.keyword) {
			return rule.category
		}
	}
	return CategoryOther
}

// Keyword sets indicating each side of the access-channel split. "Both"
// requires evidence from each set.
var (
	onlineTerms = []string{"online", "web", "internet", "electronic", "e-file", "portal", "digital"}
	manualTerms = []string{"manual", "in-person", "in person", "mail", "paper", "walk-in", "walk in", "counter", "office"}
)

// ClassifyAccessMode derives the access channel from a free-text access mode.
// Text mentioning both online and manual submission classifies as Both;
// text mentioning neither classifies as Unknown.
func ClassifyAccessMode(mode string) AccessChannel {
	m := strings.ToLower(mode)

	online := containsAny(m, onlineTerms)
	manual := containsAny(m, manualTerms)

	switch {
	case online && manual:
		return ChannelBoth
	case online:
		return ChannelOnline
	case manual:
		return ChannelManual
	default:
		return ChannelUnknown
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
