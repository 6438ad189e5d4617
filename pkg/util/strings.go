package util

import "regexp"

var locationSuffixRegex = regexp.MustCompile(`\s*\(.*?\)`)

// CleanLocationName strips the municipality suffix ResRobot appends to stop names,
// eg. "Uddevalla Kampenhof (Uddevalla kn)" becomes "Uddevalla Kampenhof".
func CleanLocationName(name string) string {
	return locationSuffixRegex.ReplaceAllString(name, "")
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}
