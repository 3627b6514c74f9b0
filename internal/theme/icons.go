package theme

import "strings"

// IconClass maps a social network name to a Font Awesome icon class.
// Matching is case-insensitive and tolerates the common misspellings
// people put in their resumes. Unknown networks fall back to a guessed
// brand icon; nothing validates that the class exists in the icon set.
func IconClass(network string) string {
	switch strings.ToLower(network) {
	case "google-plus", "googleplus":
		return "fab fa-google-plus"
	case "flickr", "flicker":
		return "fab fa-flickr"
	case "dribbble", "dribble":
		return "fab fa-dribbble"
	case "codepen":
		return "fab fa-codepen"
	case "soundcloud":
		return "fab fa-soundcloud"
	case "reddit":
		return "fab fa-reddit"
	case "tumblr", "tumbler":
		return "fab fa-tumblr"
	case "stack-overflow", "stackoverflow":
		return "fab fa-stack-overflow"
	case "blog", "rss":
		return "fas fa-rss"
	case "gitlab":
		return "fab fa-gitlab"
	case "keybase":
		// keybase has no brand icon in the free set
		return "fas fa-key"
	default:
		return "fab fa-" + strings.ToLower(network)
	}
}
