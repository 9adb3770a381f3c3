// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"regexp"

	"github.com/taibuivan/cinedex/internal/platform/constants"
)

// # Featured Carousel

// Featured returns up to limit items rated at least 8, in catalog order.
// A non-positive limit falls back to the default carousel length.
func Featured(items []Movie, limit int) []Movie {
	if limit <= 0 {
		limit = constants.DefaultFeaturedLimit
	}

	featured := make([]Movie, 0, limit)
	for _, m := range items {
		if len(featured) == limit {
			break
		}
		if m.Rating >= constants.FeaturedMinRating {
			featured = append(featured, m)
		}
	}
	return featured
}

// # Trailers

const youTubeIDLength = 11

// Matches watch?v=, &v=, embed/, v/, u/x/ and youtu.be/ forms.
var youTubePattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// TrailerID extracts the YouTube video id from a trailer URL.
func TrailerID(trailerURL string) (string, bool) {
	match := youTubePattern.FindStringSubmatch(trailerURL)
	if match == nil || len(match[2]) != youTubeIDLength {
		return "", false
	}
	return match[2], true
}

// EmbedURL returns the autoplay player URL for a video id.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID + "?autoplay=1"
}
