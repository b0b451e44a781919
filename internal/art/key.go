package art

import "strings"

// artistSeparators are tried in order; each split keeps the first segment
var artistSeparators = []string{", ", "/", " & ", "; "}

// BackgroundKey derives the artist image name from an artist tag:
// "Daft Punk, Justice" -> "daft punk"
func BackgroundKey(artist string) string {
	key := artist
	for _, sep := range artistSeparators {
		key, _, _ = strings.Cut(key, sep)
	}
	return strings.ToLower(key)
}
