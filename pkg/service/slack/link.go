package slack

import (
	"net/url"
	"strings"
)

// scrubbedSegments maps a path segment to the placeholder that
// replaces the segment following it.
var scrubbedSegments = map[string]string{
	"organizations": "organization",
	"issues":        "issue_id",
	"events":        "event_id",
}

// ScrubLink removes unique information from a platform URL so links
// can be aggregated. Identifier path segments and the project query
// parameter are replaced with placeholders.
func ScrubLink(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := u.Query()
	if query.Has("project") {
		query.Set("project", "{project}")
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, segment := range segments {
		if placeholder, ok := scrubbedSegments[segment]; ok && i+1 < len(segments) {
			segments[i+1] = "{" + placeholder + "}"
		}
	}

	return strings.Join(segments, "/") + "/" + query.Encode()
}
