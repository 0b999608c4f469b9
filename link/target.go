package link

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Target is a channel or VOD the user asked to resolve.
type Target struct {
	Kind  Kind
	Value string
}

var (
	vodIDPattern   = regexp.MustCompile(`^v?(\d+)$`)
	channelPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,25}$`)
)

// ParseTarget guesses the kind of a free-form argument.
// Numeric ids are VODs, anything else alphanumeric is a channel.
// twitch.tv URLs of both shapes are accepted as well.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("empty target")
	}

	if strings.Contains(raw, "twitch.tv") {
		return parseTargetURL(raw)
	}

	if m := vodIDPattern.FindStringSubmatch(raw); m != nil {
		return Target{Kind: KindVOD, Value: m[1]}, nil
	}

	if channelPattern.MatchString(raw) {
		return Target{Kind: KindStream, Value: strings.ToLower(raw)}, nil
	}

	return Target{}, fmt.Errorf("not a channel name or vod id: %q", raw)
}

func parseTargetURL(raw string) (Target, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("parse url: %w", err)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "twitch.tv" {
		return Target{}, fmt.Errorf("unsupported host %q", u.Hostname())
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "videos" && vodIDPattern.MatchString(parts[1]):
		return Target{Kind: KindVOD, Value: vodIDPattern.FindStringSubmatch(parts[1])[1]}, nil
	case len(parts) == 1 && channelPattern.MatchString(parts[0]):
		return Target{Kind: KindStream, Value: strings.ToLower(parts[0])}, nil
	}

	return Target{}, fmt.Errorf("no channel or vod in %q", raw)
}
