package vod

import (
	"regexp"

	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/util"
)

// thumbnailPattern matches the templated thumbnail URL of a VOD.
// The first path segment names a CDN domain and is not needed.
var thumbnailPattern = regexp.MustCompile(`https://static-cdn\.jtvnw\.net/cf_vods/(?:[a-z0-9_]+)/(?P<storage>[a-z0-9_]+)//?thumb/.+%\{width\}x%\{height\}\.jpe?g`)

// StorageID extracts the storage identifier from a thumbnail URL.
func StorageID(thumbnailURL string) (string, error) {
	storage, ok := util.ReGroups(thumbnailPattern, thumbnailURL)["storage"]
	if !ok || storage == "" {
		return "", &link.ShapeError{
			Stage:  link.StageExtraction,
			Value:  thumbnailURL,
			Reason: "could not extract storage identifier",
		}
	}
	return storage, nil
}
