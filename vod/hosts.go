// Package vod locates the HLS manifest of a past broadcast by probing the CDN
// hosts that may store it.
package vod

// DefaultHosts are the CDN front-ends known to store VODs, in probe order.
var DefaultHosts = []string{
	"https://d1mhjrowxxagfy.cloudfront.net",
	"https://d1ymi26ma8va5x.cloudfront.net",
	"https://d2aba1wr3818hz.cloudfront.net",
	"https://d2e2de1etea730.cloudfront.net",
	"https://d2nvs31859zcd8.cloudfront.net",
	"https://d2vjef5jvl6bfs.cloudfront.net",
	"https://d3aqoihi2n8ty8.cloudfront.net",
	"https://d3c27h4odz752x.cloudfront.net",
	"https://d3vd9lfkzbru3h.cloudfront.net",
	"https://ddacn6pr5v0tl.cloudfront.net",
	"https://dgeft87wbj63p.cloudfront.net",
	"https://dqrpb9wgowsf5.cloudfront.net",
	"https://ds0h3roq6wcgc.cloudfront.net",
}

// DefaultQuality is the rendition path segment holding the source-quality playlist.
const DefaultQuality = "chunked"

const manifestName = "index-dvr.m3u8"

// ManifestURL builds the candidate manifest URL on host.
func ManifestURL(host, storageID, quality string) string {
	if quality == "" {
		quality = DefaultQuality
	}
	return host + "/" + storageID + "/" + quality + "/" + manifestName
}
