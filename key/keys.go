// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 17

// Twitch Credentials - caller-supplied identity used for the Helix metadata lookup.
const (
	TwitchClientID   = "twitch.client_id"
	TwitchOAuthToken = "twitch.oauth_token"
)

// GraphQL Playback Token - these keys override the persisted PlaybackAccessToken request.
const (
	GQLClientID           = "gql.client_id"
	GQLPersistedQueryHash = "gql.persisted_query_hash"
	GQLPlayerType         = "gql.player_type"
)

// VOD Resolution - these keys govern the CDN candidate probe.
const (
	VODHosts        = "vod.hosts"
	VODQuality      = "vod.quality"
	VODParallelism  = "vod.parallelism"
	VODProbeTimeout = "vod.probe_timeout"
)

// Network - these keys tune the shared HTTP client.
const (
	NetworkTimeout     = "network.timeout"
	NetworkImpersonate = "network.impersonate"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern terminal presentation.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
