// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/color"
	"github.com/twitchlink/twitchlink/constant"
	"github.com/twitchlink/twitchlink/gql"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/style"
	"github.com/twitchlink/twitchlink/vod"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// Redacted is printed in place of secret values.
const Redacted = "<redacted>"

// Secrets holds keys whose values are never printed.
var Secrets = map[string]struct{}{
	key.TwitchOAuthToken: {},
}

// Get returns the current value of the key, masking secrets that are set.
func Get(k string) any {
	v := viper.Get(k)
	if _, ok := Secrets[k]; ok && viper.GetString(k) != "" {
		return Redacted
	}
	return v
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.TwitchClientID, "", "Client ID of your Twitch application.\nRequired for VOD lookups through the Helix API")
	register(key.TwitchOAuthToken, "", "OAuth token paired with the client ID.\nA bare token is sent as \"Bearer <token>\"")
	register(key.GQLClientID, gql.DefaultClientID, "Client-Id header sent to the GraphQL endpoint.\nThis is the web player's public ID, not your own application")
	register(key.GQLPersistedQueryHash, gql.DefaultPersistedQueryHash, "SHA-256 hash of the persisted PlaybackAccessToken query")
	register(key.GQLPlayerType, gql.DefaultPlayerType, "Player type reported when requesting a playback token")
	register(key.VODHosts, vod.DefaultHosts, "CDN base URLs probed for a VOD, in order.\nThe first host answering wins")
	register(key.VODQuality, vod.DefaultQuality, "Rendition path segment of the VOD manifest.\nExamples: chunked, 720p60, 480p30")
	register(key.VODParallelism, 1, "Number of CDN hosts probed at once.\n1 probes strictly in order and stops at the first hit")
	register(key.VODProbeTimeout, "10s", "Timeout of a single CDN probe")
	register(key.NetworkTimeout, "1m", "Timeout of a whole HTTP exchange")
	register(key.NetworkImpersonate, false, "Use a Chrome TLS fingerprint for outgoing requests")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    Get,
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
