package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/twitchlink/twitchlink/constant"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/where"
)

// FilePath returns the location of the configuration file.
func FilePath() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// durations are stored as strings and parsed on read.
var durations = map[string]bool{
	key.VODProbeTimeout: true,
	key.NetworkTimeout:  true,
}

// Parse converts raw command-line values into the type of the named field.
func Parse(name string, raw []string) (any, error) {
	field, ok := Default[name]
	if !ok {
		return nil, fmt.Errorf("unknown key %s", name)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", name)
	}

	switch field.Value.(type) {
	case string:
		value := raw[0]
		if durations[name] {
			d, err := time.ParseDuration(value)
			if err != nil || d <= 0 {
				return nil, fmt.Errorf("invalid duration value: %s", value)
			}
		}
		return value, nil
	case int:
		parsed, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		if name == key.VODParallelism && parsed < 1 {
			return nil, fmt.Errorf("%s must be at least 1", name)
		}
		return parsed, nil
	case bool:
		parsed, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return parsed, nil
	case []string:
		var values []string
		for _, r := range raw {
			for _, v := range strings.Split(r, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, strings.TrimRight(v, "/"))
				}
			}
		}
		return values, nil
	default:
		return nil, fmt.Errorf("unsupported type of %s", name)
	}
}
