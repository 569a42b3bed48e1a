package configservice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

var hexColorPattern = regexp.MustCompile(`^#?([a-fA-F0-9]{6}|[a-fA-F0-9]{3})$`)

// ConvertToType coerces a stored raw string into the typed value declared
// by the schema for optionName. It fails with ErrUnknownOption when the
// option is not declared anywhere.
func (r *Resolver) ConvertToType(optionName, raw string) (any, error) {
	option, ok := r.schema.Option(optionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", configdomain.ErrUnknownOption, optionName)
	}

	switch option.Type {
	case configdomain.TypeBoolean:
		return strings.EqualFold(raw, "true") || raw == "1", nil

	case configdomain.TypeInt, configdomain.TypeFloat:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("option %s: invalid number %q: %w", optionName, raw, err)
		}
		return value, nil

	case configdomain.TypeColor:
		if hexColorPattern.MatchString(raw) {
			value, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 16, 64)
			if err != nil {
				return nil, fmt.Errorf("option %s: invalid hex color %q: %w", optionName, raw, err)
			}
			return value, nil
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("option %s: invalid color %q: %w", optionName, raw, err)
		}
		return value, nil

	case configdomain.TypeRole, configdomain.TypeTextChannel,
		configdomain.TypeVoiceChannel, configdomain.TypeCategory:
		return types.ParseSnowflake(raw)

	case configdomain.TypeLevelupChannel:
		if raw == configdomain.LevelupChannelAny {
			return raw, nil
		}
		return types.ParseSnowflake(raw)

	case configdomain.TypeRolesList, configdomain.TypeTextChannelsList,
		configdomain.TypeEmojisList:
		return parseSnowflakeList(optionName, raw)

	case configdomain.TypeEnum, configdomain.TypeText:
		return raw, nil

	default:
		// Lenient fallback: the bot may ship new option types before the
		// API learns about them.
		r.logger.Warn("untreated config option type",
			attr.String("option", optionName),
			attr.String("type", string(option.Type)),
		)
		return raw, nil
	}
}

// parseSnowflakeList decodes a JSON array of 64-bit identifiers. gjson
// keeps full uint64 precision, which double-precision JSON decoding would
// lose on large IDs.
func parseSnowflakeList(optionName, raw string) ([]types.Snowflake, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("option %s: invalid JSON list %q", optionName, raw)
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("option %s: expected a JSON array, got %q", optionName, raw)
	}
	items := parsed.Array()
	ids := make([]types.Snowflake, 0, len(items))
	for _, item := range items {
		ids = append(ids, types.Snowflake(item.Uint()))
	}
	return ids, nil
}
