// Package configdomain holds the guild configuration option schema: the
// catalog of per-guild settings, grouped by category, each with a declared
// type and a pre-typed default value.
package configdomain

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// OptionType is the declared type of a config option. The set is closed on
// our side but the schema may grow types we do not know yet; callers must
// treat unknown types leniently (see the coercion fallback).
type OptionType string

const (
	TypeBoolean          OptionType = "boolean"
	TypeInt              OptionType = "int"
	TypeFloat            OptionType = "float"
	TypeColor            OptionType = "color"
	TypeRole             OptionType = "role"
	TypeTextChannel      OptionType = "text_channel"
	TypeVoiceChannel     OptionType = "voice_channel"
	TypeCategory         OptionType = "category"
	TypeLevelupChannel   OptionType = "levelup_channel"
	TypeRolesList        OptionType = "roles_list"
	TypeTextChannelsList OptionType = "text_channels_list"
	TypeEmojisList       OptionType = "emojis_list"
	TypeEnum             OptionType = "enum"
	TypeText             OptionType = "text"
)

// LevelupChannelAny is the sentinel value meaning "send level-up messages
// in whichever channel the member is active in".
const LevelupChannelAny = "any"

// CategoryNames is the fixed set of option categories, in display order.
var CategoryNames = []string{
	"core", "info", "moderation", "partners", "poll-channels",
	"streamers", "voice-channels", "welcome", "xp",
}

// ErrUnknownOption is returned when an option name is not declared in the
// schema, for any category.
var ErrUnknownOption = errors.New("unknown config option")

// Option is one schema entry: a declared type and an already-typed default.
type Option struct {
	Type    OptionType `json:"type"`
	Default any        `json:"default"`
}

// Schema is the immutable option catalog. Every option belongs to exactly
// one category.
type Schema struct {
	categories map[string]map[string]Option
	owner      map[string]string
	raw        []byte
}

//go:embed options_list.json
var optionsListJSON []byte

var bundledSchema = sync.OnceValues(func() (*Schema, error) {
	return ParseSchema(optionsListJSON)
})

// LoadBundled returns the schema bundled with the binary. It is parsed at
// most once per process; concurrent first callers all observe the same
// result, and a parse failure is reported to every caller.
func LoadBundled() (*Schema, error) {
	return bundledSchema()
}

// ParseSchema decodes a category -> option -> {type, default} document.
// Defaults are decoded according to the declared type so resolved configs
// can return them verbatim, without re-coercion.
func ParseSchema(data []byte) (*Schema, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("options list is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("options list root must be an object")
	}

	s := &Schema{
		categories: make(map[string]map[string]Option),
		owner:      make(map[string]string),
		raw:        append([]byte(nil), data...),
	}
	var parseErr error
	doc.ForEach(func(category, options gjson.Result) bool {
		name := category.String()
		if !options.IsObject() {
			parseErr = fmt.Errorf("category %q must be an object", name)
			return false
		}
		s.categories[name] = make(map[string]Option)
		options.ForEach(func(optName, opt gjson.Result) bool {
			optionName := optName.String()
			if owner, taken := s.owner[optionName]; taken {
				parseErr = fmt.Errorf("option %q declared in both %q and %q", optionName, owner, name)
				return false
			}
			optType := OptionType(opt.Get("type").String())
			if optType == "" {
				parseErr = fmt.Errorf("option %q has no declared type", optionName)
				return false
			}
			def, err := decodeDefault(optType, opt.Get("default"))
			if err != nil {
				parseErr = fmt.Errorf("option %q: %w", optionName, err)
				return false
			}
			s.categories[name][optionName] = Option{Type: optType, Default: def}
			s.owner[optionName] = name
			return true
		})
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return s, nil
}

// decodeDefault turns a JSON default value into its in-memory typed form.
func decodeDefault(t OptionType, v gjson.Result) (any, error) {
	if v.Type == gjson.Null || !v.Exists() {
		return nil, nil
	}
	switch t {
	case TypeBoolean:
		return v.Bool(), nil
	case TypeInt, TypeFloat:
		return v.Float(), nil
	case TypeColor:
		return int64(v.Int()), nil
	case TypeRole, TypeTextChannel, TypeVoiceChannel, TypeCategory:
		return types.ParseSnowflake(v.String())
	case TypeLevelupChannel:
		if v.String() == LevelupChannelAny {
			return LevelupChannelAny, nil
		}
		return types.ParseSnowflake(v.String())
	case TypeRolesList, TypeTextChannelsList, TypeEmojisList:
		if !v.IsArray() {
			return nil, fmt.Errorf("default for list type %s must be an array", t)
		}
		ids := make([]types.Snowflake, 0, len(v.Array()))
		for _, item := range v.Array() {
			ids = append(ids, types.Snowflake(item.Uint()))
		}
		return ids, nil
	default:
		// enum, text and forward-compatible unknown types stay strings.
		return v.String(), nil
	}
}

// Raw returns the schema document exactly as loaded, for endpoints that
// serve the default configuration verbatim.
func (s *Schema) Raw() []byte {
	return s.raw
}

// Category returns the options declared under the given category name.
// Unknown categories yield ok=false.
func (s *Schema) Category(name string) (map[string]Option, bool) {
	options, ok := s.categories[name]
	return options, ok
}

// Option finds an option by name across all categories.
func (s *Schema) Option(name string) (Option, bool) {
	category, ok := s.owner[name]
	if !ok {
		return Option{}, false
	}
	return s.categories[category][name], true
}

// CategoryOf returns the category owning the given option name.
func (s *Schema) CategoryOf(name string) (string, bool) {
	category, ok := s.owner[name]
	return category, ok
}
