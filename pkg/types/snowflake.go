// Package types holds the shared identifier types used across modules.
package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Snowflake is a Discord 64-bit identifier (guild, user, channel, role...).
// Discord serializes these as decimal strings because they overflow the
// 53-bit safe integer range of JSON numbers; we do the same on the wire
// while keeping the full uint64 range in memory.
type Snowflake uint64

// ParseSnowflake parses a decimal string into a Snowflake.
func ParseSnowflake(s string) (Snowflake, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", s, err)
	}
	return Snowflake(id), nil
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// MarshalJSON encodes the snowflake as a quoted decimal string.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Value stores the snowflake as its decimal string so the full uint64
// range survives columns declared as varchar.
func (s Snowflake) Value() (driver.Value, error) {
	return s.String(), nil
}

// Scan reads a snowflake from string, byte-slice or integer columns.
func (s *Snowflake) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = 0
		return nil
	case string:
		parsed, err := ParseSnowflake(v)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case []byte:
		parsed, err := ParseSnowflake(string(v))
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case int64:
		*s = Snowflake(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Snowflake", src)
	}
}

// UnmarshalJSON accepts both string and bare-number encodings.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid snowflake %s: %w", string(data), err)
	}
	*s = Snowflake(id)
	return nil
}
