package hierarchy

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Level identifies a tier of the hierarchy.
type Level uint8

const (
	LevelYear Level = iota + 1
	LevelMonth
	LevelWeek
	LevelDay
)

func (l Level) String() string {
	switch l {
	case LevelYear:
		return "year"
	case LevelMonth:
		return "month"
	case LevelWeek:
		return "week"
	case LevelDay:
		return "day"
	default:
		return "unknown"
	}
}

// Key addresses one node of the hierarchy. Components below Level are zero.
type Key struct {
	Level Level
	Year  int
	Month time.Month
	Week  int
	Day   int
}

func YearKey(year int) Key {
	return Key{Level: LevelYear, Year: year}
}

func MonthKey(year int, month time.Month) Key {
	return Key{Level: LevelMonth, Year: year, Month: month}
}

func WeekKey(year int, month time.Month, week int) Key {
	return Key{Level: LevelWeek, Year: year, Month: month, Week: week}
}

func DayKey(year int, month time.Month, week, day int) Key {
	return Key{Level: LevelDay, Year: year, Month: month, Week: week, Day: day}
}

// String renders k as "2024", "2024-06", "2024-06-w22" or "2024-06-w22-03".
func (k Key) String() string {
	switch k.Level {
	case LevelYear:
		return strconv.Itoa(k.Year)
	case LevelMonth:
		return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
	case LevelWeek:
		return fmt.Sprintf("%04d-%02d-w%d", k.Year, int(k.Month), k.Week)
	case LevelDay:
		return fmt.Sprintf("%04d-%02d-w%d-%02d", k.Year, int(k.Month), k.Week, k.Day)
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKey parses the output of Key.String.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) > 4 || parts[0] == "" {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if i == 2 {
			var ok bool
			if p, ok = strings.CutPrefix(p, "w"); !ok {
				return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
		}
		nums[i] = n
	}

	k := Key{Level: Level(len(parts)), Year: nums[0]}
	if len(nums) > 1 {
		if nums[1] < 1 || nums[1] > 12 {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
		}
		k.Month = time.Month(nums[1])
	}
	if len(nums) > 2 {
		k.Week = nums[2]
	}
	if len(nums) > 3 {
		if nums[3] < 1 || nums[3] > 31 {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
		}
		k.Day = nums[3]
	}
	return k, nil
}
