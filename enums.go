package vaultprefs

import "time"

// Enum values are persisted as their integer code. Codes are assigned
// explicitly and never reused; new variants get the next free code.

// PassReminderFreq is how often the user is asked to re-enter the vault password.
type PassReminderFreq int32

const (
	PassReminderNever     PassReminderFreq = 0
	PassReminderWeekly    PassReminderFreq = 1
	PassReminderBiweekly  PassReminderFreq = 2
	PassReminderMonthly   PassReminderFreq = 3
	PassReminderQuarterly PassReminderFreq = 4
	PassReminderDaily     PassReminderFreq = 5
)

// PassReminderFreqs lists every frequency in code order.
var PassReminderFreqs = []PassReminderFreq{
	PassReminderNever,
	PassReminderWeekly,
	PassReminderBiweekly,
	PassReminderMonthly,
	PassReminderQuarterly,
	PassReminderDaily,
}

const day = 24 * time.Hour

// Duration returns the reminder interval. PassReminderNever has none and returns 0.
func (f PassReminderFreq) Duration() time.Duration {
	switch f {
	case PassReminderDaily:
		return day
	case PassReminderWeekly:
		return 7 * day
	case PassReminderBiweekly:
		return 14 * day
	case PassReminderMonthly:
		return 30 * day
	case PassReminderQuarterly:
		return 90 * day
	default:
		return 0
	}
}

func (f PassReminderFreq) String() string {
	switch f {
	case PassReminderNever:
		return "never"
	case PassReminderWeekly:
		return "weekly"
	case PassReminderBiweekly:
		return "biweekly"
	case PassReminderMonthly:
		return "monthly"
	case PassReminderQuarterly:
		return "quarterly"
	case PassReminderDaily:
		return "daily"
	default:
		return "unknown"
	}
}

// SortCategory is the ordering of the entry list.
type SortCategory int32

const (
	SortCustom          SortCategory = 0
	SortAccount         SortCategory = 1
	SortAccountReversed SortCategory = 2
	SortIssuer          SortCategory = 3
	SortIssuerReversed  SortCategory = 4
	SortUsageCount      SortCategory = 5
	SortLastUsed        SortCategory = 6
)

// SortCategories lists every sort category in code order.
var SortCategories = []SortCategory{
	SortCustom,
	SortAccount,
	SortAccountReversed,
	SortIssuer,
	SortIssuerReversed,
	SortUsageCount,
	SortLastUsed,
}

func (c SortCategory) String() string {
	switch c {
	case SortCustom:
		return "custom"
	case SortAccount:
		return "account"
	case SortAccountReversed:
		return "account_reversed"
	case SortIssuer:
		return "issuer"
	case SortIssuerReversed:
		return "issuer_reversed"
	case SortUsageCount:
		return "usage_count"
	case SortLastUsed:
		return "last_used"
	default:
		return "unknown"
	}
}

// Theme is the UI color theme.
type Theme int32

const (
	ThemeLight        Theme = 0
	ThemeDark         Theme = 1
	ThemeAmoled       Theme = 2
	ThemeSystem       Theme = 3
	ThemeSystemAmoled Theme = 4
)

// Themes lists every theme in code order.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeAmoled, ThemeSystem, ThemeSystemAmoled}

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	case ThemeAmoled:
		return "amoled"
	case ThemeSystem:
		return "system"
	case ThemeSystemAmoled:
		return "system_amoled"
	default:
		return "unknown"
	}
}

// ViewMode is the density of the entry list.
type ViewMode int32

const (
	ViewNormal  ViewMode = 0
	ViewCompact ViewMode = 1
	ViewSmall   ViewMode = 2
	ViewTiles   ViewMode = 3
)

// ViewModes lists every view mode in code order.
var ViewModes = []ViewMode{ViewNormal, ViewCompact, ViewSmall, ViewTiles}

func (m ViewMode) String() string {
	switch m {
	case ViewNormal:
		return "normal"
	case ViewCompact:
		return "compact"
	case ViewSmall:
		return "small"
	case ViewTiles:
		return "tiles"
	default:
		return "unknown"
	}
}

// AutoLockType is one bit of the auto-lock mask. The bit values are persisted.
type AutoLockType int32

const (
	// AutoLockOff is exclusive: a mask equal to AutoLockOff means auto-lock is disabled.
	AutoLockOff          AutoLockType = 1 << 0
	AutoLockOnBackButton AutoLockType = 1 << 1
	AutoLockOnMinimize   AutoLockType = 1 << 2
	AutoLockOnDeviceLock AutoLockType = 1 << 3
)

// AutoLockSettings lists the selectable auto-lock triggers.
var AutoLockSettings = []AutoLockType{
	AutoLockOnBackButton,
	AutoLockOnMinimize,
	AutoLockOnDeviceLock,
}

// DefaultAutoLockMask is used when neither the mask nor the legacy switch is stored.
const DefaultAutoLockMask = AutoLockOnBackButton | AutoLockOnDeviceLock
