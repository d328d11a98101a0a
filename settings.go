package vaultprefs

// Categories group settings for listing; they are not persisted.
const (
	CategorySecurity   = "security"
	CategoryAppearance = "appearance"
	CategoryBehavior   = "behavior"
	CategoryBackups    = "backups"
	CategoryState      = "state"
)

// Persisted keys of the settings that are read only as legacy fallbacks.
const (
	legacyPasswordReminderKey = "pref_password_reminder"
	legacyAutoLockKey         = "pref_auto_lock"
)

func atLeast(n int64) *int64 { return &n }

func boolSetting(key, category string, def bool) *Setting[bool] {
	return &Setting[bool]{key: key, category: category, codec: boolCodec, def: constant(def)}
}

func intSetting(key, category string, def int) *Setting[int] {
	return &Setting[int]{key: key, category: category, codec: intCodec, def: constant(def)}
}

func stringSetting(key, category string) *Setting[string] {
	return &Setting[string]{key: key, category: category, codec: stringCodec, def: constant("")}
}

func enumSetting[E ~int32](key, category string, def E, values []E) *Setting[E] {
	allowed := make([]interface{}, len(values))
	for i, v := range values {
		allowed[i] = int32(v)
	}
	return &Setting[E]{key: key, category: category, codec: codeCodec(values), def: constant(def), allowed: allowed}
}

var (
	tapToReveal     = boolSetting("pref_tap_to_reveal", CategorySecurity, false)
	tapToRevealTime = intSetting("pref_tap_to_reveal_time", CategorySecurity, 30)
	entryHighlight  = boolSetting("pref_highlight_entry", CategoryAppearance, false)
	pauseFocused    = boolSetting("pref_pause_entry", CategoryAppearance, false)
	panicTrigger    = boolSetting("pref_panic_trigger", CategorySecurity, false)
	pinKeyboard     = boolSetting("pref_pin_keyboard", CategorySecurity, false)
	idleTimeout     = intSetting("pref_timeout", CategorySecurity, -1)

	secureScreen = &Setting[bool]{
		key:      "pref_secure_screen",
		category: CategorySecurity,
		codec:    boolCodec,
		def:      func(p *Preferences) bool { return !p.config.debugBuild },
	}

	legacyPasswordReminder = boolSetting(legacyPasswordReminderKey, CategorySecurity, true)

	passwordReminderFreq = func() *Setting[PassReminderFreq] {
		s := enumSetting("pref_password_reminder_freq", CategorySecurity, PassReminderBiweekly, PassReminderFreqs)
		s.legacy = func(p *Preferences) PassReminderFreq {
			if legacyPasswordReminder.get(p) {
				return PassReminderBiweekly
			}
			return PassReminderNever
		}
		return s
	}()

	passwordReminderTimestamp = &Setting[int64]{
		key:      "pref_password_reminder_counter",
		category: CategorySecurity,
		codec:    longCodec,
		def:      constant(int64(0)),
		minimum:  atLeast(1),
	}

	legacyAutoLock = boolSetting(legacyAutoLockKey, CategorySecurity, true)

	autoLockMask = &Setting[AutoLockType]{
		key:      "pref_auto_lock_mask",
		category: CategorySecurity,
		codec:    codeCodec[AutoLockType](nil),
		def:      constant(DefaultAutoLockMask),
		legacy: func(p *Preferences) AutoLockType {
			if legacyAutoLock.get(p) {
				return DefaultAutoLockMask
			}
			return AutoLockOff
		},
		allowed: []interface{}{
			int32(AutoLockOff),
			int32(AutoLockOnBackButton),
			int32(AutoLockOnMinimize),
			int32(AutoLockOnDeviceLock),
		},
		bitmask: true,
	}

	accountNameVisible  = boolSetting("pref_account_name", CategoryAppearance, true)
	codeGroupSize       = boolSetting("pref_code_group_size", CategoryAppearance, false)
	currentTheme        = enumSetting("pref_current_theme", CategoryAppearance, ThemeSystem, Themes)
	currentViewMode     = enumSetting("pref_current_view_mode", CategoryAppearance, ViewNormal, ViewModes)
	currentSortCategory = enumSetting("pref_current_sort_category", CategoryAppearance, SortCustom, SortCategories)
	appLanguage         = &Setting[string]{key: "pref_lang", category: CategoryAppearance, codec: stringCodec, def: constant(SystemLanguage)}

	focusSearch     = boolSetting("pref_focus_search", CategoryBehavior, false)
	copyOnTap       = boolSetting("pref_copy_on_tap", CategoryBehavior, false)
	timeSyncWarning = boolSetting("pref_warn_time_sync", CategoryBehavior, true)
	groupFilter     = stringSetting("pref_group_filter", CategoryBehavior)

	androidBackupsEnabled = boolSetting("pref_android_backups", CategoryBackups, false)
	backupsEnabled        = boolSetting("pref_backups", CategoryBackups, false)
	backupsVersionCount   = intSetting("pref_backups_versions", CategoryBackups, 5)
	backupsLocation       = func() *Setting[string] {
		s := stringSetting("pref_backups_location", CategoryBackups)
		s.sensitive = true
		return s
	}()
	backupsError = func() *Setting[string] {
		s := stringSetting("pref_backups_error", CategoryBackups)
		s.sensitive = true
		return s
	}()
	backupReminderNeeded = func() *Setting[bool] {
		s := boolSetting("pref_backups_reminder_needed", CategoryBackups, false)
		s.skipUnchanged = true
		return s
	}()
	plaintextBackupWarningNeeded = func() *Setting[bool] {
		s := boolSetting("pref_plaintext_backup_warning_needed", CategoryBackups, false)
		s.skipUnchanged = true
		// Compare against the gated value so a hidden warning survives set(false).
		s.observed = func(p *Preferences) bool {
			return canShowPlaintextBackupWarning.get(p) && s.get(p)
		}
		return s
	}()
	canShowPlaintextBackupWarning = func() *Setting[bool] {
		s := boolSetting("pref_can_show_plaintext_backup_warning", CategoryBackups, true)
		s.skipUnchanged = true
		return s
	}()

	introDone  = boolSetting("pref_intro", CategoryState, false)
	usageCount = stringSetting("pref_usage_count", CategoryState)
	favorites  = &Setting[[]string]{key: "pref_favorites", category: CategoryState, codec: stringSetCodec, def: constant([]string(nil))}
)

// registry lists every current (non-legacy) setting in display order.
var registry = []descriptor{
	tapToReveal,
	tapToRevealTime,
	entryHighlight,
	pauseFocused,
	panicTrigger,
	secureScreen,
	pinKeyboard,
	idleTimeout,
	autoLockMask,
	passwordReminderFreq,
	passwordReminderTimestamp,
	accountNameVisible,
	codeGroupSize,
	currentTheme,
	currentViewMode,
	currentSortCategory,
	appLanguage,
	focusSearch,
	copyOnTap,
	timeSyncWarning,
	groupFilter,
	androidBackupsEnabled,
	backupsEnabled,
	backupsLocation,
	backupsVersionCount,
	backupsError,
	backupReminderNeeded,
	plaintextBackupWarningNeeded,
	canShowPlaintextBackupWarning,
	introDone,
	usageCount,
	favorites,
}

func lookup(key string) (descriptor, bool) {
	for _, d := range registry {
		if d.Key() == key {
			return d, true
		}
	}
	return nil, false
}
