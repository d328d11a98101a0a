package vaultprefs

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dayMillis = int64(86400000)

func newTestPreferences(t *testing.T, opts ...Option) (*Preferences, *MockStorage, *fakeClock) {
	t.Helper()
	store := NewMockStorage()
	clock := newFakeClock(1000)
	base := []Option{
		WithStorage(store),
		WithClock(clock),
		WithLogger(&MockLogger{}),
		WithLocaleSource(func() Locale { return Locale{Language: "en"} }),
	}
	p, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return p, store, clock
}

func TestNew_RequiresStorage(t *testing.T) {
	p, err := New()
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestNew_RejectsEmptyProfile(t *testing.T) {
	p, err := New(WithStorage(NewMockStorage()), WithProfile(""))
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNew_FixesZeroReminderTimestamp(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	assert.Equal(t, int64(1000), p.PasswordReminderTimestamp().UnixMilli())
	raw := store.Raw("pref_password_reminder_counter")
	require.NotNil(t, raw)
	assert.Equal(t, LongType, raw.Type)
	assert.Equal(t, int64(1000), raw.Value)
}

func TestNew_KeepsExistingReminderTimestamp(t *testing.T) {
	store := NewMockStorage()
	store.Put("pref_password_reminder_counter", LongType, int64(42))

	p, err := New(WithStorage(store), WithClock(newFakeClock(5000)), WithLogger(&MockLogger{}))
	require.NoError(t, err)

	assert.Equal(t, int64(42), p.PasswordReminderTimestamp().UnixMilli())
	assert.Equal(t, 0, store.Writes())
}

func TestDefaults(t *testing.T) {
	p, _, _ := newTestPreferences(t)

	assert.False(t, p.IsTapToRevealEnabled())
	assert.Equal(t, 30, p.TapToRevealTime())
	assert.False(t, p.IsEntryHighlightEnabled())
	assert.False(t, p.IsPauseFocusedEnabled())
	assert.False(t, p.IsPanicTriggerEnabled())
	assert.True(t, p.IsSecureScreenEnabled())
	assert.False(t, p.IsPinKeyboardEnabled())
	assert.Equal(t, -1, p.IdleTimeout())
	assert.Equal(t, PassReminderBiweekly, p.PasswordReminderFrequency())
	assert.Equal(t, DefaultAutoLockMask, p.AutoLockMask())
	assert.True(t, p.IsAutoLockEnabled())
	assert.True(t, p.IsAccountNameVisible())
	assert.Equal(t, 3, p.CodeGroupSize())
	assert.Equal(t, ThemeSystem, p.CurrentTheme())
	assert.Equal(t, ViewNormal, p.CurrentViewMode())
	assert.Equal(t, SortCustom, p.CurrentSortCategory())
	assert.Equal(t, SystemLanguage, p.Language())
	assert.False(t, p.IsFocusSearchEnabled())
	assert.False(t, p.IsCopyOnTapEnabled())
	assert.True(t, p.IsTimeSyncWarningEnabled())
	assert.False(t, p.IsIntroDone())
	assert.False(t, p.IsAndroidBackupsEnabled())
	assert.False(t, p.IsBackupsEnabled())
	assert.Nil(t, p.BackupsLocation())
	assert.Equal(t, 5, p.BackupsVersionCount())
	assert.Empty(t, p.BackupsError())
	assert.False(t, p.IsBackupReminderNeeded())
	assert.False(t, p.IsPlaintextBackupWarningNeeded())
	assert.True(t, p.CanShowPlaintextBackupWarning())
	assert.Empty(t, p.UsageCounts())
	assert.Empty(t, p.Favorites())
	assert.NotNil(t, p.GroupFilter())
	assert.Empty(t, p.GroupFilter())
}

func TestSecureScreen_DebugBuildDefault(t *testing.T) {
	p, _, _ := newTestPreferences(t, WithDebugBuild(true))
	assert.False(t, p.IsSecureScreenEnabled())

	p.SetIsSecureScreenEnabled(true)
	assert.True(t, p.IsSecureScreenEnabled())
}

func TestBoolRoundTrips(t *testing.T) {
	p, _, _ := newTestPreferences(t)

	tests := []struct {
		name string
		set  func(bool)
		get  func() bool
	}{
		{"tap to reveal", p.SetIsTapToRevealEnabled, p.IsTapToRevealEnabled},
		{"entry highlight", p.SetIsEntryHighlightEnabled, p.IsEntryHighlightEnabled},
		{"panic trigger", p.SetIsPanicTriggerEnabled, p.IsPanicTriggerEnabled},
		{"pin keyboard", p.SetIsPinKeyboardEnabled, p.IsPinKeyboardEnabled},
		{"account name", p.SetIsAccountNameVisible, p.IsAccountNameVisible},
		{"focus search", p.SetFocusSearch, p.IsFocusSearchEnabled},
		{"copy on tap", p.SetIsCopyOnTapEnabled, p.IsCopyOnTapEnabled},
		{"time sync warning", p.SetIsTimeSyncWarningEnabled, p.IsTimeSyncWarningEnabled},
		{"intro", p.SetIntroDone, p.IsIntroDone},
		{"android backups", p.SetIsAndroidBackupsEnabled, p.IsAndroidBackupsEnabled},
		{"backups", p.SetIsBackupsEnabled, p.IsBackupsEnabled},
		{"backup reminder", p.SetIsBackupReminderNeeded, p.IsBackupReminderNeeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set(true)
			assert.True(t, tt.get())
			tt.set(false)
			assert.False(t, tt.get())
		})
	}
}

func TestIntRoundTrips(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	p.SetTapToRevealTime(10)
	assert.Equal(t, 10, p.TapToRevealTime())
	assert.Equal(t, int32(10), store.Raw("pref_tap_to_reveal_time").Value)

	p.SetIdleTimeout(300)
	assert.Equal(t, 300, p.IdleTimeout())

	p.SetBackupsVersionCount(20)
	assert.Equal(t, 20, p.BackupsVersionCount())
}

func TestPauseFocused_Gated(t *testing.T) {
	p, _, _ := newTestPreferences(t)

	p.SetIsPauseFocusedEnabled(true)
	assert.False(t, p.IsPauseFocusedEnabled())

	p.SetIsTapToRevealEnabled(true)
	assert.True(t, p.IsPauseFocusedEnabled())

	p.SetIsTapToRevealEnabled(false)
	p.SetIsEntryHighlightEnabled(true)
	assert.True(t, p.IsPauseFocusedEnabled())
}

func TestPasswordReminder_Weekly(t *testing.T) {
	p, _, clock := newTestPreferences(t)
	p.SetPasswordReminderFrequency(PassReminderWeekly)

	start := p.PasswordReminderTimestamp().UnixMilli()

	clock.SetMillis(start + 7*dayMillis - 1)
	assert.False(t, p.IsPasswordReminderNeeded())

	clock.SetMillis(start + 7*dayMillis)
	assert.True(t, p.IsPasswordReminderNeeded())
}

func TestPasswordReminder_FreshStoreBiweekly(t *testing.T) {
	p, _, clock := newTestPreferences(t)
	require.Equal(t, int64(1000), p.PasswordReminderTimestamp().UnixMilli())

	clock.SetMillis(1000 + 14*dayMillis - 1)
	assert.False(t, p.IsPasswordReminderNeeded())

	clock.SetMillis(1000 + 14*dayMillis)
	assert.True(t, p.IsPasswordReminderNeeded())
}

func TestPasswordReminder_NeverIsNeverDue(t *testing.T) {
	p, _, _ := newTestPreferences(t)
	p.SetPasswordReminderFrequency(PassReminderNever)

	assert.False(t, p.IsPasswordReminderNeededAt(time.UnixMilli(1000+3650*dayMillis)))
}

func TestPasswordReminder_Reset(t *testing.T) {
	p, _, clock := newTestPreferences(t)
	p.SetPasswordReminderFrequency(PassReminderDaily)

	clock.SetMillis(1000 + 2*dayMillis)
	require.True(t, p.IsPasswordReminderNeeded())

	p.ResetPasswordReminderTimestamp()
	assert.Equal(t, 1000+2*dayMillis, p.PasswordReminderTimestamp().UnixMilli())
	assert.False(t, p.IsPasswordReminderNeeded())
}

func TestPasswordReminder_LegacyFallback(t *testing.T) {
	tests := []struct {
		name   string
		legacy interface{}
		want   PassReminderFreq
	}{
		{"legacy disabled", false, PassReminderNever},
		{"legacy enabled", true, PassReminderBiweekly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, store, _ := newTestPreferences(t)
			store.Put("pref_password_reminder", BoolType, tt.legacy)
			assert.Equal(t, tt.want, p.PasswordReminderFrequency())
		})
	}

	t.Run("stored frequency wins", func(t *testing.T) {
		p, store, _ := newTestPreferences(t)
		store.Put("pref_password_reminder", BoolType, false)
		p.SetPasswordReminderFrequency(PassReminderMonthly)
		assert.Equal(t, PassReminderMonthly, p.PasswordReminderFrequency())
	})
}

func TestAutoLock_LegacyFallback(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	store.Put("pref_auto_lock", BoolType, false)
	assert.Equal(t, AutoLockOff, p.AutoLockMask())
	assert.False(t, p.IsAutoLockEnabled())

	store.Put("pref_auto_lock", BoolType, true)
	assert.Equal(t, DefaultAutoLockMask, p.AutoLockMask())
}

func TestAutoLock_Mask(t *testing.T) {
	p, _, _ := newTestPreferences(t)

	p.SetAutoLockMask(AutoLockOnBackButton | AutoLockOnMinimize)

	assert.True(t, p.IsAutoLockTypeEnabled(AutoLockOnBackButton))
	assert.True(t, p.IsAutoLockTypeEnabled(AutoLockOnMinimize))
	assert.False(t, p.IsAutoLockTypeEnabled(AutoLockOnDeviceLock))
	assert.True(t, p.IsAutoLockEnabled())

	p.SetAutoLockMask(AutoLockOff)
	assert.False(t, p.IsAutoLockEnabled())
	assert.True(t, p.IsAutoLockTypeEnabled(AutoLockOff))
}

func TestEnumRoundTrips(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	for _, theme := range Themes {
		p.SetCurrentTheme(theme)
		assert.Equal(t, theme, p.CurrentTheme())
	}
	for _, mode := range ViewModes {
		p.SetCurrentViewMode(mode)
		assert.Equal(t, mode, p.CurrentViewMode())
	}
	for _, category := range SortCategories {
		p.SetCurrentSortCategory(category)
		assert.Equal(t, category, p.CurrentSortCategory())
	}
	for _, freq := range PassReminderFreqs {
		p.SetPasswordReminderFrequency(freq)
		assert.Equal(t, freq, p.PasswordReminderFrequency())
	}

	p.SetCurrentTheme(ThemeAmoled)
	raw := store.Raw("pref_current_theme")
	assert.Equal(t, IntType, raw.Type)
	assert.Equal(t, int32(2), raw.Value)
}

func TestUnreadableValuesFallBackToDefault(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	store.Put("pref_current_theme", IntType, int32(99))
	assert.Equal(t, ThemeSystem, p.CurrentTheme())

	store.Put("pref_tap_to_reveal", StringType, "yes")
	assert.False(t, p.IsTapToRevealEnabled())

	store.Put("pref_tap_to_reveal_time", StringType, "ten")
	assert.Equal(t, 30, p.TapToRevealTime())

	// A type mismatch is not absence: the legacy switch is not consulted.
	store.Put("pref_auto_lock", BoolType, false)
	store.Put("pref_auto_lock_mask", StringType, "6")
	assert.Equal(t, DefaultAutoLockMask, p.AutoLockMask())
}

func TestStorageFailureFallsBackToDefault(t *testing.T) {
	logger := &MockLogger{}
	p, store, _ := newTestPreferences(t, WithLogger(logger))

	p.SetTapToRevealTime(10)
	store.SetError(errors.New("disk on fire"))

	assert.Equal(t, 30, p.TapToRevealTime())
	assert.True(t, logger.Contains("Failed to read preference"))

	p.SetIntroDone(true)
	assert.True(t, logger.Contains("Failed to persist preference"))
}

func TestCodeGroupSize(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	p.SetCodeGroupSize(2)
	assert.Equal(t, 2, p.CodeGroupSize())
	assert.Equal(t, true, store.Raw("pref_code_group_size").Value)

	p.SetCodeGroupSize(4)
	assert.Equal(t, 3, p.CodeGroupSize())
}

func TestPlaintextWarning_Gated(t *testing.T) {
	p, _, _ := newTestPreferences(t)

	p.SetCanShowPlaintextBackupWarning(false)
	p.SetIsPlaintextBackupWarningNeeded(true)
	assert.False(t, p.IsPlaintextBackupWarningNeeded())
	assert.True(t, p.PlaintextBackupWarningFlag())

	p.SetCanShowPlaintextBackupWarning(true)
	assert.True(t, p.IsPlaintextBackupWarningNeeded())
}

func TestPlaintextWarning_HiddenWarningSurvivesClear(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	p.SetIsPlaintextBackupWarningNeeded(true)
	p.SetCanShowPlaintextBackupWarning(false)

	before := store.Writes()
	p.SetIsPlaintextBackupWarningNeeded(false)
	assert.Equal(t, before, store.Writes())
	assert.True(t, p.PlaintextBackupWarningFlag())

	p.SetCanShowPlaintextBackupWarning(true)
	assert.True(t, p.IsPlaintextBackupWarningNeeded())

	p.SetIsPlaintextBackupWarningNeeded(false)
	assert.False(t, p.PlaintextBackupWarningFlag())
	assert.False(t, p.IsPlaintextBackupWarningNeeded())
}

func TestIntSetters_ClampToBackingRange(t *testing.T) {
	logger := &MockLogger{}
	p, store, _ := newTestPreferences(t, WithLogger(logger))

	p.SetTapToRevealTime(1<<32 + 5)
	assert.Equal(t, math.MaxInt32, p.TapToRevealTime())
	assert.Equal(t, int32(math.MaxInt32), store.Raw("pref_tap_to_reveal_time").Value)
	assert.True(t, logger.Contains("out of range"))

	p.SetIdleTimeout(-(1 << 40))
	assert.Equal(t, math.MinInt32, p.IdleTimeout())
}

func TestIdempotentSetters_SkipUnchangedWrites(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	tests := []struct {
		name string
		get  func() bool
		set  func(bool)
	}{
		{"backup reminder", p.IsBackupReminderNeeded, p.SetIsBackupReminderNeeded},
		{"plaintext warning", p.PlaintextBackupWarningFlag, p.SetIsPlaintextBackupWarningNeeded},
		{"can show plaintext warning", p.CanShowPlaintextBackupWarning, p.SetCanShowPlaintextBackupWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := tt.get()
			before := store.Writes()

			tt.set(cur)
			assert.Equal(t, before, store.Writes())

			tt.set(!cur)
			assert.Equal(t, before+1, store.Writes())
			assert.Equal(t, !cur, tt.get())
		})
	}
}

func TestOrdinarySettersAlwaysWrite(t *testing.T) {
	p, store, _ := newTestPreferences(t)

	before := store.Writes()
	p.SetIsTapToRevealEnabled(false)
	p.SetIsTapToRevealEnabled(false)
	assert.Equal(t, before+2, store.Writes())
}

func TestLocale(t *testing.T) {
	p, _, _ := newTestPreferences(t, WithLocaleSource(func() Locale {
		return Locale{Language: "de", Region: "DE"}
	}))

	assert.Equal(t, Locale{Language: "de", Region: "DE"}, p.Locale())

	p.SetLanguage("pt_BR")
	assert.Equal(t, Locale{Language: "pt", Region: "BR"}, p.Locale())

	p.SetLanguage("fr")
	assert.Equal(t, Locale{Language: "fr"}, p.Locale())

	p.SetLanguage(SystemLanguage)
	assert.Equal(t, "de_DE", p.Locale().String())
}

func TestCachePath(t *testing.T) {
	cache := NewMockCache()
	p, store, _ := newTestPreferences(t, WithCache(cache), WithProfile("vault-1"))

	p.SetTapToRevealTime(12)
	p.SetFavorites(nil)
	p.SetCurrentTheme(ThemeDark)

	_, ok := cache.data["pref:vault-1:pref_tap_to_reveal_time"]
	assert.True(t, ok)

	assert.Equal(t, 12, p.TapToRevealTime())
	assert.Equal(t, ThemeDark, p.CurrentTheme())
	assert.Equal(t, int64(1000), p.PasswordReminderTimestamp().UnixMilli())
	assert.GreaterOrEqual(t, cache.Hits(), 3)

	// Writes go to the profile namespace.
	assert.Nil(t, store.Raw("pref_tap_to_reveal_time"))
	e, err := store.Get(context.Background(), "vault-1", "pref_tap_to_reveal_time")
	require.NoError(t, err)
	assert.Equal(t, int32(12), e.Value)
}

func TestCachePath_RemoveEvicts(t *testing.T) {
	cache := NewMockCache()
	p, _, _ := newTestPreferences(t, WithCache(cache))

	p.SetBackupsError(errors.New("quota exceeded"))
	require.NotEmpty(t, p.BackupsError())

	p.SetBackupsError(nil)
	assert.Empty(t, p.BackupsError())
	_, ok := cache.data["pref:default:pref_backups_error"]
	assert.False(t, ok)
}

func TestProfilesAreIsolated(t *testing.T) {
	store := NewMockStorage()
	a, err := New(WithStorage(store), WithProfile("a"), WithLogger(&MockLogger{}))
	require.NoError(t, err)
	b, err := New(WithStorage(store), WithProfile("b"), WithLogger(&MockLogger{}))
	require.NoError(t, err)

	a.SetCurrentTheme(ThemeDark)
	assert.Equal(t, ThemeDark, a.CurrentTheme())
	assert.Equal(t, ThemeSystem, b.CurrentTheme())
	assert.Equal(t, "a", a.ProfileID())
}
