package vaultprefs

import (
	"fmt"
	"net/url"
	"time"
)

// IsTapToRevealEnabled reports whether codes stay hidden until tapped.
func (p *Preferences) IsTapToRevealEnabled() bool { return tapToReveal.get(p) }

func (p *Preferences) SetIsTapToRevealEnabled(enabled bool) { tapToReveal.set(p, enabled) }

// TapToRevealTime is how many seconds a revealed code stays visible.
func (p *Preferences) TapToRevealTime() int { return tapToRevealTime.get(p) }

func (p *Preferences) SetTapToRevealTime(seconds int) { tapToRevealTime.set(p, seconds) }

func (p *Preferences) IsEntryHighlightEnabled() bool { return entryHighlight.get(p) }

func (p *Preferences) SetIsEntryHighlightEnabled(enabled bool) { entryHighlight.set(p, enabled) }

// IsPauseFocusedEnabled only takes effect together with tap-to-reveal or
// entry highlighting; without either it reports false whatever is stored.
func (p *Preferences) IsPauseFocusedEnabled() bool {
	if !p.IsTapToRevealEnabled() && !p.IsEntryHighlightEnabled() {
		return false
	}
	return pauseFocused.get(p)
}

func (p *Preferences) SetIsPauseFocusedEnabled(enabled bool) { pauseFocused.set(p, enabled) }

func (p *Preferences) IsPanicTriggerEnabled() bool { return panicTrigger.get(p) }

func (p *Preferences) SetIsPanicTriggerEnabled(enabled bool) { panicTrigger.set(p, enabled) }

// IsSecureScreenEnabled defaults to true, except in debug builds.
func (p *Preferences) IsSecureScreenEnabled() bool { return secureScreen.get(p) }

func (p *Preferences) SetIsSecureScreenEnabled(enabled bool) { secureScreen.set(p, enabled) }

func (p *Preferences) IsPinKeyboardEnabled() bool { return pinKeyboard.get(p) }

func (p *Preferences) SetIsPinKeyboardEnabled(enabled bool) { pinKeyboard.set(p, enabled) }

// IdleTimeout returns the stored idle timeout; -1 means disabled.
func (p *Preferences) IdleTimeout() int { return idleTimeout.get(p) }

func (p *Preferences) SetIdleTimeout(timeout int) { idleTimeout.set(p, timeout) }

// PasswordReminderFrequency returns the configured frequency. Installations
// that predate the frequency setting keep the boolean "pref_password_reminder":
// an explicit false there maps to PassReminderNever.
func (p *Preferences) PasswordReminderFrequency() PassReminderFreq {
	return passwordReminderFreq.get(p)
}

func (p *Preferences) SetPasswordReminderFrequency(freq PassReminderFreq) {
	passwordReminderFreq.set(p, freq)
}

// PasswordReminderTimestamp is when the password was last confirmed.
func (p *Preferences) PasswordReminderTimestamp() time.Time {
	return time.UnixMilli(passwordReminderTimestamp.get(p))
}

func (p *Preferences) setPasswordReminderTimestamp(ts time.Time) {
	passwordReminderTimestamp.set(p, ts.UnixMilli())
}

// ResetPasswordReminderTimestamp records the current time as the last confirmation.
func (p *Preferences) ResetPasswordReminderTimestamp() {
	p.setPasswordReminderTimestamp(p.config.clock.Now())
}

// IsPasswordReminderNeeded reports whether a password reminder is due now.
func (p *Preferences) IsPasswordReminderNeeded() bool {
	return p.IsPasswordReminderNeededAt(p.config.clock.Now())
}

// IsPasswordReminderNeededAt reports whether a reminder is due at now. It has no
// side effects; callers reset the timestamp once the user has confirmed.
func (p *Preferences) IsPasswordReminderNeededAt(now time.Time) bool {
	freq := p.PasswordReminderFrequency()
	if freq == PassReminderNever {
		return false
	}

	elapsed := now.UnixMilli() - passwordReminderTimestamp.get(p)
	return elapsed >= freq.Duration().Milliseconds()
}

// AutoLockMask returns the auto-lock bitset. Without a stored mask, the legacy
// "pref_auto_lock" switch picks between DefaultAutoLockMask and AutoLockOff.
func (p *Preferences) AutoLockMask() AutoLockType { return autoLockMask.get(p) }

func (p *Preferences) SetAutoLockMask(mask AutoLockType) { autoLockMask.set(p, mask) }

func (p *Preferences) IsAutoLockEnabled() bool {
	return p.AutoLockMask() != AutoLockOff
}

func (p *Preferences) IsAutoLockTypeEnabled(t AutoLockType) bool {
	return p.AutoLockMask()&t == t
}

func (p *Preferences) IsAccountNameVisible() bool { return accountNameVisible.get(p) }

func (p *Preferences) SetIsAccountNameVisible(visible bool) { accountNameVisible.set(p, visible) }

// CodeGroupSize is the number of digits per group when displaying a code: 2 or 3.
func (p *Preferences) CodeGroupSize() int {
	if codeGroupSize.get(p) {
		return 2
	}
	return 3
}

// SetCodeGroupSize stores 2 as pairs; any other size selects groups of 3.
func (p *Preferences) SetCodeGroupSize(size int) { codeGroupSize.set(p, size == 2) }

func (p *Preferences) CurrentTheme() Theme { return currentTheme.get(p) }

func (p *Preferences) SetCurrentTheme(theme Theme) { currentTheme.set(p, theme) }

func (p *Preferences) CurrentViewMode() ViewMode { return currentViewMode.get(p) }

func (p *Preferences) SetCurrentViewMode(mode ViewMode) { currentViewMode.set(p, mode) }

func (p *Preferences) CurrentSortCategory() SortCategory { return currentSortCategory.get(p) }

func (p *Preferences) SetCurrentSortCategory(category SortCategory) {
	currentSortCategory.set(p, category)
}

// Language returns the stored language: SystemLanguage, "xx" or "xx_YY".
func (p *Preferences) Language() string { return appLanguage.get(p) }

func (p *Preferences) SetLanguage(lang string) { appLanguage.set(p, lang) }

// Locale resolves Language. SystemLanguage yields the environment locale.
func (p *Preferences) Locale() Locale {
	lang := p.Language()
	if lang == SystemLanguage {
		return p.config.localeSource()
	}
	return parseLanguageSetting(lang)
}

func (p *Preferences) IsFocusSearchEnabled() bool { return focusSearch.get(p) }

func (p *Preferences) SetFocusSearch(enabled bool) { focusSearch.set(p, enabled) }

func (p *Preferences) IsCopyOnTapEnabled() bool { return copyOnTap.get(p) }

func (p *Preferences) SetIsCopyOnTapEnabled(enabled bool) { copyOnTap.set(p, enabled) }

func (p *Preferences) IsTimeSyncWarningEnabled() bool { return timeSyncWarning.get(p) }

func (p *Preferences) SetIsTimeSyncWarningEnabled(enabled bool) { timeSyncWarning.set(p, enabled) }

func (p *Preferences) IsIntroDone() bool { return introDone.get(p) }

func (p *Preferences) SetIntroDone(done bool) { introDone.set(p, done) }

func (p *Preferences) IsAndroidBackupsEnabled() bool { return androidBackupsEnabled.get(p) }

func (p *Preferences) SetIsAndroidBackupsEnabled(enabled bool) { androidBackupsEnabled.set(p, enabled) }

func (p *Preferences) IsBackupsEnabled() bool { return backupsEnabled.get(p) }

func (p *Preferences) SetIsBackupsEnabled(enabled bool) { backupsEnabled.set(p, enabled) }

// BackupsLocation returns the backup directory URI, or nil if none is set or
// the stored value does not parse.
func (p *Preferences) BackupsLocation() *url.URL {
	raw := backupsLocation.get(p)
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		p.config.logger.Warn("Stored backups location is not a URI", "error", err)
		return nil
	}
	return u
}

// SetBackupsLocation stores the backup directory URI; nil clears it.
func (p *Preferences) SetBackupsLocation(location *url.URL) {
	if location == nil {
		p.remove(backupsLocation.key)
		return
	}
	backupsLocation.set(p, location.String())
}

func (p *Preferences) BackupsVersionCount() int { return backupsVersionCount.get(p) }

func (p *Preferences) SetBackupsVersionCount(versions int) { backupsVersionCount.set(p, versions) }

// BackupsError returns the description of the last failed backup, or "".
func (p *Preferences) BackupsError() string { return backupsError.get(p) }

// SetBackupsError records err as "<type>: <message>" for display; nil clears it.
func (p *Preferences) SetBackupsError(err error) {
	if err == nil {
		p.remove(backupsError.key)
		return
	}
	backupsError.set(p, fmt.Sprintf("%T: %s", err, err.Error()))
}

func (p *Preferences) IsBackupReminderNeeded() bool { return backupReminderNeeded.get(p) }

// SetIsBackupReminderNeeded writes only when the stored flag changes.
func (p *Preferences) SetIsBackupReminderNeeded(needed bool) { backupReminderNeeded.set(p, needed) }

// IsPlaintextBackupWarningNeeded is false whenever CanShowPlaintextBackupWarning
// is false. The underlying flag is left untouched by that gate.
func (p *Preferences) IsPlaintextBackupWarningNeeded() bool {
	if !p.CanShowPlaintextBackupWarning() {
		return false
	}
	return p.PlaintextBackupWarningFlag()
}

// PlaintextBackupWarningFlag returns the stored flag without the display gate.
func (p *Preferences) PlaintextBackupWarningFlag() bool { return plaintextBackupWarningNeeded.get(p) }

// SetIsPlaintextBackupWarningNeeded writes only when needed differs from
// IsPlaintextBackupWarningNeeded. While the warning is hidden, set(false)
// leaves the stored flag in place.
func (p *Preferences) SetIsPlaintextBackupWarningNeeded(needed bool) {
	plaintextBackupWarningNeeded.set(p, needed)
}

func (p *Preferences) CanShowPlaintextBackupWarning() bool {
	return canShowPlaintextBackupWarning.get(p)
}

// SetCanShowPlaintextBackupWarning writes only when the stored flag changes.
func (p *Preferences) SetCanShowPlaintextBackupWarning(canShow bool) {
	canShowPlaintextBackupWarning.set(p, canShow)
}
