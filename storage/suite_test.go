package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/vaultprefs"
)

// assertSameJSON compares values by their JSON encoding, since backends that
// round-trip through JSON return json.Number and []interface{}.
func assertSameJSON(t *testing.T, want, got interface{}) {
	t.Helper()
	w, err := json.Marshal(want)
	require.NoError(t, err)
	g, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(w), string(g))
}

// runStorageSuite exercises the behavior every backend must share.
func runStorageSuite(t *testing.T, newStorage func(t *testing.T) vaultprefs.Storage) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("get missing", func(t *testing.T) {
		s := newStorage(t)
		_, err := s.Get(ctx, "default", "pref_intro")
		assert.ErrorIs(t, err, vaultprefs.ErrNotFound)
	})

	t.Run("round trip every type", func(t *testing.T) {
		s := newStorage(t)
		entries := []*vaultprefs.Entry{
			{ProfileID: "default", Key: "pref_intro", Type: vaultprefs.BoolType, Value: true, UpdatedAt: now},
			{ProfileID: "default", Key: "pref_current_theme", Type: vaultprefs.IntType, Value: int32(4), UpdatedAt: now},
			{ProfileID: "default", Key: "pref_password_reminder_counter", Type: vaultprefs.LongType, Value: int64(1714564800123), UpdatedAt: now},
			{ProfileID: "default", Key: "pref_lang", Type: vaultprefs.StringType, Value: "pt_BR", UpdatedAt: now},
			{ProfileID: "default", Key: "pref_favorites", Type: vaultprefs.StringSetType, Value: []string{"a", "b"}, UpdatedAt: now},
		}

		for _, e := range entries {
			require.NoError(t, s.Set(ctx, e))
		}
		for _, e := range entries {
			got, err := s.Get(ctx, e.ProfileID, e.Key)
			require.NoError(t, err, e.Key)
			assert.Equal(t, e.ProfileID, got.ProfileID)
			assert.Equal(t, e.Key, got.Key)
			assert.Equal(t, e.Type, got.Type)
			assertSameJSON(t, e.Value, got.Value)
			assert.WithinDuration(t, now, got.UpdatedAt, time.Second)
		}

		all, err := s.GetAll(ctx, "default")
		require.NoError(t, err)
		assert.Len(t, all, len(entries))
	})

	t.Run("overwrite replaces type and value", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Set(ctx, &vaultprefs.Entry{ProfileID: "default", Key: "pref_auto_lock_mask", Type: vaultprefs.StringType, Value: "6", UpdatedAt: now}))
		require.NoError(t, s.Set(ctx, &vaultprefs.Entry{ProfileID: "default", Key: "pref_auto_lock_mask", Type: vaultprefs.IntType, Value: int32(6), UpdatedAt: now}))

		got, err := s.Get(ctx, "default", "pref_auto_lock_mask")
		require.NoError(t, err)
		assert.Equal(t, vaultprefs.IntType, got.Type)
		assertSameJSON(t, 6, got.Value)
	})

	t.Run("profiles are isolated", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Set(ctx, &vaultprefs.Entry{ProfileID: "a", Key: "pref_intro", Type: vaultprefs.BoolType, Value: true, UpdatedAt: now}))

		_, err := s.Get(ctx, "b", "pref_intro")
		assert.ErrorIs(t, err, vaultprefs.ErrNotFound)

		all, err := s.GetAll(ctx, "b")
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Set(ctx, &vaultprefs.Entry{ProfileID: "default", Key: "pref_backups_error", Type: vaultprefs.StringType, Value: "boom", UpdatedAt: now}))

		require.NoError(t, s.Delete(ctx, "default", "pref_backups_error"))
		_, err := s.Get(ctx, "default", "pref_backups_error")
		assert.ErrorIs(t, err, vaultprefs.ErrNotFound)

		assert.ErrorIs(t, s.Delete(ctx, "default", "pref_backups_error"), vaultprefs.ErrNotFound)
	})

	t.Run("preferences facade on top", func(t *testing.T) {
		s := newStorage(t)
		clock := vaultprefs.ClockFunc(func() time.Time { return time.UnixMilli(1714564800123) })
		opts := []vaultprefs.Option{vaultprefs.WithStorage(s), vaultprefs.WithClock(clock)}

		p, err := vaultprefs.New(opts...)
		require.NoError(t, err)
		p.SetCurrentTheme(vaultprefs.ThemeAmoled)
		p.SetAutoLockMask(vaultprefs.AutoLockOnMinimize | vaultprefs.AutoLockOnDeviceLock)
		p.SetTapToRevealTime(45)
		p.SetLanguage("pt_BR")

		// A second facade sees the values as decoded from the backend.
		p2, err := vaultprefs.New(opts...)
		require.NoError(t, err)
		assert.Equal(t, vaultprefs.ThemeAmoled, p2.CurrentTheme())
		assert.True(t, p2.IsAutoLockTypeEnabled(vaultprefs.AutoLockOnMinimize))
		assert.False(t, p2.IsAutoLockTypeEnabled(vaultprefs.AutoLockOnBackButton))
		assert.Equal(t, 45, p2.TapToRevealTime())
		assert.Equal(t, "pt_BR", p2.Language())
		assert.Equal(t, int64(1714564800123), p2.PasswordReminderTimestamp().UnixMilli())
	})
}
