package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/model"
	"github.com/tartampluch/go-keepintouch/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateAndGetFriend(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	f := &model.Friend{
		Name:     "Alice",
		Tier:     model.TierClose,
		Birthday: &model.Birthday{Year: 1990, Month: time.June, Day: 15, YearKnown: true},
		Starred:  true,
	}
	require.NoError(t, db.CreateFriend(ctx, f))
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, config.DefaultContactFrequencyDays, f.ContactFrequencyDays,
		"zero frequency falls back to the default")

	got, err := db.GetFriend(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, model.TierClose, got.Tier)
	assert.True(t, got.Starred)
	require.NotNil(t, got.Birthday)
	assert.Equal(t, time.June, got.Birthday.Month)
	assert.Equal(t, 15, got.Birthday.Day)
	assert.True(t, got.Birthday.YearKnown)
	assert.Nil(t, got.LastContactedAt, "new friends start never-contacted")
}

func TestCreateFriend_RejectsInvalid(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		friend model.Friend
	}{
		{"Empty name", model.Friend{Tier: model.TierClose, ContactFrequencyDays: 14}},
		{"Negative frequency", model.Friend{Name: "X", Tier: model.TierClose, ContactFrequencyDays: -1}},
		{"Unknown tier", model.Friend{Name: "X", Tier: "bestie", ContactFrequencyDays: 14}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.friend
			assert.Error(t, db.CreateFriend(ctx, &f))
		})
	}
}

func TestFindFriend_ByIDThenName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	f := &model.Friend{Name: "Bob", Tier: model.TierTop}
	require.NoError(t, db.CreateFriend(ctx, f))

	byID, err := db.FindFriend(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, byID.ID)

	byName, err := db.FindFriend(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, f.ID, byName.ID)

	_, err = db.FindFriend(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListFriends_StableOrderAndTierFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, spec := range []struct {
		name string
		tier model.Tier
	}{
		{"First", model.TierClose},
		{"Second", model.TierOther},
		{"Third", model.TierClose},
	} {
		require.NoError(t, db.CreateFriend(ctx, &model.Friend{Name: spec.name, Tier: spec.tier}))
	}

	all, err := db.ListFriends(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{all[0].Name, all[1].Name, all[2].Name},
		"roster keeps creation order")

	closeTier, err := db.ListFriends(ctx, model.TierClose)
	require.NoError(t, err)
	assert.Len(t, closeTier, 2)
}

func TestAddInteraction_BumpsLastContacted(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	f := &model.Friend{Name: "Cara", Tier: model.TierClose}
	require.NoError(t, db.CreateFriend(ctx, f))

	occurred := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	in, err := db.AddInteraction(ctx, f.ID, "coffee downtown", occurred)
	require.NoError(t, err)
	assert.Equal(t, f.ID, in.FriendID)

	got, err := db.GetFriend(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastContactedAt)
	assert.True(t, got.LastContactedAt.Equal(occurred),
		"last_contacted_at must equal the interaction timestamp")

	log, err := db.ListInteractions(ctx, f.ID, 0)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "coffee downtown", log[0].Note)
}

func TestAddInteraction_UnknownFriendRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.AddInteraction(ctx, "missing", "note", time.Now())
	assert.Error(t, err)
}

func TestDeleteFriend_CascadesInteractions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	f := &model.Friend{Name: "Dana", Tier: model.TierCordialities}
	require.NoError(t, db.CreateFriend(ctx, f))
	_, err := db.AddInteraction(ctx, f.ID, "call", time.Now())
	require.NoError(t, err)

	require.NoError(t, db.DeleteFriend(ctx, f.ID))

	_, err = db.GetFriend(ctx, f.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	log, err := db.ListInteractions(ctx, f.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestSettings_DefaultsAndRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	settings, err := db.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)

	require.NoError(t, db.SetSetting(ctx, config.SettingDefaultFrequency, "30"))
	require.NoError(t, db.SetSetting(ctx, config.SettingCheckInReminders, config.SettingValueFalse))
	require.NoError(t, db.SetSetting(ctx, config.SettingLanguage, "fr"))

	settings, err = db.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, settings.DefaultContactFrequencyDays)
	assert.False(t, settings.CheckInRemindersEnabled)
	assert.Equal(t, "fr", settings.Language)
}

func TestSetSetting_RejectsInvalid(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	assert.Error(t, db.SetSetting(ctx, config.SettingDefaultFrequency, "0"))
	assert.Error(t, db.SetSetting(ctx, config.SettingDefaultFrequency, "abc"))
	assert.Error(t, db.SetSetting(ctx, config.SettingCheckInReminders, "maybe"))
	assert.Error(t, db.SetSetting(ctx, config.SettingLanguage, "xx"))
	assert.Error(t, db.SetSetting(ctx, "unknown_key", "1"))
}

func TestUpdateFriend_DoesNotTouchLastContacted(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	f := &model.Friend{Name: "Evan", Tier: model.TierClose}
	require.NoError(t, db.CreateFriend(ctx, f))
	occurred := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err := db.AddInteraction(ctx, f.ID, "", occurred)
	require.NoError(t, err)

	f.Tier = model.TierTop
	f.Starred = true
	require.NoError(t, db.UpdateFriend(ctx, f))

	got, err := db.GetFriend(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TierTop, got.Tier)
	require.NotNil(t, got.LastContactedAt)
	assert.True(t, got.LastContactedAt.Equal(occurred))
}
