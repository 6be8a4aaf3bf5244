package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_RegisterThenLogin(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		email := uniqueEmail("alice")

		reg := register(t, f, email, "Passw0rd1")

		res, err := f.auth.Login(ctx, email, "Passw0rd1")
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, res.User.ID)

		id, err := f.tokens.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, id)
	})
}

func TestProperty_DuplicateEmailAnyCase(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		email := uniqueEmail("bob")
		register(t, f, email, "Passw0rd1")

		_, err := f.auth.Register(context.Background(), strings.ToUpper(email), "Passw0rd1")
		require.ErrorIs(t, err, common.ErrorConflict)
	})
}

func TestProperty_OwnershipIsolation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		u1 := register(t, f, uniqueEmail("u1"), "Passw0rd1").User.ID
		u2 := register(t, f, uniqueEmail("u2"), "Passw0rd1").User.ID

		e := createEvent(t, f, u1, models.NewEvent{Title: "Private", Date: "2024-05-05", Type: models.EventTypeExam})

		list, err := f.events.List(ctx, u2, "2024-01-01", "2024-12-31")
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = f.events.Get(ctx, u2, e.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)

		_, err = f.events.Update(ctx, u2, e.ID, models.EventPatch{Title: mo.Some("Hijacked")})
		require.ErrorIs(t, err, common.ErrorNotFound)

		err = f.events.Delete(ctx, u2, e.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)

		mine, err := f.events.Get(ctx, u1, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "Private", mine.Title)
	})
}

func TestProperty_SoftDeleteHidesEvent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		owner := register(t, f, uniqueEmail("del"), "Passw0rd1").User.ID

		e := createEvent(t, f, owner, models.NewEvent{Title: "Parcel", Date: "2024-06-01", Type: models.EventTypeDelivery})

		require.NoError(t, f.events.Delete(ctx, owner, e.ID))

		list, err := f.events.List(ctx, owner, "2024-06-01", "2024-06-30")
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = f.events.Get(ctx, owner, e.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)

		_, err = f.events.Update(ctx, owner, e.ID, models.EventPatch{Title: mo.Some("Revived")})
		require.ErrorIs(t, err, common.ErrorNotFound)

		err = f.events.Delete(ctx, owner, e.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestProperty_ListRangeAndOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		owner := register(t, f, uniqueEmail("order"), "Passw0rd1").User.ID

		for _, in := range []models.NewEvent{
			{Title: "timed", Date: "2024-01-15", Time: "00:01", Type: models.EventTypeClass},
			{Title: "out-after", Date: "2024-02-01", Type: models.EventTypeClass},
			{Title: "untimed", Date: "2024-01-15", Type: models.EventTypeClass},
			{Title: "end", Date: "2024-01-31", Time: "23:59", Type: models.EventTypeExam},
			{Title: "start", Date: "2024-01-01", Time: "12:00", Type: models.EventTypeExam},
			{Title: "out-before", Date: "2023-12-31", Time: "23:59", Type: models.EventTypeExam},
			{Title: "evening", Date: "2024-01-15", Time: "18:30", Type: models.EventTypeDelivery},
		} {
			createEvent(t, f, owner, in)
		}

		list, err := f.events.List(ctx, owner, "2024-01-01", "2024-01-31")
		require.NoError(t, err)

		got := make([]string, 0, len(list))
		for _, e := range list {
			got = append(got, e.Title)
		}
		assert.Equal(t, []string{"start", "untimed", "timed", "evening", "end"}, got)
	})
}

func TestProperty_CreateRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		owner := register(t, f, uniqueEmail("rt"), "Passw0rd1").User.ID
		days := 2

		in := models.NewEvent{
			Title:        "Physics lab",
			Description:  "Bring goggles",
			Date:         "2024-04-02",
			Time:         "08:15",
			Type:         models.EventTypeClass,
			Organization: "Uni",
			RemindDays:   &days,
		}
		created := createEvent(t, f, owner, in)

		got, err := f.events.Get(ctx, owner, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, owner, got.UserID)
		assert.Equal(t, in.Title, got.Title)
		assert.Equal(t, in.Description, got.Description)
		assert.Equal(t, in.Date, got.Date)
		assert.Equal(t, in.Time, got.Time)
		assert.Equal(t, in.Type, got.Type)
		assert.Equal(t, in.Organization, got.Organization)
		require.NotNil(t, got.RemindDays)
		assert.Equal(t, days, *got.RemindDays)
		assert.Nil(t, got.DeletedAt)
	})
}

func TestProperty_WrongCurrentPasswordKeepsHash(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		email := uniqueEmail("pw")
		id := register(t, f, email, "Passw0rd1").User.ID

		err := f.profiles.ChangePassword(ctx, id, "NotMine123", "Replaced1")
		require.ErrorIs(t, err, common.ErrorUnauthorized)

		_, err = f.auth.Login(ctx, email, "Passw0rd1")
		require.NoError(t, err)
	})
}
