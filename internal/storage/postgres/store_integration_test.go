package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/attendance-be/internal/models"
	"github.com/hongminglow/attendance-be/internal/storage"
)

// TestStoreIntegration exercises the store against a live Postgres database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_PG_INTEGRATION") != "true" {
		t.Skip("set RUN_PG_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dbURL)
	require.NoError(t, err)
	defer store.Close()

	email := fmt.Sprintf("pgtest_%d@example.com", time.Now().UnixNano())
	user, err := store.CreateEmployeeUser(ctx, models.User{Email: email, Password: "p", Role: models.RoleEmployee})
	require.NoError(t, err)
	require.NotNil(t, user.EmployeeID)

	_, err = store.CreateEmployeeUser(ctx, models.User{Email: email, Password: "p", Role: models.RoleEmployee})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	found, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.False(t, found.Approved)

	pending, err := store.ListPending(ctx)
	require.NoError(t, err)
	assert.Contains(t, pending, models.PendingUser{ID: user.ID, Email: email})

	changed, err := store.Approve(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	day := models.Date{Year: 2001, Month: time.January, Day: 2}
	empID := *user.EmployeeID
	require.NoError(t, store.CreateAttendance(ctx, models.AttendanceRecord{EmployeeID: empID, Date: day, InTime: 9 * 3600}))
	require.ErrorIs(t, store.CreateAttendance(ctx, models.AttendanceRecord{EmployeeID: empID, Date: day, InTime: 9 * 3600}), storage.ErrAlreadyExists)
	require.ErrorIs(t, store.CreateAttendance(ctx, models.AttendanceRecord{EmployeeID: -1, Date: day, InTime: 9 * 3600}), storage.ErrUnknownEmployee)

	rec, err := store.CloseAttendance(ctx, empID, day, 17*3600+1800, func(rec models.AttendanceRecord) models.Hours {
		return models.HoursBetween(rec.InTime, *rec.OutTime)
	})
	require.NoError(t, err)
	assert.Equal(t, "8.50", rec.WorkingHours.String())

	recs, err := store.ListAttendance(ctx, models.AttendanceFilter{EmployeeID: empID})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "17:30:00", recs[0].OutTime.String())
	assert.Equal(t, "8.50", recs[0].WorkingHours.String())

	rows, err := store.ExportAttendance(ctx, models.AttendanceFilter{From: day, To: day})
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	_, err = store.CloseAttendance(ctx, empID, models.Date{Year: 2001, Month: time.January, Day: 3}, 3600, func(models.AttendanceRecord) models.Hours { return 0 })
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func loadDotEnv() {
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		_ = godotenv.Overload(path)
	}
}
