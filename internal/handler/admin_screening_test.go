package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/cinema-booking/internal/model"
	"github.com/kinoteka/cinema-booking/internal/repository"
	"github.com/kinoteka/cinema-booking/internal/service"
)

func postScreening(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewAdminScreeningHandler(repository.NewRoomRepo(nil), repository.NewScreeningRepo(nil))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/screenings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Create(e.NewContext(req, rec)))
	return rec
}

func TestCreateScreeningValidatesFields(t *testing.T) {
	rec := postScreening(t, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "roomId")
	assert.Contains(t, body.Errors, "movieTitle")
	assert.Contains(t, body.Errors, "startsAt")
	assert.Contains(t, body.Errors, "endsAt")
	assert.Contains(t, body.Errors, "price")
}

func TestCreateScreeningRejectsInvertedTimes(t *testing.T) {
	rec := postScreening(t, `{
		"roomId": 1,
		"movieTitle": "Barbie",
		"startsAt": "2026-09-02T18:00:00Z",
		"endsAt": "2026-09-02T16:00:00Z",
		"price": "25.00"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "endsAt must be after startsAt", body.Errors["endsAt"])
}

func TestCreateScreeningRejectsBadPrice(t *testing.T) {
	for _, price := range []string{"0.00", "-5.00", "1.999", "abc"} {
		rec := postScreening(t, `{
			"roomId": 1,
			"movieTitle": "Barbie",
			"startsAt": "2026-09-02T16:00:00Z",
			"endsAt": "2026-09-02T18:00:00Z",
			"price": "`+price+`"
		}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, "price %q", price)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Errors, "price")
	}
}

// stubRoomStore/stubSeatStore satisfy the room service interfaces for
// handler construction; validation-failure tests never reach them.
type stubRoomStore struct{}

func (stubRoomStore) Create(context.Context, *model.Room) error { return nil }
func (stubRoomStore) Update(context.Context, *model.Room) error { return nil }
func (stubRoomStore) Delete(context.Context, uint64) error      { return nil }

type stubSeatStore struct{}

func (stubSeatStore) ReplaceForRoom(_ context.Context, _ uint64, seats []model.Seat) ([]model.Seat, error) {
	return seats, nil
}

func TestAdminSeatShape(t *testing.T) {
	seats := model.GenerateSeats(1, 1, 2)
	for i := range seats {
		seats[i].ID = uint64(i + 1)
	}

	out := toAdminSeats(seats)
	require.Len(t, out, 2)
	assert.Equal(t, adminSeatResp{ID: 1, Row: "A", Number: 1, Label: "A1"}, out[0])

	// The room layout view carries no availability claim.
	raw, err := json.Marshal(out[1])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "available")
	assert.JSONEq(t, `{"id":2,"row":"A","number":2,"label":"A2"}`, string(raw))
}

func TestCreateRoomValidatesDims(t *testing.T) {
	svc := service.NewRoomService(stubRoomStore{}, stubSeatStore{})
	h := NewAdminRoomHandler(repository.NewRoomRepo(nil), repository.NewSeatRepo(nil), svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/rooms",
		strings.NewReader(`{"name":"  ","rows":0,"seatsPerRow":-3}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Create(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "rows")
	assert.Contains(t, body.Errors, "seatsPerRow")
}
