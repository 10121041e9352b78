package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/room-reservation/internal/repository"
)

// newTestContext builds an echo context carrying an authenticated user,
// the way the JWT middleware would leave it.
func newTestContext(t *testing.T, method, path, body string, userID interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c, rec
}

// validationHandler returns a handler whose repositories are never
// reached: only input-validation paths may run against it.
func validationHandler() *ReservationHandler {
	return NewReservationHandler(
		repository.NewRoomRepo(nil),
		repository.NewReservationRepo(nil),
		repository.NewNotificationRepo(nil),
	)
}

func TestCreateRejectsMissingRoom(t *testing.T) {
	h := validationHandler()
	c, rec := newTestContext(t, http.MethodPost, "/v1/reservations",
		`{"date":"2024-06-01","start_time":"09:00","end_time":"10:00"}`, uint64(1))
	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "room_id")
}

func TestCreateRejectsInvertedSlot(t *testing.T) {
	h := validationHandler()
	c, rec := newTestContext(t, http.MethodPost, "/v1/reservations",
		`{"room_id":3,"date":"2024-06-01","start_time":"10:00","end_time":"09:00"}`, uint64(1))
	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRequiresAuthenticatedUser(t *testing.T) {
	h := validationHandler()
	c, rec := newTestContext(t, http.MethodPost, "/v1/reservations",
		`{"room_id":3,"date":"2024-06-01","start_time":"09:00","end_time":"10:00"}`, nil)
	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateRejectsBadID(t *testing.T) {
	h := validationHandler()
	c, rec := newTestContext(t, http.MethodPut, "/v1/reservations/abc",
		`{"date":"2024-06-01","start_time":"09:00","end_time":"10:00"}`, uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("abc")
	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteRejectsBadID(t *testing.T) {
	h := validationHandler()
	c, rec := newTestContext(t, http.MethodDelete, "/v1/reservations/0", "", uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("0")
	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookedMessageFormat(t *testing.T) {
	date, iv, err := parseSlot(slotRequest{Date: "2024-06-01", StartTime: "09:00", EndTime: "10:30"})
	assert.NoError(t, err)
	start, end := clockRange(iv)
	msg := bookedMessage("Board Room", date, start, end)
	assert.Equal(t, "Board Room on 2024-06-01 from 09:00 to 10:30 has been reserved.", msg)
}

func TestTrimStored(t *testing.T) {
	assert.Equal(t, "09:00", trimStored("09:00:00"))
	assert.Equal(t, "9:00", trimStored("9:00"))
}
