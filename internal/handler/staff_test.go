package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomReqValidate(t *testing.T) {
	assert.NoError(t, roomReq{Name: "Board Room", Capacity: 8}.validate())

	err := roomReq{Name: "  ", Capacity: 8}.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	for _, n := range []int64{0, -1} {
		err := roomReq{Name: "Board Room", Capacity: n}.validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "capacity")
	}
}

func TestRoomReqToModelNullsEmptyOptionals(t *testing.T) {
	room := roomReq{Name: " Board Room ", Capacity: 8, Location: "", Description: "  "}.toModel(7)
	assert.Equal(t, uint64(7), room.ID)
	assert.Equal(t, "Board Room", room.Name)
	assert.Nil(t, room.Location)
	assert.Nil(t, room.Description)

	room = roomReq{Name: "Lab", Capacity: 4, Location: "3F"}.toModel(0)
	if assert.NotNil(t, room.Location) {
		assert.Equal(t, "3F", *room.Location)
	}
}
