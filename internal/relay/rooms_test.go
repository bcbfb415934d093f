package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomTable_JoinIsIdempotent(t *testing.T) {
	table := NewRoomTable()

	table.Join("conv1", "connA")
	table.Join("conv1", "connA")
	table.Join("conv1", "connB")

	assert.Equal(t, 2, table.Size("conv1"))
	assert.ElementsMatch(t, []string{"connA", "connB"}, table.Members("conv1"))
}

func TestRoomTable_LeaveDropsEmptyRooms(t *testing.T) {
	table := NewRoomTable()

	table.Join("conv1", "connA")
	table.Join("conv1", "connB")

	table.Leave("conv1", "connA")
	assert.Equal(t, 1, table.Size("conv1"))

	table.Leave("conv1", "connB")
	assert.Equal(t, 0, table.Size("conv1"))

	// The conversation entry itself is removed, not kept as an empty set.
	_, exists := table.rooms["conv1"]
	assert.False(t, exists)
	_, exists = table.conns["connA"]
	assert.False(t, exists)
}

func TestRoomTable_LeaveUnknownRoomIsNoop(t *testing.T) {
	table := NewRoomTable()
	table.Leave("missing", "connA")
	assert.Empty(t, table.Members("missing"))
}

func TestRoomTable_DropConnRemovesFromEveryRoom(t *testing.T) {
	table := NewRoomTable()

	table.Join("conv1", "connA")
	table.Join("conv2", "connA")
	table.Join("conv2", "connB")

	affected := table.DropConn("connA")
	assert.ElementsMatch(t, []string{"conv1", "conv2"}, affected)

	// connA gone everywhere; conv1 was emptied and dropped entirely.
	assert.Empty(t, table.Members("conv1"))
	assert.ElementsMatch(t, []string{"connB"}, table.Members("conv2"))
	_, exists := table.rooms["conv1"]
	assert.False(t, exists)
	_, exists = table.conns["connA"]
	assert.False(t, exists)
}

func TestRoomTable_DropConnUnknownReturnsNothing(t *testing.T) {
	table := NewRoomTable()
	assert.Empty(t, table.DropConn("ghost"))
}
