package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_Validate_ValidUUID(t *testing.T) {
	id := ID("550e8400-e29b-41d4-a716-446655440000")
	assert.NoError(t, id.Validate())
}

func TestID_Validate_EmptyString(t *testing.T) {
	err := ID("").Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestID_Validate_InvalidFormat(t *testing.T) {
	err := ID("not-a-uuid").Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ID format")
}

func TestNewID_GeneratesValidUUID(t *testing.T) {
	assert.NoError(t, NewID().Validate())
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts := Timestamp(time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC))
	data, err := json.Marshal(ts)
	assert.NoError(t, err)
	assert.Equal(t, "\"2023-10-27T10:00:00Z\"", string(data))
}

func TestTimestamp_UnmarshalJSON_Valid(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte("\"2023-10-27T10:00:00Z\""), &ts))
	assert.Equal(t, time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC), time.Time(ts))
}

func TestTimestamp_UnmarshalJSON_Invalid(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte("\"invalid-date\""), &ts))
}

func TestTimestamp_ToUnixMilli_RoundTrip(t *testing.T) {
	ts := Timestamp(time.Now().UTC().Truncate(time.Millisecond))
	assert.Equal(t, ts, FromUnixMilli(ts.ToUnixMilli()))
}

func TestPagination_Normalize(t *testing.T) {
	assert.Equal(t, Pagination{Limit: DefaultPageLimit}, Pagination{}.Normalize())
	assert.Equal(t, Pagination{Limit: MaxPageLimit, Offset: 0}, Pagination{Limit: 9999, Offset: -3}.Normalize())
	assert.Equal(t, Pagination{Limit: 5, Offset: 10}, Pagination{Limit: 5, Offset: 10}.Normalize())
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse("ok")
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Data)
	assert.Nil(t, resp.Error)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("STRUCT_004", "invalid PDB id")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "STRUCT_004", resp.Error.Code)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)
}

func TestNewBaseEvent(t *testing.T) {
	e := NewBaseEvent("1UBQ")
	assert.NotEmpty(t, e.EventID())
	assert.Equal(t, "1UBQ", e.AggregateID())
	assert.False(t, e.OccurredAt().IsZero())
}

//Personal.AI order the ending
