package isotime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for _, in := range []string{
		`"2024-05-01T10:00:00"`,
		`"2024-05-01T10:00:00.000000"`,
		`"2024-05-01T10:00:00Z"`,
		`"2024-05-01T18:00:00+08:00"`,
	} {
		var got Time
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.True(t, want.Equal(got.Time), in)
	}
}

func TestUnmarshal_Null(t *testing.T) {
	var v struct {
		Deadline *Time `json:"deadline"`
		Created  Time  `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"deadline":null,"created_at":null}`), &v))
	assert.Nil(t, v.Deadline)
	assert.True(t, v.Created.IsZero())
}

func TestUnmarshal_Invalid(t *testing.T) {
	var got Time
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &got))
}
