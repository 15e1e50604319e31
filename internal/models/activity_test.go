package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivitySetUnlocked(t *testing.T) {
	cases := []struct {
		name string
		set  ActivitySet
		want bool
	}{
		{"none", ActivitySet{}, false},
		{"reading", ActivitySet{Reading: true}, true},
		{"exercising", ActivitySet{Exercising: true}, true},
		{"music", ActivitySet{Music: true}, true},
		{"all", ActivitySet{Reading: true, Exercising: true, Music: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.set.Unlocked())
			assert.Equal(t, tc.set.Reading || tc.set.Exercising || tc.set.Music, tc.set.Unlocked())
		})
	}
}

func TestActivitySetToggleIsInvolution(t *testing.T) {
	start := ActivitySet{Reading: false, Exercising: true, Music: false}
	for _, a := range Activities {
		once, err := start.Toggle(a)
		require.NoError(t, err)
		assert.NotEqual(t, start.Has(a), once.Has(a))
		for _, other := range Activities {
			if other != a {
				assert.Equal(t, start.Has(other), once.Has(other))
			}
		}
		twice, err := once.Toggle(a)
		require.NoError(t, err)
		assert.Equal(t, start, twice)
	}

	_, err := start.Toggle(Activity("sleeping"))
	require.Error(t, err)
}

func TestEncodeActivitySetWritesThreeFields(t *testing.T) {
	raw, err := EncodeActivitySet(ActivitySet{Exercising: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reading":false,"exercising":true,"music":false}`, raw)
}

func TestDecodeActivitySet(t *testing.T) {
	set, err := DecodeActivitySet(`{"music":true,"reading":false,"exercising":true,"mood":"great"}`)
	require.NoError(t, err)
	assert.Equal(t, ActivitySet{Exercising: true, Music: true}, set)

	set, err = DecodeActivitySet(` {"reading":true} `)
	require.NoError(t, err)
	assert.Equal(t, ActivitySet{Reading: true}, set)

	// keys are matched exactly; differently cased keys are extra fields
	set, err = DecodeActivitySet(`{"reading":false,"READING":true}`)
	require.NoError(t, err)
	assert.Equal(t, ActivitySet{}, set)

	set, err = DecodeActivitySet(`{"Music":true}`)
	require.NoError(t, err)
	assert.Equal(t, ActivitySet{}, set)

	set, err = DecodeActivitySet(`{"reading":true,"Music":"loud"}`)
	require.NoError(t, err)
	assert.Equal(t, ActivitySet{Reading: true}, set)

	for _, raw := range []string{"", "null", "[]", "true", `"text"`, "{", `{"reading":"yes"}`, `{"music":1}`} {
		_, err := DecodeActivitySet(raw)
		assert.Error(t, err, raw)
	}
}

func TestIsDayKey(t *testing.T) {
	for _, key := range []string{"2024-01-05", "2024-13-40", "0000-00-00"} {
		assert.True(t, IsDayKey(key), key)
	}
	for _, key := range []string{"notes", "@counter_value", "2024-1-05", "2024-01-05 ", "24-01-05", "2024/01/05", "2024-01-055", "２０２４-01-05"} {
		assert.False(t, IsDayKey(key), key)
	}
}

func TestDayKeyForUsesLocation(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	instant := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01", DayKeyFor(instant))
	assert.Equal(t, "2024-06-02", DayKeyFor(instant.In(zone)))
}

func TestParseActivity(t *testing.T) {
	a, err := ParseActivity("music")
	require.NoError(t, err)
	assert.Equal(t, ActivityMusic, a)
	assert.Equal(t, "Exercise", ActivityExercising.Label())

	_, err = ParseActivity("Music")
	require.Error(t, err)
}
