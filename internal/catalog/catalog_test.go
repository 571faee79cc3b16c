package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTemplatesAreValid(t *testing.T) {
	for _, w := range All() {
		require.NoError(t, w.Validate(), "workout %s", w.Key)
	}
}

func TestAllFollowsRotationOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	for i, w := range all {
		assert.Equal(t, Order[i], w.Key)
	}
}

func TestNext(t *testing.T) {
	assert.Equal(t, "A", Next(""))
	assert.Equal(t, "B", Next("A"))
	assert.Equal(t, "C", Next("B"))
	assert.Equal(t, "A", Next("C"))
	assert.Equal(t, "A", Next("rest"))
}

func TestValidateRejectsBrokenSuperset(t *testing.T) {
	w := Workout{Key: "X", Exercises: []Exercise{
		{Name: "One", Sets: 3, RepRange: "8-12", Superset: "Two"},
		{Name: "Three", Sets: 3, RepRange: "8-12"},
	}}
	assert.Error(t, w.Validate())

	w = Workout{Key: "X", Exercises: []Exercise{
		{Name: "One", Sets: 3, RepRange: "8-12"},
		{Name: "Two", Sets: 3, RepRange: "8-12", IsSuperset: true},
	}}
	assert.Error(t, w.Validate())

	w = Workout{Key: "X", Exercises: []Exercise{
		{Name: "One", Sets: 3, RepRange: "8-12", Superset: "Two"},
	}}
	assert.Error(t, w.Validate())
}

func TestValidateRejectsZeroSets(t *testing.T) {
	w := Workout{Key: "X", Exercises: []Exercise{{Name: "One", RepRange: "8-12"}}}
	assert.Error(t, w.Validate())
}

func TestPairs(t *testing.T) {
	a, ok := Get("A")
	require.True(t, ok)
	assert.Equal(t, []string{"Push-ups/DB Bench", "Bulgarian Split Squats"}, a.Pairs())
}

func TestIndex(t *testing.T) {
	b, _ := Get("B")
	assert.Equal(t, 0, b.Index("RDLs"))
	assert.Equal(t, 5, b.Index("Calf Raises"))
	assert.Equal(t, -1, b.Index("Squats"))
}

func TestOptionJSONAcceptsBothShapes(t *testing.T) {
	var opts []Option
	err := json.Unmarshal([]byte(`["Push-ups", {"name": "DB Bench", "repRange": "6-10", "bodyweight": false}]`), &opts)
	require.NoError(t, err)
	require.Len(t, opts, 2)

	assert.Equal(t, "Push-ups", opts[0].Name)
	assert.Empty(t, opts[0].RepRange)
	assert.Nil(t, opts[0].Bodyweight)

	assert.Equal(t, "DB Bench", opts[1].Name)
	assert.Equal(t, "6-10", opts[1].RepRange)
	require.NotNil(t, opts[1].Bodyweight)
	assert.False(t, *opts[1].Bodyweight)
}

func TestOptionJSONMarshalsBareNameWithoutOverrides(t *testing.T) {
	data, err := json.Marshal([]Option{{Name: "Lat Pulldowns"}, {Name: "Push-ups", RepRange: "AMRAP"}})
	require.NoError(t, err)
	assert.JSONEq(t, `["Lat Pulldowns", {"name": "Push-ups", "repRange": "AMRAP"}]`, string(data))
}

func TestOptionJSONRejectsNamelessObject(t *testing.T) {
	var o Option
	assert.Error(t, json.Unmarshal([]byte(`{"repRange": "8-12"}`), &o))
}
