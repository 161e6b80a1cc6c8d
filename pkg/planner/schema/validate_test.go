package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

func TestValidate_Valid(t *testing.T) {
	value, err := PartyDef.Validate([]byte(`{"adults": 2, "children": 1}`))
	require.NoError(t, err)

	answer, ok := value.(*PartyAnswer)
	require.True(t, ok)
	assert.Equal(t, 2, answer.Adults)
	assert.Equal(t, 1, answer.Children)
}

func TestValidate_MalformedJSON(t *testing.T) {
	_, err := PartyDef.Validate([]byte(`{"adults": 2,`))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaParse, apperrors.Code(err))
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	_, err := PartyDef.Validate([]byte(`{"adults": 2}`))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaValidation, apperrors.Code(err))
	assert.Contains(t, err.Error(), `"children"`)
}

func TestValidate_MissingFields_AllReported(t *testing.T) {
	_, err := PartyDef.Validate([]byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"adults"`)
	assert.Contains(t, err.Error(), `"children"`)
}

func TestValidate_UnknownField(t *testing.T) {
	_, err := PartyDef.Validate([]byte(`{"adults": 2, "children": 0, "pets": 3}`))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaValidation, apperrors.Code(err))
}

func TestValidate_MistypedField(t *testing.T) {
	_, err := PartyDef.Validate([]byte(`{"adults": "two", "children": 0}`))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaValidation, apperrors.Code(err))
}

func TestValidate_NestedMissingFields(t *testing.T) {
	raw := []byte(`{
		"trip_id": "t1",
		"user_id": "u1",
		"trip_name": "Rome",
		"start_date": "2026-05-01",
		"end_date": "2026-05-02",
		"destinations": [{"location": "Rome"}],
		"notes": "",
		"number_of_adults": 2,
		"number_of_children": 0
	}`)

	_, err := ItineraryDef.Validate(raw)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaValidation, apperrors.Code(err))
	assert.Contains(t, err.Error(), `"destinations[0].arrival_date"`)
	assert.Contains(t, err.Error(), `"destinations[0].accommodation"`)
}

func TestValidate_NestedObjectMissingFields(t *testing.T) {
	raw := []byte(`{
		"trip_id": "t1",
		"user_id": "u1",
		"trip_name": "Rome",
		"start_date": "2026-05-01",
		"end_date": "2026-05-02",
		"destinations": [{
			"location": "Rome",
			"latitude": 41.9,
			"longitude": 12.5,
			"arrival_date": "2026-05-01",
			"departure_date": "2026-05-02",
			"accommodation": {"name": "Hotel Roma"},
			"activities": [],
			"transportation": []
		}],
		"notes": "",
		"number_of_adults": 2,
		"number_of_children": 0
	}`)

	_, err := ItineraryDef.Validate(raw)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaValidation, apperrors.Code(err))
	assert.Contains(t, err.Error(), `"destinations[0].accommodation.check_in"`)
}

func TestValidate_NestedComplete(t *testing.T) {
	raw, err := json.Marshal(sampleItinerary())
	require.NoError(t, err)

	value, err := ItineraryDef.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, sampleItinerary(), value.(*Itinerary))
}

func TestValidateMap(t *testing.T) {
	value, err := DatesDef.ValidateMap(map[string]interface{}{"dates": "2026-05-01 to 2026-05-08"})
	require.NoError(t, err)

	answer := value.(*DatesAnswer)
	assert.Equal(t, "2026-05-01 to 2026-05-08", answer.Dates)
}

func TestValidateMap_Invalid(t *testing.T) {
	_, err := DatesDef.ValidateMap(map[string]interface{}{"when": "May"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaValidation, apperrors.Code(err))
}
