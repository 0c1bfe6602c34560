package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionLabel(t *testing.T) {
	label, ok := ParseOptionLabel(" B ")
	assert.True(t, ok)
	assert.Equal(t, OptionLabel("b"), label)
	assert.Equal(t, 1, label.Index())

	_, ok = ParseOptionLabel("e")
	assert.False(t, ok)
}

func TestOptions_JSONShape(t *testing.T) {
	opts := Options{"3", "4", "5", "6"}

	data, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"3","b":"4","c":"5","d":"6"}`, string(data))

	var decoded Options
	require.NoError(t, json.Unmarshal([]byte(`{"D":"6","c":"5","b":"4","a":"3"}`), &decoded))
	assert.Equal(t, opts, decoded)
}

func TestOptions_UnmarshalRejectsUnknownShape(t *testing.T) {
	var o Options
	assert.Error(t, json.Unmarshal([]byte(`{"a":"1","b":"2","c":"3"}`), &o))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"1","b":"2","c":"3","z":"4"}`), &o))
	assert.Error(t, json.Unmarshal([]byte(`["1","2","3","4"]`), &o))
}

func TestOptions_UnmarshalRejectsCaseCollidingLabels(t *testing.T) {
	o := Options{"keep", "keep", "keep", "keep"}
	err := json.Unmarshal([]byte(`{"a":"1","A":"2","b":"3","c":"4"}`), &o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate label")
	assert.Equal(t, Options{"keep", "keep", "keep", "keep"}, o, "target must be untouched on error")
}

func TestOptions_SetUnknownLabel(t *testing.T) {
	var o Options
	assert.Error(t, o.Set("x", "nope"))
	require.NoError(t, o.Set("c", "yes"))
	text, ok := o.Text("c")
	assert.True(t, ok)
	assert.Equal(t, "yes", text)
}

func TestQuizQuestion_Validate(t *testing.T) {
	valid := QuizQuestion{Question: "Q?", Options: Options{"1", "2", "3", "4"}, CorrectAnswer: "a"}
	assert.NoError(t, valid.Validate())

	noAnswer := valid
	noAnswer.CorrectAnswer = ""
	assert.Error(t, noAnswer.Validate())

	blankOption := valid
	blankOption.Options[3] = "  "
	assert.ErrorContains(t, blankOption.Validate(), "option d is empty")
}

func TestDomainError_WrappingAndJSON(t *testing.T) {
	cause := assert.AnError
	err := NewUpstreamError(cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeUpstream))
	assert.False(t, IsNotFound(err))
	assert.True(t, IsNotFound(NewNoteNotFoundError("n1")))

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"UPSTREAM_ERROR","message":"Failed to process with LLM service"}`, string(data))
}
