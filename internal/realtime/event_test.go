package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentAnsweredRoundTrip(t *testing.T) {
	msg := EncodeStudentAnswered(7, 5, 42)
	assert.Equal(t, "student_answered,7,5,42", msg)

	lessonID, studentID, slotID, err := ParseStudentAnswered(msg)
	require.NoError(t, err)
	assert.Equal(t, int64(7), lessonID)
	assert.Equal(t, int64(5), studentID)
	assert.Equal(t, int64(42), slotID)
}

func TestParseStudentAnsweredMalformed(t *testing.T) {
	cases := []string{
		"",
		"student_answered",
		"student_answered,7,5",
		"student_answered,7,5,42,extra",
		"lesson_status_updated,7,5,42",
		"student_answered,seven,5,42",
	}
	for _, in := range cases {
		_, _, _, err := ParseStudentAnswered(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestEncodeLessonStatusUpdated(t *testing.T) {
	assert.Equal(t, "lesson_status_updated,7", EncodeLessonStatusUpdated(7))
}

func TestSplitEvent(t *testing.T) {
	name, rest := splitEvent("to_app,hello,world")
	assert.Equal(t, "to_app", name)
	assert.Equal(t, "hello,world", rest)

	name, rest = splitEvent("ping")
	assert.Equal(t, "ping", name)
	assert.Empty(t, rest)
}
