package realtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Event names carried on the fan-out channel. Messages are single
// delimited strings: the event name followed by comma-separated
// fields. Consumers parse this format directly; there is no structured
// schema at the protocol boundary.
const (
	EventStudentAnswered     = "student_answered"
	EventLessonStatusUpdated = "lesson_status_updated"

	// Relay events mirror raw app-to-app traffic: a client sends
	// to_app/to_web and every other listener receives the matching
	// from_web/from_app rebroadcast.
	EventToApp   = "to_app"
	EventToWeb   = "to_web"
	EventFromWeb = "from_web"
	EventFromApp = "from_app"
)

// EncodeStudentAnswered builds the student-answered wire message.
func EncodeStudentAnswered(lessonID, studentID, slotID int64) string {
	return fmt.Sprintf("%s,%d,%d,%d", EventStudentAnswered, lessonID, studentID, slotID)
}

// ParseStudentAnswered decodes a student-answered wire message.
func ParseStudentAnswered(message string) (lessonID, studentID, slotID int64, err error) {
	parts := strings.Split(message, ",")
	if len(parts) != 4 || parts[0] != EventStudentAnswered {
		return 0, 0, 0, fmt.Errorf("malformed student_answered message: %q", message)
	}
	ids := make([]int64, 3)
	for i, raw := range parts[1:] {
		ids[i], err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("malformed student_answered field %q: %w", raw, err)
		}
	}
	return ids[0], ids[1], ids[2], nil
}

// EncodeLessonStatusUpdated builds the lesson-status wire message.
func EncodeLessonStatusUpdated(lessonID int64) string {
	return fmt.Sprintf("%s,%d", EventLessonStatusUpdated, lessonID)
}

// splitEvent separates the event name from the remaining payload.
func splitEvent(message string) (name, rest string) {
	if i := strings.IndexByte(message, ','); i >= 0 {
		return message[:i], message[i+1:]
	}
	return message, ""
}
