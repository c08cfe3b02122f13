package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lesson Live API",
        "description": "Lesson delivery and live-quiz backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Lessons", "description": "Lesson and exercise lifecycle"},
        {"name": "Answers", "description": "Answer slot updates and dashboard reads"},
        {"name": "Grades", "description": "Grading reports and exports"},
        {"name": "Registrations", "description": "Lesson authoring and calendar"},
        {"name": "Roster", "description": "Classes and students"},
        {"name": "Surveys", "description": "Per-theme student feedback"},
        {"name": "Attendance", "description": "Attendance and lesson information"},
        {"name": "Auth", "description": "Student authentication"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/lessons/{lesson_id}/start": {
            "put": {
                "tags": ["Lessons"],
                "summary": "Start a lesson and provision answer slots",
                "parameters": [
                    {"name": "lesson_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Lesson or students not found"}
                }
            }
        },
        "/lessons/{lesson_id}/end": {
            "put": {
                "tags": ["Lessons"],
                "summary": "End a lesson",
                "parameters": [
                    {"name": "lesson_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Lesson not found"}
                }
            }
        },
        "/lesson_themes/{theme_id}/start_exercise": {
            "put": {
                "tags": ["Lessons"],
                "summary": "Start a registered theme's exercise",
                "parameters": [
                    {"name": "theme_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Theme not registered"}
                }
            }
        },
        "/lesson_themes/{theme_id}/end_exercise": {
            "put": {
                "tags": ["Lessons"],
                "summary": "End a registered theme's exercise",
                "parameters": [
                    {"name": "theme_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Theme not registered"}
                }
            }
        },
        "/lesson_themes/{theme_id}/questions/count": {
            "get": {
                "tags": ["Lessons"],
                "summary": "Count the questions of a theme",
                "parameters": [
                    {"name": "theme_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Theme not found"}
                }
            }
        },
        "/answers": {
            "get": {
                "tags": ["Answers"],
                "summary": "List the answer slots of a lesson",
                "parameters": [
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Answers"],
                "summary": "Apply a partial update to one answer slot",
                "parameters": [
                    {"name": "lesson_answer_data_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnswerUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Slot not found"}
                }
            },
            "delete": {
                "tags": ["Answers"],
                "summary": "Bulk-clear every answer slot of a lesson",
                "parameters": [
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/answers/realtime": {
            "get": {
                "tags": ["Answers"],
                "summary": "Resolve answer slots by their logical key",
                "parameters": [
                    {"name": "lesson_theme_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "student_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "question_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No matching slots"}
                }
            }
        },
        "/grades/raw_data": {
            "get": {
                "tags": ["Grades"],
                "summary": "Raw per-answer grade data of a lesson",
                "parameters": [
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Lesson not found"}
                }
            }
        },
        "/grades/grade_summary": {
            "get": {
                "tags": ["Grades"],
                "summary": "Per-question correctness rates for a year and grade",
                "parameters": [
                    {"name": "academic_year", "in": "query", "required": true, "type": "integer"},
                    {"name": "grade", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No matching classes or students"}
                }
            }
        },
        "/grades/comments": {
            "get": {
                "tags": ["Grades"],
                "summary": "Survey comments attached to a lesson",
                "parameters": [
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/export": {
            "get": {
                "tags": ["Grades"],
                "summary": "Download the raw grade data as CSV or PDF",
                "parameters": [
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "403": {"description": "Export disabled"}
                }
            }
        },
        "/lesson_registrations": {
            "post": {
                "tags": ["Registrations"],
                "summary": "Register a lesson with its themes",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterLessonRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson_registrations/all": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Dump materials, units, and themes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson_registrations/calendar": {
            "get": {
                "tags": ["Registrations"],
                "summary": "List registered lessons with their timetable slots",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No registered lessons"}
                }
            },
            "post": {
                "tags": ["Registrations"],
                "summary": "Register a timetable slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimetableCreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Roster"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Register a class",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Roster"],
                "summary": "List the students of a class",
                "parameters": [
                    {"name": "class_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Enroll a student",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Mail address already registered"}
                }
            }
        },
        "/lesson_surveys": {
            "get": {
                "tags": ["Surveys"],
                "summary": "List the surveys recorded for a theme",
                "parameters": [
                    {"name": "lesson_theme_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Surveys"],
                "summary": "Record a student's theme feedback",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson_attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List the attendance marks of a lesson",
                "parameters": [
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Attendance"],
                "summary": "Mark a student present or absent",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson_attendance/lesson_information": {
            "put": {
                "tags": ["Attendance"],
                "summary": "Flip a lesson live and return its registered themes",
                "parameters": [
                    {"name": "lesson_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        }
    },
    "definitions": {
        "AnswerUpdateRequest": {
            "type": "object",
            "properties": {
                "choice_number": {"type": "integer"},
                "answer_correctness": {"type": "boolean"},
                "answer_status": {"type": "integer", "enum": [1, 2, 3]},
                "answer_start_timestamp": {"type": "string", "format": "date-time"},
                "answer_start_unix": {"type": "integer"},
                "answer_end_timestamp": {"type": "string", "format": "date-time"},
                "answer_end_unix": {"type": "integer"}
            }
        },
        "TimetableCreateRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date-time"},
                "day_of_week": {"type": "string"},
                "period": {"type": "integer"},
                "time": {"type": "string"}
            }
        },
        "RegisterLessonRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "integer"},
                "timetable_id": {"type": "integer"},
                "lesson_name": {"type": "string"},
                "lesson_theme_ids": {
                    "type": "array",
                    "items": {"type": "integer"}
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
