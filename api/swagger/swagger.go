package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Tracker API",
        "description": "Personal academic schedule and course tracker",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Daily slot schedule"},
        {"name": "Timetable", "description": "Weekly slot assignments"},
        {"name": "Courses", "description": "Course registry with marks, tasks and notes"},
        {"name": "Setup", "description": "Onboarding state"},
        {"name": "Export", "description": "CSV and PDF downloads"}
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Get the slot schedule",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Schedule"],
                "summary": "Replace the slot schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceSlotsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Per-slot validation report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/summary": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Summarize the slot schedule",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the resolved weekly timetable",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Timetable"],
                "summary": "Replace the weekly timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Assignment violations", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable/today": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get today's resolved timetable",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable/now": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the current and next slot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable/progress": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get timetable completion progress",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable/{day}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get a resolved day timetable",
                "parameters": [
                    {"name": "day", "in": "path", "required": true, "type": "string", "enum": ["MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Update course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course and its timetable assignments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/courses/{id}/summary": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course summary",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/setup": {
            "get": {
                "tags": ["Setup"],
                "summary": "Get setup status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/setup/complete": {
            "post": {
                "tags": ["Setup"],
                "summary": "Mark setup as complete",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Timetable incomplete", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/setup/reset": {
            "post": {
                "tags": ["Setup"],
                "summary": "Reset all stored data",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/exports/timetable": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the weekly timetable",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/api/v1/exports/courses/{id}": {
            "get": {
                "tags": ["Export"],
                "summary": "Export a course report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "ReplaceSlotsRequest": {
            "type": "object",
            "properties": {
                "slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SlotEntry"}
                }
            }
        },
        "SlotEntry": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "kind": {"type": "string"},
                "start_time": {"type": "string", "example": "08:00"},
                "end_time": {"type": "string", "example": "08:45"}
            }
        },
        "ReplaceTimetableRequest": {
            "type": "object",
            "properties": {
                "days": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/DayAssignmentsRequest"}
                }
            }
        },
        "DayAssignmentsRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "assignments": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AssignmentRequest"}
                }
            }
        },
        "AssignmentRequest": {
            "type": "object",
            "properties": {
                "slot_id": {"type": "string"},
                "kind": {"type": "string"},
                "course_id": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "faculty_name": {"type": "string"},
                "course_code": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "UpdateCourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "faculty_name": {"type": "string"},
                "course_code": {"type": "string"},
                "color": {"type": "string"},
                "current_unit": {"type": "string"},
                "previous_class_topic": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
