package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "College Schedule API",
        "description": "Class scheduling with venue conflict detection and holiday-aware weekly recurrence.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "ClassSchedules", "description": "Single and weekly recurring class scheduling"},
        {"name": "Holidays", "description": "Holiday calendar used to skip dates"}
    ],
    "paths": {
        "/class-schedules": {
            "get": {
                "tags": ["ClassSchedules"],
                "summary": "List class schedule entries",
                "parameters": [
                    {"name": "venue_id", "in": "query", "type": "string"},
                    {"name": "assignment_id", "in": "query", "type": "string"},
                    {"name": "department_id", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "include_cancelled", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["ClassSchedules"],
                "summary": "Schedule a class (single or weekly recurring)",
                "parameters": [
                    {"name": "academic_year_id", "in": "query", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleCommand"}}
                ],
                "responses": {
                    "200": {"description": "Nothing created", "schema": {"$ref": "#/definitions/ScheduleResultEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ScheduleResultEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Outside admin scope", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Venue conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-schedules/availability": {
            "get": {
                "tags": ["ClassSchedules"],
                "summary": "Check whether a venue window is free",
                "parameters": [
                    {"name": "venue_id", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "format": "date", "required": true},
                    {"name": "start_time", "in": "query", "type": "string", "required": true},
                    {"name": "end_time", "in": "query", "type": "string", "required": true},
                    {"name": "exclude_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-schedules/{id}": {
            "put": {
                "tags": ["ClassSchedules"],
                "summary": "Edit a class schedule entry",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleCommand"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ScheduleResultEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Venue conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["ClassSchedules"],
                "summary": "Permanently delete a class schedule entry",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/class-schedules/{id}/cancel": {
            "patch": {
                "tags": ["ClassSchedules"],
                "summary": "Cancel or restore a class schedule entry",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Restoring would conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/holidays": {
            "get": {
                "tags": ["Holidays"],
                "summary": "List holidays",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "department_id", "in": "query", "type": "string"},
                    {"name": "recurring", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Holidays"],
                "summary": "Create a holiday (super admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HolidayRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/holidays/check": {
            "get": {
                "tags": ["Holidays"],
                "summary": "Check whether a date is a holiday",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date", "required": true},
                    {"name": "department_id", "in": "query", "type": "string"},
                    {"name": "batch_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/holidays/{id}": {
            "get": {
                "tags": ["Holidays"],
                "summary": "Get a holiday",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Holidays"],
                "summary": "Replace a holiday (super admin)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HolidayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Holidays"],
                "summary": "Delete a holiday (super admin)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        }
    },
    "definitions": {
        "ScheduleCommand": {
            "type": "object",
            "required": ["assignment_id", "venue_id", "date", "start_time", "end_time"],
            "properties": {
                "assignment_id": {"type": "string"},
                "venue_id": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "start_time": {"type": "string", "example": "10:00"},
                "end_time": {"type": "string", "example": "11:00"},
                "topic": {"type": "string"},
                "recurring": {"type": "boolean"},
                "repeat_until": {"type": "string", "format": "date", "description": "Exclusive"},
                "skip_holidays": {"type": "boolean"},
                "edit_id": {"type": "string"},
                "cancelled": {"type": "boolean"}
            }
        },
        "SkippedOccurrence": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "reason": {"type": "string", "enum": ["HOLIDAY", "CONFLICT", "ERROR"]},
                "detail": {"type": "string"},
                "holiday": {"type": "object"},
                "conflict": {"type": "object"}
            }
        },
        "ScheduleResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["CREATED", "UPDATED", "PARTIAL", "REJECTED"]},
                "candidate_count": {"type": "integer"},
                "created_count": {"type": "integer"},
                "skipped_holiday": {"type": "integer"},
                "skipped_conflict": {"type": "integer"},
                "failed": {"type": "integer"},
                "skipped": {"type": "array", "items": {"$ref": "#/definitions/SkippedOccurrence"}},
                "entries": {"type": "array", "items": {"type": "object"}},
                "message": {"type": "string"}
            }
        },
        "HolidayRequest": {
            "type": "object",
            "required": ["name", "date"],
            "properties": {
                "name": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "description": {"type": "string"},
                "is_recurring": {"type": "boolean"},
                "recurring_year": {"type": "integer"},
                "applicable_departments": {"type": "array", "items": {"type": "string"}},
                "applicable_batches": {"type": "array", "items": {"type": "string"}}
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
        },
        "ScheduleResultEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/ScheduleResult"},
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
