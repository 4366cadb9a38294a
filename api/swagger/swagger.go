package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Weekly class-timetable scheduling service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Weekly grid retrieval, generation and editing"},
        {"name": "Substitutions", "description": "Substitute teacher suggestions and day assignments"},
        {"name": "Requirements", "description": "Weekly subject period requirements per class section"},
        {"name": "Settings", "description": "School-wide timetable settings"}
    ],
    "paths": {
        "/class-sections": {
            "get": {
                "tags": ["ClassSections"],
                "summary": "List class sections",
                "parameters": [
                    {"name": "grade", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-sections/resolve": {
            "get": {
                "tags": ["ClassSections"],
                "summary": "Resolve a class section from grade and section letter",
                "parameters": [
                    {"name": "grade", "in": "query", "required": true, "type": "string"},
                    {"name": "section", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class section not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-sections/{id}": {
            "get": {
                "tags": ["ClassSections"],
                "summary": "Get a class section",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class section not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-sections/{id}/subjects": {
            "get": {
                "tags": ["ClassSections"],
                "summary": "List subjects schedulable on a class section",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class section not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-sections/{id}/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get weekly grid",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class section not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-sections/{id}/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate weekly grid",
                "description": "Replaces the current grid unless preserve=true, in which case manually locked slots are kept and remaining cells are filled around them. A run that cannot place every required period commits the partial grid and reports the unplaced requirements in meta.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "preserve", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class section not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No weekly requirements configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-sections/{id}/timetable/slots": {
            "patch": {
                "tags": ["Timetable"],
                "summary": "Edit a single slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Locked slot or teacher double-booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Teacher not eligible for subject", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-sections/{id}/substitutes": {
            "get": {
                "tags": ["Substitutions"],
                "summary": "Suggest substitute teachers",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "period", "in": "query", "required": true, "type": "integer"},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "absentTeacherId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid date or period", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/substitutions": {
            "get": {
                "tags": ["Substitutions"],
                "summary": "List substitutions for a date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Substitutions"],
                "summary": "Record a substitution",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubstitutionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Cell already covered or substitute busy", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-sections/{id}/requirements": {
            "get": {
                "tags": ["Requirements"],
                "summary": "List weekly requirements",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Requirements"],
                "summary": "Create weekly requirement",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRequirementRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Requirement for subject already exists", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requirements/{requirementId}": {
            "put": {
                "tags": ["Requirements"],
                "summary": "Update weekly requirement",
                "parameters": [
                    {"name": "requirementId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRequirementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Requirements"],
                "summary": "Delete weekly requirement",
                "parameters": [
                    {"name": "requirementId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/timetable/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get timetable settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Update timetable settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GridCell": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "string"},
                "subject_name": {"type": "string"},
                "teacher_id": {"type": "string"},
                "teacher_name": {"type": "string"},
                "locked": {"type": "boolean"},
                "source": {"type": "string"}
            }
        },
        "GridResponse": {
            "type": "object",
            "properties": {
                "class_section_id": {"type": "string"},
                "periods_per_day": {"type": "integer"},
                "lunch_period": {"type": "integer"},
                "working_days": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "grid": {"type": "object"}
            }
        },
        "UpdateSlotRequest": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "integer"},
                "period": {"type": "integer"},
                "subject_id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "locked": {"type": "boolean"}
            },
            "required": ["day_of_week", "period"]
        },
        "SubstituteCandidate": {
            "type": "object",
            "properties": {
                "teacher_id": {"type": "string"},
                "teacher_name": {"type": "string"},
                "day_load": {"type": "integer"},
                "flags": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "CreateSubstitutionRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "class_section_id": {"type": "string"},
                "period": {"type": "integer"},
                "original_teacher_id": {"type": "string"},
                "substitute_teacher_id": {"type": "string"},
                "reason": {"type": "string"},
                "approved_by": {"type": "string"}
            },
            "required": ["date", "class_section_id", "period", "substitute_teacher_id"]
        },
        "CreateRequirementRequest": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "string"},
                "weekly_periods": {"type": "integer"}
            },
            "required": ["subject_id", "weekly_periods"]
        },
        "UpdateRequirementRequest": {
            "type": "object",
            "properties": {
                "weekly_periods": {"type": "integer"}
            },
            "required": ["weekly_periods"]
        },
        "UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "periods_per_day": {"type": "integer"},
                "period_minutes": {"type": "integer"},
                "lunch_period": {"type": "integer"},
                "max_daily_load": {"type": "integer"},
                "working_days": {"type": "integer"}
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
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
