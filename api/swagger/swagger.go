package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Zorg Dossier Scheduling API",
        "description": "Shift pattern generation, conflict detection and scheduling statistics for home care.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Scheduling", "description": "Generation, conflicts, overview, settings and export"},
        {"name": "Shifts", "description": "Shift lifecycle operations"},
        {"name": "ShiftTypes", "description": "Per-client shift time templates"},
        {"name": "ShiftPatterns", "description": "Recurrence rules that expand into shifts"}
    ],
    "paths": {
        "/scheduling/generate": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Expand active shift patterns into shift instances",
                "parameters": [
                    {"name": "clientId", "in": "query", "type": "string"},
                    {"name": "patternId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Generation summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduling/conflicts": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Check a candidate assignment for overlapping shifts",
                "parameters": [
                    {"name": "caregiverId", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "startTime", "in": "query", "type": "string", "required": true},
                    {"name": "endTime", "in": "query", "type": "string", "required": true},
                    {"name": "excludeShiftId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Conflict report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduling/overview": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Scheduling statistics for the coming year",
                "parameters": [{"name": "clientId", "in": "query", "type": "string"}],
                "responses": {
                    "200": {"description": "Overview payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduling/settings": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Get schedule maintenance settings",
                "responses": {"200": {"description": "Settings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Scheduling"],
                "summary": "Update schedule maintenance settings",
                "responses": {"200": {"description": "Settings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/scheduling/export": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Export the upcoming roster as CSV or PDF",
                "parameters": [
                    {"name": "clientId", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "File download"}}
            }
        },
        "/shifts/{id}": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Get one shift",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Shift", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/shifts/{id}/assign": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Assign a caregiver to an unfilled shift",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Updated shift", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/shifts/{id}/complete": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Mark a filled past shift as worked",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Updated shift", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/shifts/{id}/cancel": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Cancel an unfilled or filled shift",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Updated shift", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/shifts/{id}/time-correction": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Submit actually-worked times for a past shift",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Updated shift", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/shifts/{id}/verify": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Toggle client verification of a past shift",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Updated shift", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/shift-types": {
            "get": {
                "tags": ["ShiftTypes"],
                "summary": "List the client's shift types",
                "responses": {"200": {"description": "Shift types", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["ShiftTypes"],
                "summary": "Create a shift type",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/shift-types/{id}": {
            "put": {
                "tags": ["ShiftTypes"],
                "summary": "Update a shift type",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["ShiftTypes"],
                "summary": "Delete an unreferenced shift type",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/shift-patterns": {
            "get": {
                "tags": ["ShiftPatterns"],
                "summary": "List the client's shift patterns",
                "responses": {"200": {"description": "Patterns", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["ShiftPatterns"],
                "summary": "Create a shift pattern",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/shift-patterns/{id}": {
            "put": {
                "tags": ["ShiftPatterns"],
                "summary": "Update a shift pattern",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["ShiftPatterns"],
                "summary": "Delete a shift pattern",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"204": {"description": "Deleted"}}
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "total": {"type": "integer"}
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
