package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Days", "description": "Activities recorded for a single day"},
        {"name": "History", "description": "Every tracked day, most recent first"},
        {"name": "Counter", "description": "Home screen counter"}
    ],
    "paths": {
        "/days/today": {
            "get": {
                "tags": ["Days"],
                "summary": "Activities for today",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DayEnvelope"}}
                }
            }
        },
        "/days/{date}": {
            "get": {
                "tags": ["Days"],
                "summary": "Activities for a day",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string", "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DayEnvelope"}},
                    "400": {"description": "Malformed date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/days/{date}/toggle": {
            "post": {
                "tags": ["Days"],
                "summary": "Flip one activity for a day",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleActivityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DayEnvelope"}},
                    "400": {"description": "Malformed date or activity", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/history": {
            "get": {
                "tags": ["History"],
                "summary": "List tracked days",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HistoryEnvelope"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/history/export": {
            "get": {
                "tags": ["History"],
                "summary": "Download the history",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/counter": {
            "get": {
                "tags": ["Counter"],
                "summary": "Read the counter",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CounterEnvelope"}}
                }
            }
        },
        "/counter/increment": {
            "post": {
                "tags": ["Counter"],
                "summary": "Add one",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CounterEnvelope"}}
                }
            }
        },
        "/counter/decrement": {
            "post": {
                "tags": ["Counter"],
                "summary": "Subtract one",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CounterEnvelope"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "definitions": {
        "ActivitySet": {
            "type": "object",
            "properties": {
                "reading": {"type": "boolean"},
                "exercising": {"type": "boolean"},
                "music": {"type": "boolean"}
            }
        },
        "DayView": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-03-01"},
                "activities": {"$ref": "#/definitions/ActivitySet"},
                "unlocked": {"type": "boolean"}
            }
        },
        "ToggleActivityRequest": {
            "type": "object",
            "required": ["activity"],
            "properties": {
                "activity": {"type": "string", "enum": ["reading", "exercising", "music"]}
            }
        },
        "CounterView": {
            "type": "object",
            "properties": {
                "value": {"type": "integer"}
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
        },
        "DayEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/DayView"}
            }
        },
        "HistoryEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/DayView"}},
                "meta": {"type": "object", "properties": {"count": {"type": "integer"}}}
            }
        },
        "CounterEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CounterView"}
            }
        }
    }
}`

// SwaggerInfo holds the values rendered into the document. BasePath follows
// the configured API prefix.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Unlock API",
	Description:      "Daily reading, exercise and music tracker. The /health, /ready and /metrics probes are served at the server root.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
