// Package docs registers the Swagger document served under /swagger.
// Keep it in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/places": {
            "get": {
                "description": "Looks up stops, addresses and points of interest. Queries shorter than two characters return an empty list without calling the backend.",
                "produces": ["application/json"],
                "tags": ["Places"],
                "summary": "Place autocomplete",
                "parameters": [
                    {"type": "string", "description": "Free-text query", "name": "q", "in": "query", "required": true},
                    {"type": "string", "default": "stop_area,stop_point,address,poi", "description": "Comma-separated place types", "name": "types", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Maximum number of candidates", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/journeys": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Journeys"],
                "summary": "Journeys between two resolved places",
                "parameters": [
                    {"type": "string", "description": "Origin place id", "name": "from", "in": "query"},
                    {"type": "string", "description": "Destination place id", "name": "to", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Number of journeys", "name": "count", "in": "query"},
                    {"type": "string", "description": "RFC3339 departure time", "name": "datetime", "in": "query"},
                    {"type": "boolean", "default": true, "description": "Use live schedule adjustments", "name": "realtime", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/search": {
            "post": {
                "description": "Runs a journey search for the given departure/arrival inputs and returns the terminal search state. Each request gets its own state. Failures are reported in the state's error field, not as an HTTP error.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Journeys"],
                "summary": "Search journeys between two free-text places",
                "parameters": [
                    {"description": "Departure, arrival and search mode", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SearchRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.SearchStateResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.SearchRequest": {
            "type": "object",
            "properties": {
                "from_q": {"type": "string"},
                "to_q": {"type": "string"},
                "last_of_day": {"type": "boolean"}
            }
        },
        "dto.SearchStateResponse": {
            "type": "object",
            "properties": {
                "from_q": {"type": "string"},
                "to_q": {"type": "string"},
                "results": {"type": "array", "items": {"type": "object"}},
                "loading": {"type": "boolean"},
                "error": {}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "time_ms": {"type": "number"},
                "total": {"type": "integer"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Journey Planner API",
	Description:      "Front-end service for a transit journey-planning backend: place autocomplete and journey search.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
