// Package docs holds the OpenAPI document served by the Swagger UI.
// Regenerate with: swag init -g cmd/network-monitor/docs.go -o internal/httpapi/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["monitor"],
                "summary": "Monitor status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/stations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["network"],
                "summary": "List stations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StationsResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/stations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["network"],
                "summary": "Station detail with passenger count and serving routes",
                "parameters": [
                    {"type": "string", "description": "Station id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StationResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/travel-time": {
            "get": {
                "produces": ["application/json"],
                "tags": ["network"],
                "summary": "Travel time between two adjacent stations",
                "parameters": [
                    {"type": "string", "description": "Start station id", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "End station id", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TravelTimeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/lines/{line}/routes/{route}/travel-time": {
            "get": {
                "produces": ["application/json"],
                "tags": ["network"],
                "summary": "Travel time along a route",
                "parameters": [
                    {"type": "string", "description": "Line id", "name": "line", "in": "path", "required": true},
                    {"type": "string", "description": "Route id", "name": "route", "in": "path", "required": true},
                    {"type": "string", "description": "Start station id", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "End station id", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TravelTimeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/manifest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Build manifest of the monitor",
                "parameters": [
                    {"type": "string", "description": "json, yaml or toml", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/manifest.Manifest"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "manifest.Manifest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "version": {"type": "string"},
                "generators": {"type": "array", "items": {"type": "string"}},
                "requires": {"type": "array", "items": {"$ref": "#/definitions/manifest.Requirement"}},
                "default_options": {"type": "array", "items": {"$ref": "#/definitions/manifest.Option"}}
            }
        },
        "manifest.Option": {
            "type": "object",
            "properties": {
                "package": {"type": "string"},
                "key": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "manifest.Requirement": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "station not found: station_999"},
                "code": {"type": "integer", "example": 404}
            }
        },
        "types.Station": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "station_0"},
                "name": {"type": "string", "example": "Station A"}
            }
        },
        "types.StationsResponse": {
            "type": "object",
            "properties": {
                "stations": {"type": "array", "items": {"$ref": "#/definitions/types.Station"}}
            }
        },
        "types.StationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "station_0"},
                "name": {"type": "string", "example": "Station A"},
                "passengers": {"type": "integer", "example": 17},
                "routes": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "example": "ready"},
                "connected": {"type": "boolean", "example": true},
                "subscription_id": {"type": "string"},
                "endpoint": {"type": "string"},
                "stations": {"type": "integer", "example": 412},
                "lines": {"type": "integer", "example": 11},
                "events_applied": {"type": "integer", "example": 10240},
                "events_rejected": {"type": "integer", "example": 3},
                "connect_attempts": {"type": "integer", "example": 1},
                "last_error": {"type": "string"},
                "last_event_unix": {"type": "integer"},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "server_time_unix": {"type": "integer"}
            }
        },
        "types.TravelTimeResponse": {
            "type": "object",
            "properties": {
                "from": {"type": "string", "example": "station_0"},
                "to": {"type": "string", "example": "station_1"},
                "line": {"type": "string"},
                "route": {"type": "string"},
                "minutes": {"type": "integer", "example": 2}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "network-monitor API",
	Description:      "Live passenger counts and travel times for the transport network.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
