// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/reconcile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reconcile"],
                "summary": "Reconcile a part against its drawing",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ReconcileRequest"}}],
                "responses": {"201": {"description": "Stored run"}, "400": {"description": "Invalid request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/reconcile/preview": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reconcile"],
                "summary": "Preview a reconciliation",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ReconcileRequest"}}],
                "responses": {"200": {"description": "Evaluation"}, "400": {"description": "Invalid request"}}
            }
        },
        "/runs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "List reconciliation runs",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "kind", "in": "query"},
                    {"type": "string", "name": "part_number", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "Runs"}}
            }
        },
        "/runs/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get a reconciliation run",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Run"}, "404": {"description": "Run not found"}}
            }
        },
        "/runs/{id}/decisions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "List decisions for a run",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Decisions"}, "404": {"description": "Run not found"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Accept or reject suggestions",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.DecideRequest"}}
                ],
                "responses": {"200": {"description": "Decisions and run status"}, "400": {"description": "Invalid decision or unknown property key"}, "404": {"description": "Run not found"}}
            }
        },
        "/runs/{id}/approved": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Get approved property values",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Approved properties"}, "404": {"description": "Run not found"}}
            }
        },
        "/runs/{id}/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "tags": ["export"],
                "summary": "Download a review sheet",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true},
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "xlsx", "name": "format", "in": "query"}
                ],
                "responses": {"200": {"description": "Review sheet"}, "400": {"description": "Unsupported format"}, "404": {"description": "Run not found"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Export a review sheet to storage",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true},
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "xlsx", "name": "format", "in": "query"}
                ],
                "responses": {"201": {"description": "Uploaded sheet"}, "400": {"description": "Unsupported format"}, "404": {"description": "Run not found"}}
            }
        },
        "/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get run statistics",
                "responses": {"200": {"description": "Aggregate statistics"}}
            }
        }
    },
    "definitions": {
        "handler.ReconcileRequest": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "part"},
                "part": {"type": "object"},
                "drawing": {"type": "object"},
                "current": {"type": "object", "additionalProperties": {"type": "string"}},
                "base_op": {"type": "integer", "example": 20}
            }
        },
        "handler.DecideRequest": {
            "type": "object",
            "required": ["decisions"],
            "properties": {
                "decisions": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": ["property_key", "decision"],
                        "properties": {
                            "property_key": {"type": "string"},
                            "decision": {"type": "string", "enum": ["accepted", "rejected"]},
                            "note": {"type": "string"}
                        }
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Access token from the shop identity provider, as: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PartSync API",
	Description:      "Reconciles CAD part models against their drawings and serves property suggestions for review.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
