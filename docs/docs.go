// Package docs registers the OpenAPI description served at /swagger.
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
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/auth/token/{memberId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Issue a sync token for a member",
                "parameters": [
                    {"type": "string", "description": "Member ID", "name": "memberId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/powersync/write-checkpoint": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sync"],
                "summary": "Apply a write checkpoint",
                "parameters": [
                    {
                        "description": "Operations in client order",
                        "name": "checkpoint",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.WriteCheckpointRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.WriteCheckpointResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "checkpoint.OpResult": {
            "type": "object",
            "properties": {
                "op": {"type": "string"},
                "success": {"type": "boolean"},
                "table": {"type": "string"}
            }
        },
        "checkpoint.Operation": {
            "type": "object",
            "required": ["op", "table"],
            "properties": {
                "data": {"type": "object", "additionalProperties": {}},
                "op": {"type": "string", "enum": ["PUT", "PATCH", "DELETE"]},
                "table": {"type": "string"}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "expires_in": {"type": "integer"},
                "family_id": {"type": "string"},
                "member_id": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "handler.WriteCheckpointRequest": {
            "type": "object",
            "required": ["operations"],
            "properties": {
                "operations": {"type": "array", "items": {"$ref": "#/definitions/checkpoint.Operation"}}
            }
        },
        "handler.WriteCheckpointResponse": {
            "type": "object",
            "properties": {
                "processed": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/checkpoint.OpResult"}},
                "success": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "FamilySync API",
	Description:      "Write path of the offline-first family task sync.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
