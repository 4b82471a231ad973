// Package swagger registers the QualityStar API description with swag. Regenerate with
// `swag init -g cmd/server/server.go -o docs/swagger`.
package swagger

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
        "/login/access-token": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Login API"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "Email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authres.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/report": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Coverage API"],
                "summary": "Report automated urls",
                "parameters": [
                    {"description": "Report batch", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/reportreq.ReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/trigger/get_prometheus": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Trigger API"],
                "summary": "Collect interfaces from Prometheus",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.MessageResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/trigger/update_coverage": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Trigger API"],
                "summary": "Recompute coverage flags",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.MessageResponse"}}
                }
            }
        },
        "/scheduler/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Scheduler API"],
                "summary": "List scheduled jobs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/crontab.JobInfo"}}}
                }
            }
        },
        "/coverage/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Coverage API"],
                "summary": "Coverage per project",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "authres.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_at": {"type": "integer"}
            }
        },
        "crontab.JobInfo": {
            "type": "object",
            "properties": {
                "job_id": {"type": "string"},
                "name": {"type": "string"},
                "task": {"type": "string"},
                "next_run_time": {"type": "string"},
                "trigger": {"type": "string"}
            }
        },
        "reportreq.ReportRequest": {
            "type": "object",
            "required": ["data"],
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/reportreq.DataURIItems"}}
            }
        },
        "reportreq.DataURIItems": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "base_url": {"type": "string"},
                "url_list": {"type": "array", "items": {"$ref": "#/definitions/reportreq.URIItem"}}
            }
        },
        "reportreq.URIItem": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "method": {"type": "string"},
                "description": {"type": "string"},
                "is_active": {"type": "boolean"}
            }
        },
        "responses.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "responses.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
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
	Title:            "QualityStar API",
	Description:      "Interface coverage tracking: production endpoints from Prometheus against automation reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
