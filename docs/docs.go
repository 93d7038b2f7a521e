// Package docs holds the generated Swagger specification.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/personas": {
            "get": {
                "produces": ["application/json"],
                "tags": ["personas"],
                "summary": "List demo personas",
                "responses": {
                    "200": {"description": "Persona catalog"}
                }
            }
        },
        "/persona/{personaId}/data": {
            "get": {
                "produces": ["application/json"],
                "tags": ["personas"],
                "summary": "Get persona metric series",
                "parameters": [
                    {"type": "string", "name": "personaId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Persona data with summary"},
                    "404": {"description": "Unknown persona"}
                }
            }
        },
        "/upload": {
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["upload"],
                "summary": "Upload a wearable data export",
                "responses": {
                    "200": {"description": "Normalized data with summary"},
                    "400": {"description": "Empty or malformed upload"}
                }
            }
        },
        "/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Ask the health coach",
                "responses": {
                    "200": {"description": "Structured coaching response"},
                    "400": {"description": "Malformed payload"},
                    "422": {"description": "Validation error"},
                    "502": {"description": "Meeting context service unavailable"},
                    "503": {"description": "Chat assistant not configured"}
                }
            }
        },
        "/chat/feedback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Rate a coaching answer",
                "responses": {
                    "202": {"description": "Feedback recorded"},
                    "400": {"description": "Malformed payload"},
                    "422": {"description": "Validation error"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Evida Coach API",
	Description:      "Chat with a health coach grounded in wearable metrics, demo personas and coaching-call context.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
