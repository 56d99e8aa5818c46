// Package swagger registers the OpenAPI document served under /swagger.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/webhook": {
            "post": {
                "tags": ["patreon"],
                "summary": "Patreon Webhook",
                "security": [],
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "parameters": [
                    {"type": "string", "name": "X-Patreon-Event", "in": "header", "required": true},
                    {"type": "string", "name": "X-Patreon-Signature", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing headers"},
                    "401": {"description": "Invalid signature"},
                    "500": {"description": "Error processing webhook"}
                }
            }
        },
        "/patreon/members": {
            "get": {"tags": ["patreon"], "summary": "List Members", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/patreon/members/{id}": {
            "get": {
                "tags": ["patreon"],
                "summary": "Get Member",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/patreon/stats": {
            "get": {"tags": ["patreon"], "summary": "Membership Stats", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/patreon/sync": {
            "post": {"tags": ["patreon"], "summary": "Sync Patreon Roster", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "409": {"description": "Sync running elsewhere"}, "500": {"description": "Internal Server Error"}}}
        },
        "/dragonite/areas": {
            "get": {"tags": ["dragonite"], "summary": "List Areas", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/dragonite/stats": {
            "get": {"tags": ["dragonite"], "summary": "Area Stats", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/dragonite/sync": {
            "post": {"tags": ["dragonite"], "summary": "Sync Dragonite Areas", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "502": {"description": "Dragonite unavailable"}}}
        },
        "/reconcile": {
            "get": {
                "tags": ["reconcile"],
                "summary": "Reconcile Patreon and Dragonite",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "boolean", "name": "verify", "in": "query"},
                    {"type": "boolean", "name": "archive", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Archive requested without storage"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/reconcile/archives": {
            "get": {"tags": ["reconcile"], "summary": "List Archived Reports", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/reconcile/archives/{name}": {
            "get": {
                "tags": ["reconcile"],
                "summary": "Get Archived Report",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/history": {
            "get": {
                "tags": ["history"],
                "summary": "List Sync Runs",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "source", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Patron Manager API",
	Description:      "Reconciles Patreon and Ko-Fi supporters with provisioned Dragonite scanners.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
