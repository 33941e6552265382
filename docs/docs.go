// Package docs registers the BFF OpenAPI document with swag so echo-swagger
// can serve it under /swagger/. Regenerate with:
//
//	swag init -g internal/api/router.go -o docs
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
        "/session/login": {"post": {"tags": ["session"], "summary": "Sign in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "423": {"description": "Locked"}}}},
        "/session/signup": {"post": {"tags": ["session"], "summary": "Sign up", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}},
        "/session/logout": {"post": {"tags": ["session"], "summary": "Sign out", "responses": {"200": {"description": "OK"}}}},
        "/session/me": {"get": {"tags": ["session"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/session/me/preferences": {"put": {"tags": ["session"], "summary": "Update preferences", "responses": {"200": {"description": "OK"}}}},
        "/session/me/email": {"put": {"tags": ["session"], "summary": "Update email", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/session/me/password": {"put": {"tags": ["session"], "summary": "Update password", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/eateries/{id}/reviews": {
            "get": {"tags": ["reviews"], "summary": "List reviews", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reviews"], "summary": "Create review", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}, "429": {"description": "Too Many Requests"}}}
        },
        "/eateries/{id}/reviews/mine": {"get": {"tags": ["reviews"], "summary": "My review", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/eateries/{id}/reviews/{reviewId}": {
            "put": {"tags": ["reviews"], "summary": "Update review", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["reviews"], "summary": "Delete review", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/eateries/{id}/reviews/{reviewId}/flag": {"post": {"tags": ["reviews"], "summary": "Flag review", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/eateries/{id}/stars": {"get": {"tags": ["reviews"], "summary": "Star rating", "responses": {"200": {"description": "OK"}}}},
        "/recommendations": {"get": {"tags": ["recommendations"], "summary": "Home recommendations", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/rewards/me": {"get": {"tags": ["rewards"], "summary": "Points balance", "responses": {"200": {"description": "OK"}}}},
        "/rewards/catalog": {"get": {"tags": ["rewards"], "summary": "Reward catalog", "responses": {"200": {"description": "OK"}}}},
        "/rewards/{id}/redeem": {"post": {"tags": ["rewards"], "summary": "Redeem reward", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}},
        "/admin/dashboard": {"get": {"tags": ["admin"], "summary": "Moderation dashboard", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/flags": {"get": {"tags": ["admin"], "summary": "List flags", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/flags/{id}/resolve": {"put": {"tags": ["admin"], "summary": "Resolve flag", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/admin/reviews/{id}/hide": {"put": {"tags": ["admin"], "summary": "Hide review", "responses": {"200": {"description": "OK"}}}},
        "/admin/reviews/{id}": {"delete": {"tags": ["admin"], "summary": "Delete review", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "HealthyAura client API",
	Description:      "Local backend-for-frontend over the HealthyAura client core.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
