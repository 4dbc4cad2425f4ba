// Package docs holds the swagger document served at /swagger. Regenerate with `swag init`.
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
        "/api/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Storefront - Catalog"],
                "summary": "Full product catalog",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/sitemap.xml": {
            "get": {
                "produces": ["application/xml"],
                "tags": ["Storefront - Catalog"],
                "summary": "Sitemap",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/store/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Storefront - Catalog"],
                "summary": "Catalog page",
                "parameters": [
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"enum": ["low_price", "high_price"], "type": "string", "name": "sort", "in": "query"},
                    {"type": "string", "name": "categories", "in": "query"},
                    {"type": "string", "name": "vendor", "in": "query"},
                    {"type": "number", "name": "minPrice", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/store/catalog/{id}": {
            "get": {
                "tags": ["Storefront - Catalog"],
                "summary": "Storefront product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/store/categories": {
            "get": {"tags": ["Storefront - Catalog"], "summary": "Storefront categories", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/store/filter": {
            "get": {"tags": ["Storefront - Catalog"], "summary": "Storefront filter settings", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/users/signup": {
            "post": {"tags": ["Auth"], "summary": "Register a customer", "responses": {"200": {"description": "OK"}, "400": {"description": "User already exists"}}}
        },
        "/api/v1/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/admin/products": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["CMS - Products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["CMS - Products"], "summary": "Create a new product", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/admin/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["CMS - Categories"], "summary": "List category properties", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["CMS - Categories"], "summary": "Create category", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/admin/filter": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["CMS - Filter"], "summary": "Stored filter settings", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["CMS - Filter"], "summary": "Save filter settings", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/admin/feed/preview": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["CMS - Feed"], "summary": "Parse a supplier feed", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/admin/feed/proceed": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["CMS - Feed"], "summary": "Synchronize parsed feed products", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/admin/cache/clear": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["CMS - Admin"], "summary": "Clear the catalog cache", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "JoyFer Storefront API",
	Description:      "Catalog, feed import and admin console backend of the JoyFer furniture store",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
