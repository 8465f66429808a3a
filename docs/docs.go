// Package docs registers the OpenAPI document served under /api-docs.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "API banner",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/healthcheck": {
            "get": {
                "description": "Check if server is alive",
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/movies": {
            "get": {
                "description": "Paginated movies, optionally filtered by genre substring and release year",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List Movies",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive genre substring", "name": "genre", "in": "query"},
                    {"type": "integer", "description": "Exact release year", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Page number, default 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, default 10, max 100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MovieList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Create Movie",
                "parameters": [
                    {"description": "Movie", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MovieRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MovieItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/movies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get Movie",
                "parameters": [
                    {"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MovieItem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Update Movie",
                "parameters": [
                    {"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true},
                    {"description": "Movie", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MovieRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MovieItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["movies"],
                "summary": "Delete Movie",
                "parameters": [
                    {"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/movies/{id}/ratings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "List Ratings of a Movie",
                "parameters": [
                    {"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number, default 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, default 10, max 100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RatingList"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "Rate a Movie",
                "parameters": [
                    {"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true},
                    {"description": "Rating between 0 and 5", "name": "rating", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RatingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/RatingItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/actors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["actors"],
                "summary": "List Actors",
                "parameters": [
                    {"type": "string", "description": "Only actors who played in this movie", "name": "movie", "in": "query"},
                    {"type": "integer", "description": "Page number, default 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, default 10, max 100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ActorList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/actors/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["actors"],
                "summary": "Get Actor",
                "parameters": [
                    {"type": "string", "description": "Actor id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ActorItem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/ratings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "List Ratings",
                "parameters": [
                    {"type": "integer", "description": "Page number, default 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, default 10, max 100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RatingList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/users/register": {
            "post": {
                "description": "Create an account. The password hash is never returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "User Register",
                "parameters": [
                    {"description": "Register payload", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/UserItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "description": "Authenticate and return a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "User Login",
                "parameters": [
                    {"description": "Login Credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Token"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current User",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserItem"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Links": {
            "type": "object",
            "properties": {"self": {"type": "string"}}
        },
        "Movie": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "release_year": {"type": "integer"},
                "genre": {"type": "string"},
                "description": {"type": "string"},
                "links": {
                    "type": "object",
                    "properties": {"self": {"type": "string"}, "ratings": {"type": "string"}}
                }
            }
        },
        "MovieRequest": {
            "type": "object",
            "required": ["title", "release_year", "genre"],
            "properties": {
                "title": {"type": "string"},
                "release_year": {"type": "integer", "minimum": 1800, "maximum": 2100},
                "genre": {"type": "string", "pattern": "^[a-zA-Z\\s-]+$"},
                "description": {"type": "string"}
            }
        },
        "MovieItem": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/Movie"}, "links": {"$ref": "#/definitions/Links"}}
        },
        "MovieList": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Movie"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "pages": {"type": "integer"},
                "links": {"$ref": "#/definitions/Links"}
            }
        },
        "Actor": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "movies": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ActorItem": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/Actor"}, "links": {"$ref": "#/definitions/Links"}}
        },
        "ActorList": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Actor"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "pages": {"type": "integer"},
                "links": {"$ref": "#/definitions/Links"}
            }
        },
        "Rating": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "rating": {"type": "number"},
                "movie": {"type": "string"}
            }
        },
        "RatingRequest": {
            "type": "object",
            "required": ["rating"],
            "properties": {"rating": {"type": "number", "minimum": 0, "maximum": 5}}
        },
        "RatingItem": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/Rating"}, "links": {"$ref": "#/definitions/Links"}}
        },
        "RatingList": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Rating"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "pages": {"type": "integer"},
                "links": {"$ref": "#/definitions/Links"}
            }
        },
        "Credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "UserItem": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {"id": {"type": "string"}, "email": {"type": "string"}}
                }
            }
        },
        "Token": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "Error": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Movie Catalog API",
	Description:      "Movies, actors and ratings with paginated, filtered listings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
