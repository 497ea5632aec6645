package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CSAB Match API",
        "description": "Admission-matching and ranking engine over historical CSAB counselling cutoffs",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Colleges", "description": "Match, options, trends and exports"},
        {"name": "Auth", "description": "Admin authentication"},
        {"name": "Admin", "description": "Protected maintenance endpoints"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/colleges/match": {
            "post": {
                "tags": ["Colleges"],
                "summary": "Match colleges for a rank and filter selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges/margin": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Reach-down margin for a rank",
                "parameters": [
                    {"name": "rank", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges/options": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Distinct values for a filter field",
                "parameters": [
                    {"name": "field", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges/trends": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Year/round cutoff history for one offer",
                "parameters": [
                    {"name": "institute", "in": "query", "type": "string", "required": true},
                    {"name": "program", "in": "query", "type": "string", "required": true},
                    {"name": "seatType", "in": "query", "type": "string", "required": true},
                    {"name": "quota", "in": "query", "type": "string"},
                    {"name": "gender", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges/match/export": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Export the full match result set as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "required": true},
                    {"name": "rank", "in": "query", "type": "integer"},
                    {"name": "seatType", "in": "query", "type": "string", "required": true},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "round", "in": "query", "type": "integer"},
                    {"name": "quota", "in": "query", "type": "string"},
                    {"name": "gender", "in": "query", "type": "string"},
                    {"name": "institute", "in": "query", "type": "string"},
                    {"name": "program", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke a refresh token",
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/admin/cache/invalidate": {
            "post": {
                "tags": ["Admin"],
                "summary": "Drop cached option lists",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        }
    },
    "definitions": {
        "MatchRequest": {
            "type": "object",
            "required": ["seat_type"],
            "properties": {
                "rank": {"type": "integer", "minimum": 1},
                "seat_type": {"type": "string"},
                "year": {"type": "integer"},
                "round": {"type": "integer"},
                "quota": {"type": "string"},
                "gender": {"type": "string"},
                "institute": {"type": "string"},
                "program": {"type": "string"},
                "page": {"type": "integer", "minimum": 1},
                "limit": {"type": "integer", "minimum": 1},
                "fetch_all": {"type": "boolean"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
