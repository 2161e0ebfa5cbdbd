package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Moltaqa API",
        "description": "Student and tutor matching platform",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Search", "description": "Candidate matching"},
        {"name": "Moltaqa", "description": "Profile-to-profile search"},
        {"name": "Profiles", "description": "Student profile self-service"},
        {"name": "Ads", "description": "Study ads"},
        {"name": "Groups", "description": "Study groups"},
        {"name": "Catalog", "description": "Colleges, majors and subjects"},
        {"name": "Admin", "description": "Administrative exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/search/match": {
            "post": {
                "tags": ["Search"],
                "summary": "Search matching partners, groups, tutors or helpers for a subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MatchSearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing profile or invalid search type"},
                    "404": {"description": "Subject not found"}
                }
            }
        },
        "/moltaqa/match/search": {
            "post": {
                "tags": ["Moltaqa"],
                "summary": "Search visible student profiles",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoltaqaSearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/moltaqa/match/search/preview": {
            "get": {
                "tags": ["Moltaqa"],
                "summary": "Preview the most recently registered visible profiles",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profiles/me": {
            "get": {
                "tags": ["Profiles"],
                "summary": "Get the caller's student profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No profile yet"}
                }
            },
            "put": {
                "tags": ["Profiles"],
                "summary": "Create or replace the caller's student profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ads": {
            "get": {
                "tags": ["Ads"],
                "summary": "List active ads",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "subjectId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Ads"],
                "summary": "Post a new ad",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAdRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ads/{id}": {
            "delete": {
                "tags": ["Ads"],
                "summary": "Delete an ad owned by the caller",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found or not owned"}
                }
            }
        },
        "/groups": {
            "get": {
                "tags": ["Groups"],
                "summary": "List open study groups covering a subject",
                "parameters": [
                    {"name": "subjectId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Groups"],
                "summary": "Open a new study group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGroupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List colleges",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges/{id}/majors": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List majors under a college",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/majors/{id}/subjects": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List subjects under a major",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get a subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admin/profiles/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export the visible profile directory as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Admin only"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "MatchSearchRequest": {
            "type": "object",
            "properties": {
                "subjectId": {"type": "string"},
                "searchType": {"type": "string", "enum": ["partner", "group", "tutor", "help"]},
                "mode": {"type": "string"}
            },
            "required": ["subjectId", "searchType"]
        },
        "MoltaqaSearchRequest": {
            "type": "object",
            "properties": {
                "subjectId": {"type": "string"},
                "majorId": {"type": "string"},
                "level": {"type": "string"},
                "studyModes": {"type": "array", "items": {"type": "string"}},
                "page": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "UpsertProfileRequest": {
            "type": "object",
            "properties": {
                "college_id": {"type": "string"},
                "major_id": {"type": "string"},
                "level": {"type": "string"},
                "subject_ids": {"type": "array", "items": {"type": "string"}},
                "study_modes": {"type": "array", "items": {"type": "string"}},
                "status_for_partners": {"type": "string"},
                "status_for_help": {"type": "string"},
                "visible": {"type": "boolean"}
            },
            "required": ["college_id", "major_id", "level"]
        },
        "CreateAdRequest": {
            "type": "object",
            "properties": {
                "ad_type": {"type": "string", "enum": ["partner", "group", "tutor", "help"]},
                "subject_id": {"type": "string"},
                "description": {"type": "string"},
                "options": {"type": "object"}
            },
            "required": ["ad_type", "subject_id"]
        },
        "CreateGroupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "subject_ids": {"type": "array", "items": {"type": "string"}},
                "max_members": {"type": "integer"},
                "mode": {"type": "string"},
                "help_oriented": {"type": "boolean"}
            },
            "required": ["name", "subject_ids", "max_members"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "has_more": {"type": "boolean"}
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
