// Package docs registers the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/listings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Search published listings",
                "parameters": [
                    {"type": "string", "description": "Substring of the title (case-insensitive)", "name": "keyword", "in": "query"},
                    {"type": "string", "description": "City (case-insensitive)", "name": "city", "in": "query"},
                    {"type": "integer", "description": "Minimum bedrooms", "name": "bedrooms", "in": "query"},
                    {"type": "integer", "description": "Maximum price", "name": "max_price", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Listing"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Create a listing with photos",
                "parameters": [
                    {"type": "integer", "description": "Owning realtor", "name": "realtor_id", "in": "formData", "required": true},
                    {"type": "string", "description": "Listing title", "name": "title", "in": "formData", "required": true},
                    {"type": "file", "description": "Up to 6 photos", "name": "images", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/listings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Get a listing",
                "parameters": [{"type": "integer", "description": "Listing ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Listing"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/listings/{id}/images": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "List listing photos",
                "parameters": [{"type": "integer", "description": "Listing ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.PropertyImage"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/listings/{id}/inquiries": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inquiries"],
                "summary": "Send an inquiry",
                "parameters": [
                    {"type": "integer", "description": "Listing ID", "name": "id", "in": "path", "required": true},
                    {"description": "Inquiry", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.inquiryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Inquiry"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/realtors": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["realtors"],
                "summary": "Register a realtor",
                "parameters": [
                    {"description": "Realtor", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.realtorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Realtor"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/realtors/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["realtors"],
                "summary": "Get a realtor",
                "parameters": [{"type": "integer", "description": "Realtor ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Realtor"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/realtors/{id}/listings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["realtors"],
                "summary": "List a realtor's listings",
                "parameters": [{"type": "integer", "description": "Realtor ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Listing"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/reports/contacts": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["reports"],
                "summary": "Contacts report",
                "parameters": [{"type": "string", "description": "Truthy value forces an attachment", "name": "download", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handler.errorEnvelope"}, "request_id": {"type": "string"}}
        },
        "handler.inquiryRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}, "message": {"type": "string"}, "name": {"type": "string"},
                "phone": {"type": "string"}, "user_id": {"type": "integer"}
            }
        },
        "handler.realtorRequest": {
            "type": "object",
            "properties": {
                "description": {"type": "string"}, "email": {"type": "string"}, "is_mvp": {"type": "boolean"},
                "name": {"type": "string"}, "phone": {"type": "string"}
            }
        },
        "handler.createListingResponse": {
            "type": "object",
            "properties": {
                "listing": {"$ref": "#/definitions/model.Listing"},
                "images": {"type": "array", "items": {"$ref": "#/definitions/model.PropertyImage"}},
                "dropped": {"type": "array", "items": {"$ref": "#/definitions/pipeline.Dropped"}},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.Inquiry": {
            "type": "object",
            "properties": {
                "contact_date": {"type": "string"}, "email": {"type": "string"}, "id": {"type": "integer"},
                "listing_id": {"type": "integer"}, "listing_title": {"type": "string"}, "message": {"type": "string"},
                "name": {"type": "string"}, "phone": {"type": "string"}, "user_id": {"type": "integer"}
            }
        },
        "model.Listing": {
            "type": "object",
            "properties": {
                "address": {"type": "string"}, "bathrooms": {"type": "number"}, "bedrooms": {"type": "integer"},
                "city": {"type": "string"}, "description": {"type": "string"}, "garage": {"type": "integer"},
                "id": {"type": "integer"}, "is_published": {"type": "boolean"}, "list_date": {"type": "string"},
                "lot_size": {"type": "number"}, "price": {"type": "integer"}, "realtor_id": {"type": "integer"},
                "sqft": {"type": "integer"}, "state": {"type": "string"}, "title": {"type": "string"},
                "zipcode": {"type": "string"}
            }
        },
        "model.Realtor": {
            "type": "object",
            "properties": {
                "description": {"type": "string"}, "email": {"type": "string"}, "id": {"type": "integer"},
                "is_mvp": {"type": "boolean"}, "name": {"type": "string"}, "phone": {"type": "string"}
            }
        },
        "model.PropertyImage": {
            "type": "object",
            "properties": {
                "content_type": {"type": "string"}, "created_at": {"type": "string"}, "featured": {"type": "boolean"},
                "filename": {"type": "string"}, "id": {"type": "string"}, "listing_id": {"type": "integer"},
                "size": {"type": "integer"}, "sort_order": {"type": "integer"}, "storage_path": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "pipeline.Dropped": {
            "type": "object",
            "properties": {"filename": {"type": "string"}, "index": {"type": "integer"}, "reason": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Realty API",
	Description:      "Listings with photo ingestion, buyer inquiries and the contacts PDF report.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
