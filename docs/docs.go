// Package docs registers the Swagger document served at /swagger/index.html.
// The canonical API contract lives in api/openapi.yml; this document is the
// Swagger 2.0 rendering echo-swagger expects.
package docs

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
    "paths": {
        "/api/v1/workflows/trigger": {
            "post": {
                "summary": "Trigger a workflow stage",
                "description": "Advances the pipeline by one stage for the named entity. Re-triggering an already completed stage is an idempotent no-op.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Tenant-ID", "in": "header", "required": true, "type": "string", "format": "uuid"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TriggerWorkflowRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stage outcome"},
                    "400": {"description": "Malformed input or unknown workflow type"},
                    "404": {"description": "Entity not found for the tenant"},
                    "409": {"description": "Concurrent modification"},
                    "422": {"description": "Business rule prevented the stage from running"}
                }
            }
        },
        "/api/v1/requests/{requestId}/status": {
            "get": {
                "summary": "Get a request's pipeline status",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Tenant-ID", "in": "header", "required": true, "type": "string", "format": "uuid"},
                    {"name": "requestId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "Aggregated pipeline state"},
                    "404": {"description": "Request not found for the tenant"}
                }
            }
        },
        "/api/v1/requests/{requestId}/selection": {
            "post": {
                "summary": "Manually select a quote",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Tenant-ID", "in": "header", "required": true, "type": "string", "format": "uuid"},
                    {"name": "requestId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectQuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "Selection outcome"},
                    "404": {"description": "Request or quote not found"},
                    "409": {"description": "Another quote was already selected"}
                }
            }
        },
        "/api/v1/dashboard/metrics": {
            "get": {
                "summary": "Get dashboard counters",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Tenant-ID", "in": "header", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "Pipeline throughput counters"}
                }
            }
        }
    },
    "definitions": {
        "TriggerWorkflowRequest": {
            "type": "object",
            "required": ["workflow_type", "entity_id"],
            "properties": {
                "workflow_type": {"type": "string", "enum": ["TRANSPORT_REQUEST", "QUOTE_COLLECTION", "ORDER_PROCESSING", "DELIVERY_NOTIFICATION"]},
                "entity_id": {"type": "string", "format": "uuid"},
                "verified": {"type": "boolean"}
            }
        },
        "SelectQuoteRequest": {
            "type": "object",
            "required": ["quote_id"],
            "properties": {
                "quote_id": {"type": "string", "format": "uuid"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "FreightFlow Procurement API",
	Description:      "Transport procurement workflow pipeline.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
