package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TutorTrack API",
        "description": "Tutoring-business management backend",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "State", "description": "Account state and teacher roster"},
        {"name": "Schedule", "description": "Weekly lesson schedule"},
        {"name": "Students", "description": "Student management"},
        {"name": "Ledger", "description": "Per-student transaction ledger"},
        {"name": "Resources", "description": "Shared links and files"},
        {"name": "Insights", "description": "Generated payment and ledger texts"},
        {"name": "Statements", "description": "Account statement export"},
        {"name": "Share", "description": "Public parent and teacher views"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/share/parent": {
            "get": {
                "tags": ["Share"],
                "summary": "Parent view of a student ledger",
                "parameters": [
                    {"name": "owner", "in": "query", "required": true, "type": "string"},
                    {"name": "student", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/share/teacher": {
            "get": {
                "tags": ["Share"],
                "summary": "Teacher view of a weekly schedule",
                "parameters": [
                    {"name": "owner", "in": "query", "required": true, "type": "string"},
                    {"name": "name", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/resources/download": {
            "get": {
                "tags": ["Resources"],
                "summary": "Download a resource by signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/v1/state": {
            "get": {
                "tags": ["State"],
                "summary": "Get account state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers": {
            "post": {
                "tags": ["State"],
                "summary": "Add teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddTeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/current": {
            "put": {
                "tags": ["State"],
                "summary": "Select current teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddTeacherRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/stats": {
            "get": {
                "tags": ["State"],
                "summary": "Per-teacher student counts and expected income",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/settings/auto-processing": {
            "put": {
                "tags": ["State"],
                "summary": "Toggle automatic lesson processing",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetAutoProcessingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/slots": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Add empty slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/{day}/slots/{id}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Delete slot",
                "parameters": [
                    {"name": "day", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/schedule/book": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Book a slot for a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/{day}/slots/{id}/booking": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Cancel a booking",
                "parameters": [
                    {"name": "day", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/schedule/move": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Move a student to another slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/{day}/gaps": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Suggest free start times for a day",
                "parameters": [
                    {"name": "day", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List student summaries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/students/{studentId}/active": {
            "put": {
                "tags": ["Students"],
                "summary": "Toggle active flag",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/transactions": {
            "post": {
                "tags": ["Ledger"],
                "summary": "Add lesson or payment transaction",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Ledger"],
                "summary": "Update transaction note and date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/transactions/{id}": {
            "delete": {
                "tags": ["Ledger"],
                "summary": "Delete transaction",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/students/{studentId}/period": {
            "get": {
                "tags": ["Ledger"],
                "summary": "Current payment period with numbered lessons",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/resources/links": {
            "post": {
                "tags": ["Resources"],
                "summary": "Attach a link resource to a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddLinkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/resources/files": {
            "post": {
                "tags": ["Resources"],
                "summary": "Upload a file resource",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "studentId", "in": "formData", "required": true, "type": "string"},
                    {"name": "title", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "Payload Too Large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/resources/{id}": {
            "delete": {
                "tags": ["Resources"],
                "summary": "Delete resource",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/students/{studentId}/resources/{id}/download-url": {
            "get": {
                "tags": ["Resources"],
                "summary": "Mint a signed download URL",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/insights/reminder": {
            "post": {
                "tags": ["Insights"],
                "summary": "Generate a payment reminder text",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/insights/analysis": {
            "post": {
                "tags": ["Insights"],
                "summary": "Generate a ledger analysis text",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/statement": {
            "get": {
                "tags": ["Statements"],
                "summary": "Export an account statement",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File stream"}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "fee": {"type": "number"},
                "registrationDate": {"type": "string"},
                "debtLessonCount": {"type": "integer"},
                "makeupCredit": {"type": "integer"},
                "history": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Transaction"}
                },
                "resources": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Resource"}
                },
                "nextLessonNote": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "note": {"type": "string"},
                "date": {"type": "string"},
                "isDebt": {"type": "boolean"},
                "amount": {"type": "number"},
                "kind": {"type": "string"}
            }
        },
        "Resource": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"},
                "contentId": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "LessonSlot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "studentId": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "AddTeacherRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "SetAutoProcessingRequest": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"}
            },
            "required": ["enabled"]
        },
        "AddSlotRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"}
            },
            "required": ["day", "start", "end"]
        },
        "BookSlotRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "slot_id": {"type": "string"},
                "student_id": {"type": "string"},
                "student_name": {"type": "string"},
                "label": {"type": "string", "enum": ["REGULAR", "MAKEUP", "TRIAL"]}
            },
            "required": ["day", "slot_id"]
        },
        "MoveStudentRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "from_day": {"type": "string"},
                "from_slot_id": {"type": "string"},
                "to_day": {"type": "string"},
                "new_start": {"type": "string"}
            },
            "required": ["student_id", "from_day", "from_slot_id", "to_day", "new_start"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "fee": {"type": "string"},
                "color": {"type": "string"}
            },
            "required": ["name"]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "fee": {"type": "string"},
                "color": {"type": "string"},
                "next_lesson_note": {"type": "string"},
                "makeup_credit": {"type": "integer"}
            },
            "required": ["name"]
        },
        "AddTransactionRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "type": {"type": "string", "enum": ["LESSON", "PAYMENT"]},
                "date": {"type": "string"},
                "amount": {"type": "number"}
            },
            "required": ["student_id", "type"]
        },
        "UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "transaction_id": {"type": "string"},
                "note": {"type": "string"},
                "date": {"type": "string"}
            },
            "required": ["student_id", "transaction_id", "note"]
        },
        "AddLinkRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            },
            "required": ["student_id", "title", "url"]
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
