package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Practicum Track API",
        "description": "Practicum placement tracking across a relational and a document store",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Registration, login and sessions"},
        {"name": "Users", "description": "Tutor-side user provisioning"},
        {"name": "Mappings", "description": "Mentor-student assignments"},
        {"name": "Attendance", "description": "Daily attendance submissions"},
        {"name": "Logs", "description": "Practicum log papers and their workflow"},
        {"name": "Feedback", "description": "Mentor verdicts and tutor feedback threads"},
        {"name": "Dashboard", "description": "Cross-store aggregates"},
        {"name": "Export", "description": "Log report downloads"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "responses": {
                    "204": {"description": "Token revoked"}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user with generated credential",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already exists"}
                }
            }
        },
        "/mappings": {
            "get": {
                "tags": ["Mappings"],
                "summary": "List mentor-student mappings",
                "parameters": [
                    {"name": "mentorId", "in": "query", "type": "integer"},
                    {"name": "studentId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Mappings"],
                "summary": "Assign a student to a mentor",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MapRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created or already mapped"}
                }
            },
            "delete": {
                "tags": ["Mappings"],
                "summary": "Remove a mentor-student mapping",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MapRequest"}}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Mapping not found"}
                }
            }
        },
        "/mappings/students": {
            "get": {
                "tags": ["Mappings"],
                "summary": "Students assigned to the calling mentor",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "All attendance records",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Submit daily attendance",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitAttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Already submitted today"}
                }
            }
        },
        "/attendance/my": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance history of the calling student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/mapped": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Practicum attendance of assigned students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/logs": {
            "get": {
                "tags": ["Logs"],
                "summary": "All log papers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Logs"],
                "summary": "Submit a log paper",
                "consumes": ["application/json", "multipart/form-data"],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/logs/my": {
            "get": {
                "tags": ["Logs"],
                "summary": "Log papers of the calling student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/logs/mapped": {
            "get": {
                "tags": ["Logs"],
                "summary": "Log papers of assigned students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/logs/{id}": {
            "get": {
                "tags": ["Logs"],
                "summary": "One log paper",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not allowed"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/logs/{id}/verify": {
            "patch": {
                "tags": ["Logs"],
                "summary": "Verify a pending log paper",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyLogRequest"}}
                ],
                "responses": {
                    "200": {"description": "Verified"},
                    "412": {"description": "Not in Pending status"}
                }
            }
        },
        "/logs/{id}/review": {
            "patch": {
                "tags": ["Logs"],
                "summary": "Mark a verified log paper reviewed",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Reviewed"},
                    "412": {"description": "Not in Verified status"}
                }
            }
        },
        "/feedback/mentor": {
            "post": {
                "tags": ["Feedback"],
                "summary": "Add mentor feedback to a log paper",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddMentorFeedbackRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Log paper not found"}
                }
            }
        },
        "/feedback/mentor/{logId}": {
            "get": {
                "tags": ["Feedback"],
                "summary": "Mentor feedback for a log paper",
                "parameters": [
                    {"name": "logId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No feedback yet"}
                }
            }
        },
        "/feedback/tutor": {
            "get": {
                "tags": ["Feedback"],
                "summary": "Every tutor feedback entry",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/feedback/tutor/{logId}": {
            "get": {
                "tags": ["Feedback"],
                "summary": "Tutor feedback thread for a log paper",
                "parameters": [
                    {"name": "logId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Feedback"],
                "summary": "Append tutor feedback",
                "parameters": [
                    {"name": "logId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddTutorFeedbackRequest"}}
                ],
                "responses": {
                    "201": {"description": "Appended"}
                }
            }
        },
        "/dashboard/attendance": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Attendance overview grouped per student",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/logs": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Log summary by status, activity and month",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/progress": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Per-student progress merged across stores",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "minHours", "in": "query", "type": "number"},
                    {"name": "minLogs", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK; meta.degraded marks partial results"}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Entity counts across both stores",
                "responses": {
                    "200": {"description": "OK; meta.degraded marks partial results"}
                }
            }
        },
        "/dashboard/insights": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Top students and pending mentor backlog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/logs": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the log report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv, json or pdf"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["Student", "Mentor", "Tutor"]}
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
        "CreateUserRequest": {
            "type": "object",
            "required": ["name", "email", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["Student", "Mentor", "Tutor"]},
                "phone": {"type": "string"},
                "studentIndex": {"type": "string"},
                "organization": {"type": "string"}
            }
        },
        "MapRequest": {
            "type": "object",
            "required": ["mentorId", "studentId"],
            "properties": {
                "mentorId": {"type": "integer"},
                "studentId": {"type": "integer"}
            }
        },
        "SubmitAttendanceRequest": {
            "type": "object",
            "required": ["type", "attended"],
            "properties": {
                "type": {"type": "string", "enum": ["Class", "Practicum"]},
                "attended": {"type": "string", "enum": ["Yes", "No"]},
                "reason": {"type": "string"}
            }
        },
        "VerifyLogRequest": {
            "type": "object",
            "required": ["mentorComment"],
            "properties": {
                "mentorComment": {"type": "string"}
            }
        },
        "AddMentorFeedbackRequest": {
            "type": "object",
            "required": ["logPaperId", "comment"],
            "properties": {
                "logPaperId": {"type": "string"},
                "comment": {"type": "string"},
                "approved": {"type": "boolean"}
            }
        },
        "AddTutorFeedbackRequest": {
            "type": "object",
            "required": ["feedback"],
            "properties": {
                "feedback": {"type": "string"}
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
