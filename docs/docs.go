// Package docs holds the OpenAPI description served at /swagger/.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/api/phases": {
            "get": {
                "description": "The fixed phase catalog with the number of loaded questions.",
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "List phases",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.PhasesResponse"}}
                }
            }
        },
        "/api/questions/phase/{phaseID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "List questions of a phase",
                "parameters": [
                    {"type": "integer", "description": "Phase (1-6)", "name": "phaseID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.QuestionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "phase has no questions", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/quiz/start/{phaseID}": {
            "get": {
                "description": "Random selection without repeats, capped at the phase size.",
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Start a quiz",
                "parameters": [
                    {"type": "integer", "description": "Phase (1-6)", "name": "phaseID", "in": "path", "required": true},
                    {"type": "integer", "description": "Number of questions (default 10)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.QuestionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/quiz/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Scores the answers. Signed-in users also get the attempt, flashcards and progress recorded; bookkeeping failures come back as warnings.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Submit a quiz",
                "parameters": [
                    {"description": "Answers", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SubmitQuizRequest"}},
                    {"type": "string", "description": "Replays the first response for the same key", "name": "Idempotency-Key", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/user/flashcards": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "List flashcards",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.FlashcardsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/user/flashcards/remove": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Remove a flashcard",
                "parameters": [
                    {"description": "Card to remove", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RemoveFlashcardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.RemoveFlashcardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/user/progress": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Progress per phase",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ProgressResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/user/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Attempt history",
                "parameters": [
                    {"type": "integer", "description": "At most 50", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HistoryResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/user/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/user/last-grades": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Last grade per phase",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.LastGradesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "invalid phase"}}
        },
        "api.PhasesResponse": {
            "type": "object",
            "properties": {"phases": {"type": "array", "items": {"$ref": "#/definitions/service.PhaseSummary"}}}
        },
        "api.QuestionsResponse": {
            "type": "object",
            "properties": {"questions": {"type": "array", "items": {"$ref": "#/definitions/questionbank.PublicQuestion"}}}
        },
        "api.SubmitQuizRequest": {
            "type": "object",
            "properties": {
                "phaseId": {"type": "integer", "example": 1},
                "answers": {"type": "array", "items": {"$ref": "#/definitions/grader.AnsweredItem"}},
                "timeSpent": {"type": "integer", "example": 143}
            }
        },
        "api.FlashcardsResponse": {
            "type": "object",
            "properties": {
                "flashcards": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/flashcard.Entry"}}
                }
            }
        },
        "api.RemoveFlashcardRequest": {
            "type": "object",
            "properties": {
                "phaseId": {"type": "integer", "example": 2},
                "questionId": {"type": "integer", "example": 14}
            }
        },
        "api.RemoveFlashcardResponse": {
            "type": "object",
            "properties": {"removed": {"type": "integer", "example": 1}}
        },
        "api.ProgressResponse": {
            "type": "object",
            "properties": {"progress": {"type": "array", "items": {"$ref": "#/definitions/progress.UserProgress"}}}
        },
        "api.HistoryResponse": {
            "type": "object",
            "properties": {"history": {"type": "array", "items": {"$ref": "#/definitions/progress.Attempt"}}}
        },
        "api.StatsResponse": {
            "type": "object",
            "properties": {"stats": {"$ref": "#/definitions/progress.Stats"}}
        },
        "api.LastGradesResponse": {
            "type": "object",
            "properties": {"lastGrades": {"type": "array", "items": {"$ref": "#/definitions/progress.Attempt"}}}
        },
        "flashcard.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "phase_id": {"type": "integer"},
                "question_id": {"type": "integer"},
                "question_text": {"type": "string"},
                "correct_answer": {"type": "string"},
                "user_wrong_answer": {"type": "string"},
                "created_at": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "grader.AnsweredItem": {
            "type": "object",
            "properties": {
                "questionId": {"type": "integer"},
                "userAnswer": {"type": "string"}
            }
        },
        "grader.ItemResult": {
            "type": "object",
            "properties": {
                "questionId": {"type": "integer"},
                "userAnswer": {"type": "string"},
                "correctAnswer": {"type": "string"},
                "isCorrect": {"type": "boolean"}
            }
        },
        "progress.Attempt": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "phase_id": {"type": "integer"},
                "score": {"type": "integer"},
                "total_questions": {"type": "integer"},
                "time_spent": {"type": "integer"},
                "completed_at": {"type": "string"}
            }
        },
        "progress.Stats": {
            "type": "object",
            "properties": {
                "total_attempts": {"type": "integer"},
                "average_score": {"type": "number"},
                "best_score": {"type": "number"},
                "total_time": {"type": "integer"}
            }
        },
        "progress.UserProgress": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "phase_id": {"type": "integer"},
                "completed": {"type": "boolean"},
                "best_score": {"type": "integer"},
                "attempts_count": {"type": "integer"},
                "last_attempt_at": {"type": "string"}
            }
        },
        "questionbank.PublicQuestion": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "phase_id": {"type": "integer"},
                "question": {"type": "string"},
                "choices": {"type": "array", "items": {"type": "string"}},
                "image": {"type": "string"}
            }
        },
        "service.PhaseSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "question_count": {"type": "integer"}
            }
        },
        "service.SubmitResponse": {
            "type": "object",
            "properties": {
                "score": {"type": "integer"},
                "totalQuestions": {"type": "integer"},
                "percentage": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/grader.ItemResult"}},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DriveQuiz API",
	Description:      "Driving-exam quiz backend: phases, quizzes, scoring, flashcards and progress.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
