// Package docs registers the OpenAPI document served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Major League Insights"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/matchups": {
            "get": {
                "description": "Runs the matchup pipeline for every not-yet-played game on the date. A failed matchup is reported inline and does not fail the request.",
                "produces": ["application/json"],
                "tags": ["matchups"],
                "summary": "Analytics for a day's slate",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Date (YYYY-MM-DD), defaults to today",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/matchup.RunResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/matchups/{teamA}/{teamB}": {
            "get": {
                "description": "Resolves both team names and computes league, team, record and head-to-head analytics over completed games up to the date.",
                "produces": ["application/json"],
                "tags": ["matchups"],
                "summary": "Ad-hoc matchup",
                "parameters": [
                    {
                        "type": "string",
                        "description": "First team (name, nickname or abbreviation)",
                        "name": "teamA",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Second team",
                        "name": "teamB",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Date (YYYY-MM-DD), defaults to today",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analytics.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "provider.Team": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "short_name": {"type": "string"},
                "abbreviation": {"type": "string"},
                "city": {"type": "string"}
            }
        },
        "analytics.WindowMean": {
            "type": "object",
            "properties": {
                "window": {"type": "string", "example": "L10"},
                "mean": {"type": "number"}
            }
        },
        "analytics.WinLoss": {
            "type": "object",
            "properties": {
                "window": {"type": "string"},
                "wins": {"type": "integer"},
                "losses": {"type": "integer"}
            }
        },
        "analytics.TeamSeries": {
            "type": "object",
            "properties": {
                "team": {"$ref": "#/definitions/provider.Team"},
                "means": {"type": "array", "items": {"$ref": "#/definitions/analytics.WindowMean"}}
            }
        },
        "analytics.TeamRecord": {
            "type": "object",
            "properties": {
                "team": {"$ref": "#/definitions/provider.Team"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/analytics.WinLoss"}}
            }
        },
        "analytics.HeadToHeadStats": {
            "type": "object",
            "properties": {
                "team_a": {"$ref": "#/definitions/provider.Team"},
                "team_b": {"$ref": "#/definitions/provider.Team"},
                "games": {"type": "integer"},
                "combined": {"type": "array", "items": {"$ref": "#/definitions/analytics.WindowMean"}},
                "runs_a": {"type": "array", "items": {"$ref": "#/definitions/analytics.WindowMean"}},
                "runs_b": {"type": "array", "items": {"$ref": "#/definitions/analytics.WindowMean"}},
                "record_a": {"type": "array", "items": {"$ref": "#/definitions/analytics.WinLoss"}},
                "record_b": {"type": "array", "items": {"$ref": "#/definitions/analytics.WinLoss"}}
            }
        },
        "analytics.Result": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date-time"},
                "home": {"$ref": "#/definitions/provider.Team"},
                "away": {"$ref": "#/definitions/provider.Team"},
                "league_run_averages": {"type": "array", "items": {"$ref": "#/definitions/analytics.TeamSeries"}},
                "team_run_averages": {"type": "array", "items": {"$ref": "#/definitions/analytics.TeamSeries"}},
                "win_loss_records": {"type": "array", "items": {"$ref": "#/definitions/analytics.TeamRecord"}},
                "head_to_head": {"$ref": "#/definitions/analytics.HeadToHeadStats"},
                "no_data": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "matchup.Result": {
            "type": "object",
            "properties": {
                "game_id": {"type": "integer"},
                "home_name": {"type": "string"},
                "away_name": {"type": "string"},
                "analytics": {"$ref": "#/definitions/analytics.Result"},
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "matchup.RunResult": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date-time"},
                "matchups_found": {"type": "integer"},
                "processed": {"type": "integer"},
                "succeeded": {"type": "integer"},
                "failed": {"type": "integer"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "results": {"type": "array", "items": {"$ref": "#/definitions/matchup.Result"}}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Major League Insights API",
	Description:      "Rolling-window MLB matchup analytics: league and team run averages, win-loss records and head-to-head history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
