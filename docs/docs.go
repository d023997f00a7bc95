// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package docs contains the Swagger specification of the API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "schemes": {{ marshal .Schemes }},
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/phenomena": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "List of phenomena in the manifest order",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/handlers.manifestItem"
                            }
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    }
                }
            }
        },
        "/api/phenomena/{name}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "Rendered results of a phenomenon",
                "parameters": [
                    {
                        "type": "string",
                        "description": "phenomenon name (a manifest key)",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/render.ResultsView"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    }
                }
            }
        },
        "/api/phenomena/{name}/xlsx": {
            "get": {
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "summary": "Results of a phenomenon as an XLSX workbook",
                "parameters": [
                    {
                        "type": "string",
                        "description": "phenomenon name (a manifest key)",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    }
                }
            }
        },
        "/api/phenomena/{name}/markdown": {
            "get": {
                "produces": [
                    "text/markdown"
                ],
                "summary": "Results of a phenomenon as a Markdown document",
                "parameters": [
                    {
                        "type": "string",
                        "description": "phenomenon name (a manifest key)",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    }
                }
            }
        },
        "/api/monitoring/fetches": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "Data file fetch statistics",
                "parameters": [
                    {
                        "type": "string",
                        "default": "recent",
                        "description": "recent or total",
                        "name": "span",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/monitoring.FetchLoad"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    }
                }
            }
        },
        "/api/monitoring/fetches/recent": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "Recently fetched data files",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/source.FetchLog"
                            }
                        }
                    }
                }
            }
        },
        "/tools/cache": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "summary": "Remove all the cached data files",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.flushResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/uniresp.ActionError"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "uniresp.ActionError": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "handlers.manifestItem": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "file": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                }
            }
        },
        "handlers.flushResponse": {
            "type": "object",
            "properties": {
                "numRemoved": {
                    "type": "integer"
                }
            }
        },
        "render.DetailTable": {
            "type": "object",
            "properties": {
                "columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "render.RuleStats": {
            "type": "object",
            "properties": {
                "numRules": {
                    "type": "integer"
                },
                "numYes": {
                    "type": "integer"
                },
                "numNo": {
                    "type": "integer"
                },
                "medianCramersPhi": {
                    "type": "number"
                },
                "maxCramersPhi": {
                    "type": "number"
                },
                "meanCoverage": {
                    "type": "number"
                },
                "meanPrecision": {
                    "type": "number"
                }
            }
        },
        "render.SummaryRow": {
            "type": "object",
            "properties": {
                "seq": {
                    "type": "integer"
                },
                "treebankId": {
                    "type": "string"
                },
                "filteredDepsLen": {
                    "type": "string"
                },
                "positive": {
                    "type": "string"
                },
                "toggle": {
                    "type": "string"
                },
                "detail": {
                    "$ref": "#/definitions/render.DetailTable"
                },
                "stats": {
                    "$ref": "#/definitions/render.RuleStats"
                }
            }
        },
        "render.ResultsView": {
            "type": "object",
            "properties": {
                "phenomenon": {
                    "type": "string"
                },
                "heading": {
                    "type": "string"
                },
                "file": {
                    "type": "string"
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/render.SummaryRow"
                    }
                }
            }
        },
        "monitoring.FetchLoad": {
            "type": "object",
            "properties": {
                "numFetches": {
                    "type": "integer"
                },
                "numErrors": {
                    "type": "integer"
                },
                "numCached": {
                    "type": "integer"
                },
                "totalTimeSecs": {
                    "type": "number"
                },
                "avgFetchSecs": {
                    "type": "number"
                },
                "numFiles": {
                    "type": "integer"
                },
                "firstUpdate": {
                    "type": "string"
                },
                "lastUpdate": {
                    "type": "string"
                }
            }
        },
        "source.FetchLog": {
            "type": "object",
            "properties": {
                "url": {
                    "type": "string"
                },
                "begin": {
                    "type": "string"
                },
                "end": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "cached": {
                    "type": "boolean"
                },
                "durationSecs": {
                    "type": "number"
                },
                "error": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Gramview API",
	Description:      "Viewer of grammatical rules extracted from treebanks",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
