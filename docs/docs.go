// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
		"/faculty": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Get all faculties",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/dto.FacultyResponse"
											}
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "No faculties exist",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Create a new faculty",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Faculty information",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateFacultyRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.FacultyResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid request data",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"409": {
						"description": "Faculty already exists",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/faculty/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Get faculty details",
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Faculty ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.FacultyResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid faculty ID format",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Faculty not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Update a faculty",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Faculty ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Updated faculty information",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateFacultyRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.FacultyResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid request data",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Faculty not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Delete a faculty",
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Faculty ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.SuccessResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Faculty not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/faculty/by-color": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Find faculties by color",
				"parameters": [
					{
						"type": "string",
						"description": "Color fragment",
						"name": "color",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/dto.FacultyResponse"
											}
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Color is blank",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "No faculty matched",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/faculty/search": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Find faculties by name or color",
				"parameters": [
					{
						"type": "string",
						"description": "Faculty name",
						"name": "name",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Faculty color",
						"name": "color",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/dto.FacultyResponse"
											}
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Both parameters are blank",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "No faculty matched",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/faculty/students": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Students of a faculty",
				"parameters": [
					{
						"type": "string",
						"description": "Faculty name fragment",
						"name": "name",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.FacultyStudentsResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Faculty not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/faculty/longest-name": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"faculties"
				],
				"summary": "Faculty with the longest name",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.FacultyResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "No faculties exist",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/student": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Get all students",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/dto.StudentResponse"
											}
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "No students exist",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Create a new student",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Student information",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateStudentRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.StudentResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid request data",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Faculty not found or no faculties exist",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Get student details",
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Student ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.StudentResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Student not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Update a student",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Student ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Updated student information",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateStudentRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.StudentResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid request data",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Student or faculty not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Delete a student",
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Student ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.SuccessResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Student not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/by-age": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Students by age",
				"parameters": [
					{
						"type": "integer",
						"description": "Age",
						"name": "age",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/dto.StudentResponse"
											}
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid age",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "No student matched",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/between-age": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Students by age range",
				"parameters": [
					{
						"type": "integer",
						"description": "Lower bound",
						"name": "from",
						"in": "query",
						"required": true
					},
					{
						"type": "integer",
						"description": "Upper bound",
						"name": "to",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/dto.StudentResponse"
											}
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid range",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "No student matched",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/faculty": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Faculty of a student",
				"parameters": [
					{
						"type": "string",
						"description": "Student name fragment",
						"name": "name",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.FacultyResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Student not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/count": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Count students",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.StudentCountResponse"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/student/average-age": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Average student age",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.AverageAgeResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "No students exist",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/last-five": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Last five students",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/dto.StudentResponse"
											}
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "No students exist",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/names-starting-with": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"students"
				],
				"summary": "Names starting with a letter",
				"parameters": [
					{
						"type": "string",
						"description": "First letter",
						"name": "letter",
						"in": "query",
						"default": "A"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"type": "string"
											}
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "No name matched",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/avatar/{id}/upload-avatar": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"avatars"
				],
				"summary": "Upload an avatar",
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Student ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "file",
						"description": "Avatar image (jpg, png, gif, bmp, tiff)",
						"name": "avatar",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.AvatarResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Missing file, bad extension or unusable image",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Student not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"413": {
						"description": "File exceeds the upload limit",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "File operation failed",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/avatar/{id}/avatar/download-preview": {
			"get": {
				"produces": [
					"application/octet-stream"
				],
				"tags": [
					"avatars"
				],
				"summary": "Download the avatar preview",
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Student ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"404": {
						"description": "Avatar not found or no students exist",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/avatar/{id}/download-avatar": {
			"get": {
				"produces": [
					"application/octet-stream"
				],
				"tags": [
					"avatars"
				],
				"summary": "Download the original avatar",
				"parameters": [
					{
						"type": "integer",
						"format": "int64",
						"minimum": 1,
						"description": "Student ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"404": {
						"description": "Avatar or file not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "File operation failed",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/avatar/get-all": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"avatars"
				],
				"summary": "List avatars",
				"parameters": [
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query",
						"default": 1,
						"minimum": 1
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "size",
						"in": "query",
						"default": 10,
						"minimum": 1,
						"maximum": 100
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.AvatarListResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid page or size",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/avatar/delete": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"avatars"
				],
				"summary": "Delete an avatar",
				"parameters": [
					{
						"type": "integer",
						"description": "Student ID",
						"name": "student-id",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.SuccessResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid student ID",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Avatar not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/avatar/unused": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"avatars"
				],
				"summary": "Remove unused avatars",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.SweepResponse"
										}
									}
								}
							]
						}
					},
					"401": {
						"description": "Unauthorized - Invalid or missing token",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden - Admin role required",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "File operation failed",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/info": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"info"
				],
				"summary": "Instance info",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.APIResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.InfoResponse"
										}
									}
								}
							]
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.APIResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean",
					"example": true
				},
				"data": {},
				"error": {
					"$ref": "#/definitions/dto.ErrorDetail"
				},
				"timestamp": {
					"type": "string",
					"example": "2025-04-23T12:01:05.123Z"
				}
			}
		},
		"dto.ErrorDetail": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string",
					"example": "RES_001"
				},
				"message": {
					"type": "string",
					"example": "Student not found"
				},
				"field": {
					"type": "string",
					"example": "age"
				},
				"severity": {
					"type": "string",
					"example": "ERROR"
				},
				"details": {}
			}
		},
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean",
					"example": false
				},
				"error": {
					"$ref": "#/definitions/dto.ErrorDetail"
				},
				"timestamp": {
					"type": "string",
					"example": "2025-04-23T12:01:05.123Z"
				}
			}
		},
		"dto.SuccessResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string",
					"example": "Operation completed successfully"
				}
			}
		},
		"dto.PaginationInfo": {
			"type": "object",
			"properties": {
				"currentPage": {
					"type": "integer",
					"example": 1
				},
				"totalPages": {
					"type": "integer",
					"example": 3
				},
				"pageSize": {
					"type": "integer",
					"example": 10
				},
				"totalItems": {
					"type": "integer",
					"example": 25,
					"format": "int64"
				}
			}
		},
		"dto.FacultyResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"example": 1,
					"format": "int64"
				},
				"name": {
					"type": "string",
					"example": "Gryffindor"
				},
				"color": {
					"type": "string",
					"example": "red"
				}
			}
		},
		"dto.CreateFacultyRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string",
					"example": "Gryffindor",
					"maxLength": 255
				},
				"color": {
					"type": "string",
					"example": "red",
					"maxLength": 64
				}
			},
			"required": [
				"name",
				"color"
			]
		},
		"dto.UpdateFacultyRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string",
					"example": "Gryffindor",
					"maxLength": 255
				},
				"color": {
					"type": "string",
					"example": "scarlet",
					"maxLength": 64
				}
			},
			"required": [
				"name",
				"color"
			]
		},
		"dto.FacultyStudentsResponse": {
			"type": "object",
			"properties": {
				"faculty": {
					"$ref": "#/definitions/dto.FacultyResponse"
				},
				"students": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.StudentResponse"
					}
				}
			}
		},
		"dto.StudentResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"example": 1,
					"format": "int64"
				},
				"name": {
					"type": "string",
					"example": "Harry Potter"
				},
				"age": {
					"type": "integer",
					"example": 17
				},
				"facultyId": {
					"type": "integer",
					"example": 1,
					"format": "int64"
				},
				"facultyName": {
					"type": "string",
					"example": "Gryffindor"
				}
			}
		},
		"dto.CreateStudentRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string",
					"example": "Hermione Granger",
					"maxLength": 255
				},
				"age": {
					"type": "integer",
					"example": 17
				},
				"facultyId": {
					"type": "integer",
					"example": 1,
					"format": "int64"
				}
			},
			"required": [
				"name",
				"age",
				"facultyId"
			]
		},
		"dto.UpdateStudentRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string",
					"example": "Hermione Granger",
					"maxLength": 255
				},
				"age": {
					"type": "integer",
					"example": 18
				},
				"facultyId": {
					"type": "integer",
					"example": 1,
					"format": "int64"
				}
			},
			"required": [
				"name",
				"age",
				"facultyId"
			]
		},
		"dto.StudentCountResponse": {
			"type": "object",
			"properties": {
				"count": {
					"type": "integer",
					"example": 42,
					"format": "int64"
				}
			}
		},
		"dto.AverageAgeResponse": {
			"type": "object",
			"properties": {
				"averageAge": {
					"type": "number",
					"example": 17.5
				}
			}
		},
		"dto.AvatarResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"example": 1,
					"format": "int64"
				},
				"studentId": {
					"type": "integer",
					"example": 7,
					"format": "int64"
				},
				"filePath": {
					"type": "string",
					"example": "avatars/7.png"
				},
				"fileSize": {
					"type": "integer",
					"example": 48213,
					"format": "int64"
				},
				"mediaType": {
					"type": "string",
					"example": "image/png"
				}
			}
		},
		"dto.AvatarListResponse": {
			"type": "object",
			"properties": {
				"avatars": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.AvatarResponse"
					}
				},
				"pagination": {
					"$ref": "#/definitions/dto.PaginationInfo"
				}
			}
		},
		"dto.SweepResponse": {
			"type": "object",
			"properties": {
				"orphanRowsRemoved": {
					"type": "integer",
					"example": 2
				},
				"orphanFilesRemoved": {
					"type": "integer",
					"example": 3
				}
			}
		},
		"dto.InfoResponse": {
			"type": "object",
			"properties": {
				"port": {
					"type": "string",
					"example": "8080"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Admin JWT for maintenance routes, as \"Bearer <token>\"",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/school",
	Schemes:          []string{"http"},
	Title:            "Hogwarts School API",
	Description:      "Students, faculties and student avatars.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
