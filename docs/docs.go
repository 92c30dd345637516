// Package docs holds the OpenAPI description served at /swagger/.
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
        "/api/products": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "products"
                ],
                "summary": "List products",
                "description": "Filters the catalog by category and search text, then sorts it",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Category slug, or all",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Search text matched against name and category",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "relevance, trending, latest, price-asc or price-desc",
                        "name": "sort",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Offset",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Limit",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.ProductsSearchResult"
                        }
                    },
                    "400": {
                        "description": "Invalid pagination",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "products"
                ],
                "summary": "Get product by ID",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid ID",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/categories": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "products"
                ],
                "summary": "List shop categories",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/catalog.Option"
                            }
                        }
                    }
                }
            }
        },
        "/api/sort-options": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "products"
                ],
                "summary": "List sort options",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/catalog.Option"
                            }
                        }
                    }
                }
            }
        },
        "/api/home": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "products"
                ],
                "summary": "Home page products",
                "description": "Featured grid and carousel products, in display order",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.HomeResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/cart": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cart"
                ],
                "summary": "Get the session cart",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CartResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/cart/items": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cart"
                ],
                "summary": "Add an item to the cart",
                "description": "Adds one unit of a product/size/color. Omitted fields default to the current selection,\nwhich is cleared after a successful add. Adding an existing combination increments its quantity.",
                "parameters": [
                    {
                        "description": "Item to add",
                        "name": "item",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/handlers.AddToCartRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.CartResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/handlers.ValidationError"
                            }
                        }
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/cart/items/{index}": {
            "patch": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cart"
                ],
                "summary": "Change a cart line quantity",
                "description": "A quantity of zero or less removes the line",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Line index",
                        "name": "index",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New quantity",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.QuantityUpdateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CartResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/handlers.ValidationError"
                            }
                        }
                    },
                    "404": {
                        "description": "Line not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cart"
                ],
                "summary": "Remove a cart line",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Line index",
                        "name": "index",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CartResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid index",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "Line not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/selection": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "selection"
                ],
                "summary": "Get the selected product and options",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.SelectionResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "selection"
                ],
                "summary": "Select a product",
                "description": "Opens the product dialog. Previously chosen size and color are cleared.",
                "parameters": [
                    {
                        "description": "Product to select",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.SelectProductRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.SelectionResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "selection"
                ],
                "summary": "Close the product dialog",
                "responses": {
                    "204": {
                        "description": "Cleared"
                    }
                }
            }
        },
        "/api/selection/size": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "selection"
                ],
                "summary": "Choose a size for the selected product",
                "parameters": [
                    {
                        "description": "Size",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.SizeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.SelectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/handlers.ValidationError"
                            }
                        }
                    },
                    "409": {
                        "description": "No product selected",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/selection/color": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "selection"
                ],
                "summary": "Choose a color for the selected product",
                "parameters": [
                    {
                        "description": "Color",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.ColorRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.SelectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/handlers.ValidationError"
                            }
                        }
                    },
                    "409": {
                        "description": "No product selected",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/carousel": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "carousel"
                ],
                "summary": "Get the carousel state",
                "description": "Window size and indicator count depend on the viewport width hint",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Viewport width in CSS pixels",
                        "name": "w",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CarouselResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "carousel"
                ],
                "summary": "Jump to a carousel position",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Viewport width in CSS pixels",
                        "name": "w",
                        "in": "query"
                    },
                    {
                        "description": "Indicator index",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.CarouselSetRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CarouselResponse"
                        }
                    },
                    "400": {
                        "description": "Index out of range",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/carousel/advance": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "carousel"
                ],
                "summary": "Advance the carousel one step",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Viewport width in CSS pixels",
                        "name": "w",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CarouselResponse"
                        }
                    }
                }
            }
        },
        "/api/carousel/stream": {
            "get": {
                "produces": [
                    "text/event-stream"
                ],
                "tags": [
                    "carousel"
                ],
                "summary": "Stream carousel advances",
                "description": "Server-sent events. A \"state\" event is sent on connect, then a \"carousel\" event every interval.\nThe ticker stops when the client disconnects.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Viewport width in CSS pixels",
                        "name": "w",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CarouselResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "catalog.Option": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            }
        },
        "handlers.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "price": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "trending": {
                    "type": "boolean"
                },
                "date_added": {
                    "type": "string"
                },
                "sizes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "colors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "handlers.Meta": {
            "type": "object",
            "properties": {
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "handlers.ProductsSearchResult": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.ProductResponse"
                    }
                },
                "meta": {
                    "$ref": "#/definitions/handlers.Meta"
                }
            }
        },
        "handlers.HomeResponse": {
            "type": "object",
            "properties": {
                "featured": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.ProductResponse"
                    }
                },
                "carousel": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.ProductResponse"
                    }
                }
            }
        },
        "handlers.CartLineResponse": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer"
                },
                "product_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "price": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "size": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "subtotal": {
                    "type": "string"
                }
            }
        },
        "handlers.CartResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.CartLineResponse"
                    }
                },
                "total_items": {
                    "type": "integer"
                },
                "total_price": {
                    "type": "string"
                }
            }
        },
        "handlers.AddToCartRequest": {
            "type": "object",
            "properties": {
                "product_id": {
                    "type": "integer"
                },
                "size": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                }
            }
        },
        "handlers.QuantityUpdateRequest": {
            "type": "object",
            "properties": {
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "handlers.SelectProductRequest": {
            "type": "object",
            "properties": {
                "product_id": {
                    "type": "integer"
                }
            }
        },
        "handlers.SizeRequest": {
            "type": "object",
            "properties": {
                "size": {
                    "type": "string"
                }
            }
        },
        "handlers.ColorRequest": {
            "type": "object",
            "properties": {
                "color": {
                    "type": "string"
                }
            }
        },
        "handlers.SelectionResponse": {
            "type": "object",
            "properties": {
                "product_id": {
                    "type": "integer"
                },
                "product": {
                    "$ref": "#/definitions/handlers.ProductResponse"
                },
                "size": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "ready": {
                    "type": "boolean"
                }
            }
        },
        "handlers.CarouselResponse": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer"
                },
                "window": {
                    "type": "integer"
                },
                "indicators": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "visible": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.ProductResponse"
                    }
                }
            }
        },
        "handlers.CarouselSetRequest": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer"
                }
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        },
        "handlers.ValidationError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ACME Storefront API",
	Description:      "Catalog browsing, session cart, product selection and home carousel for the ACME storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
