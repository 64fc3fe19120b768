// Package docs registra la especificación OpenAPI servida en /swagger.
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
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/store": {
            "get": {"produces": ["application/json"], "tags": ["store"], "summary": "Datos públicos de la tienda", "responses": {"200": {"description": "OK"}}}
        },
        "/nutrition/preview": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["nutrition"], "summary": "Previsualizar requerimientos nutricionales", "responses": {"200": {"description": "OK"}, "400": {"description": "invalid json / perfil fuera de rango"}}}
        },
        "/me/profile": {
            "get": {"produces": ["application/json"], "tags": ["profiles"], "summary": "Ver mi perfil de entrega", "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}},
            "patch": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["profiles"], "summary": "Actualizar mi perfil de entrega", "responses": {"200": {"description": "OK"}, "400": {"description": "invalid input"}, "401": {"description": "unauthorized"}}}
        },
        "/cats": {
            "get": {"produces": ["application/json"], "tags": ["cats"], "summary": "Listar mis gatos", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["cats"], "summary": "Crear gato", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input"}}}
        },
        "/cats/{catID}": {
            "get": {"produces": ["application/json"], "tags": ["cats"], "summary": "Ver gato", "parameters": [{"type": "string", "name": "catID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}, "404": {"description": "not found"}}},
            "patch": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["cats"], "summary": "Editar gato", "parameters": [{"type": "string", "name": "catID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["cats"], "summary": "Borrar gato", "parameters": [{"type": "string", "name": "catID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/cats/{catID}/nutrition": {
            "get": {"produces": ["application/json"], "tags": ["cats"], "summary": "Plan nutricional del gato", "parameters": [{"type": "string", "name": "catID", "in": "path", "required": true}, {"type": "integer", "name": "days", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/plans": {
            "get": {"produces": ["application/json"], "tags": ["plans"], "summary": "Listar planes activos", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["plans"], "summary": "Crear plan (admin)", "responses": {"201": {"description": "Created"}, "403": {"description": "forbidden"}}}
        },
        "/plans/{planID}": {
            "get": {"produces": ["application/json"], "tags": ["plans"], "summary": "Ver plan", "parameters": [{"type": "string", "name": "planID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}}
        },
        "/checkout": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["orders"], "summary": "Crear pedido y suscripción", "responses": {"201": {"description": "Created"}, "422": {"description": "perfil incompleto / ciudad sin cobertura / sin gatos / plan no disponible"}}}
        },
        "/orders": {
            "get": {"produces": ["application/json"], "tags": ["orders"], "summary": "Listar mis pedidos", "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{orderID}": {
            "get": {"produces": ["application/json"], "tags": ["orders"], "summary": "Ver pedido con historial", "parameters": [{"type": "string", "name": "orderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}, "404": {"description": "not found"}}}
        },
        "/orders/{orderID}/cancel": {
            "post": {"produces": ["application/json"], "tags": ["orders"], "summary": "Cancelar pedido pendiente", "parameters": [{"type": "string", "name": "orderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "invalid status transition"}}}
        },
        "/orders/{orderID}/status": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["orders"], "summary": "Cambiar estado (admin)", "parameters": [{"type": "string", "name": "orderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "invalid status transition"}}}
        },
        "/orders/{orderID}/notifications": {
            "get": {"produces": ["application/json"], "tags": ["notifications"], "summary": "Notificaciones del pedido (admin)", "parameters": [{"type": "string", "name": "orderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/subscriptions": {
            "get": {"produces": ["application/json"], "tags": ["subscriptions"], "summary": "Listar mis suscripciones", "responses": {"200": {"description": "OK"}}}
        },
        "/subscriptions/{subscriptionID}/{action}": {
            "post": {"produces": ["application/json"], "tags": ["subscriptions"], "summary": "Pausar, reanudar o cancelar", "parameters": [{"type": "string", "name": "subscriptionID", "in": "path", "required": true}, {"enum": ["pause", "resume", "cancel"], "type": "string", "name": "action", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "invalid status transition"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catbox API",
	Description:      "Suscripciones de comida fresca para gatos: perfiles, cálculo nutricional, pedidos y avisos por WhatsApp.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
