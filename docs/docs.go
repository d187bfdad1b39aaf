// Package docs registra la especificación OpenAPI de la API en swag.
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
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Estado del servicio y tamaño del almacenamiento", "responses": {"200": {"description": "ok, con storageBytes"}, "503": {"description": "almacén no responde"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login del operador", "responses": {"200": {"description": "token"}, "401": {"description": "password incorrecto"}}}
        },
        "/api/products": {
            "get": {"tags": ["products"], "summary": "Listar productos", "security": [{"Bearer": []}], "responses": {"200": {"description": "productos"}}},
            "post": {"tags": ["products"], "summary": "Crear producto con saldo inicial", "security": [{"Bearer": []}], "responses": {"201": {"description": "creado"}, "400": {"description": "validación"}, "507": {"description": "no durable"}}}
        },
        "/api/products/match": {
            "get": {"tags": ["products"], "summary": "Buscar en cascada", "security": [{"Bearer": []}], "responses": {"200": {"description": "candidatos y opciones"}}}
        },
        "/api/products/{id}": {
            "get": {"tags": ["products"], "summary": "Obtener producto", "security": [{"Bearer": []}], "responses": {"200": {"description": "producto"}, "404": {"description": "no existe"}}},
            "put": {"tags": ["products"], "summary": "Actualizar datos maestros", "security": [{"Bearer": []}], "responses": {"200": {"description": "producto"}, "404": {"description": "no existe"}}},
            "delete": {"tags": ["products"], "summary": "Eliminar producto", "security": [{"Bearer": []}], "responses": {"204": {"description": "eliminado"}, "404": {"description": "no existe"}}}
        },
        "/api/transactions": {
            "get": {"tags": ["transactions"], "summary": "Listar transacciones", "security": [{"Bearer": []}], "responses": {"200": {"description": "transacciones"}}},
            "post": {"tags": ["transactions"], "summary": "Registrar compra o venta", "security": [{"Bearer": []}], "responses": {"201": {"description": "registrada"}, "409": {"description": "stock insuficiente o ambiguo"}, "422": {"description": "producto desconocido"}, "507": {"description": "no durable"}}}
        },
        "/api/transactions/{id}": {
            "get": {"tags": ["transactions"], "summary": "Obtener transacción", "security": [{"Bearer": []}], "responses": {"200": {"description": "transacción"}, "404": {"description": "no existe"}}},
            "put": {"tags": ["transactions"], "summary": "Editar transacción", "security": [{"Bearer": []}], "responses": {"200": {"description": "editada"}, "409": {"description": "stock negativo"}, "422": {"description": "huérfana"}}}
        },
        "/api/dashboard/summary": {
            "get": {"tags": ["dashboard"], "summary": "Resumen del inventario", "security": [{"Bearer": []}], "responses": {"200": {"description": "resumen"}}}
        },
        "/api/inventory/replenishment": {
            "get": {"tags": ["dashboard"], "summary": "Lista de reposición", "security": [{"Bearer": []}], "responses": {"200": {"description": "sugerencias"}}}
        },
        "/api/reports/summary": {
            "get": {"tags": ["reports"], "summary": "Totales del rango", "security": [{"Bearer": []}], "responses": {"200": {"description": "reporte"}}}
        },
        "/api/reports/value-series": {
            "get": {"tags": ["reports"], "summary": "Curva de valor del inventario", "security": [{"Bearer": []}], "responses": {"200": {"description": "serie"}, "400": {"description": "rango inválido"}}}
        },
        "/api/reports/transactions.pdf": {
            "get": {"tags": ["reports"], "summary": "Reporte de transacciones en PDF", "produces": ["application/pdf"], "security": [{"Bearer": []}], "responses": {"200": {"description": "pdf"}}}
        },
        "/api/reports/inventory.pdf": {
            "get": {"tags": ["reports"], "summary": "Resumen del inventario en PDF", "produces": ["application/pdf"], "security": [{"Bearer": []}], "responses": {"200": {"description": "pdf"}}}
        },
        "/api/backup": {
            "get": {"tags": ["backup"], "summary": "Descargar respaldo", "security": [{"Bearer": []}], "responses": {"200": {"description": "respaldo"}}}
        },
        "/api/backup/restore": {
            "post": {"tags": ["backup"], "summary": "Restaurar respaldo", "security": [{"Bearer": []}], "responses": {"200": {"description": "restaurado"}, "400": {"description": "respaldo inválido"}, "507": {"description": "no durable"}}}
        },
        "/api/backup/reset": {
            "post": {"tags": ["backup"], "summary": "Borrar todo", "security": [{"Bearer": []}], "responses": {"204": {"description": "borrado"}, "507": {"description": "no durable"}}}
        }
    }
}`

// SwaggerInfo información de la API exportada para poder modificarla en tiempo de ejecución.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Stock Master API",
	Description:      "Inventario de una tienda: catálogo, compras, ventas, conciliación de stock y reportes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
