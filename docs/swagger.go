// Package docs Livemap Occupancy Service API.
//
// Бэкенд для отслеживания заполняемости парковок по видеопотокам.
// Хранит географическую иерархию (страна, город, адрес, парковка),
// источники видеопотоков и замеры занятости, выдаёт воркерам аренды
// на потоки и агрегирует почасовую статистику.
//
// Основные возможности:
// - CRUD для парковок и источников видеопотоков
// - Аренда потоков воркерами через mark_in_use_until
// - Приём замеров занятости от воркеров
// - Почасовые сводки заполняемости по каждой парковке
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
