// Package docs Landscape Review Service API.
//
// Сервис предварительной проверки участка по ландшафтному плану:
// геокодирование адреса (VWorld, затем Kakao), поиск границы участка по PNU
// или по bbox вокруг точки, анализ пересечений с площадными слоями и
// близости точечных слоев (경관거점, 조망점).
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
// swagger:meta
package docs
