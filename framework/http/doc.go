// Package http provides JSON response helpers for the framework's HTTP
// handlers.
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.Conflict()                // 409 {"message": "Conflict."}
//	res.ServerError()             // 500 {"message": "Server Error."}
package http
