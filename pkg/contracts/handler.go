package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// ShutdownHook releases a resource once the HTTP server has stopped.
type ShutdownHook struct {
	Name string
	Fn   func()
}
