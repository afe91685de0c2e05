package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every resource handler that mounts routes.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
