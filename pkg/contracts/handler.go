package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP module mounted on the application router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
