package app

// Boot the shared infrastructure before building the handler, so the
// auto-migration inside buildHandler sees a live database. internal/server
// owns the listen and serve lifecycle.

import "github.com/thanhvudev/furnimart/internal/server"

func startServer(a *Application) error {
	if err := server.Boot(); err != nil {
		return err
	}
	handler := buildHandler(a)
	return server.Start(handler)
}
