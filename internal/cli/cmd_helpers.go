package cli

import (
	"errors"
	"fmt"

	"github.com/odysseus0/mdcopy/internal/store"
)

func requireApp(getApp func() *App) (*App, error) {
	app := getApp()
	if app == nil {
		return nil, errors.New("app not initialized")
	}
	return app, nil
}

func requireStore(app *App) (*store.Store, error) {
	if app.store == nil {
		return nil, fmt.Errorf("%w: history is disabled (set history = true in config)", store.ErrInvalidInput)
	}
	return app.store, nil
}
