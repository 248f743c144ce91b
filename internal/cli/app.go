package cli

import (
	"database/sql"
	"io"

	"github.com/odysseus0/mdcopy/internal/config"
	"github.com/odysseus0/mdcopy/internal/convert"
	"github.com/odysseus0/mdcopy/internal/source"
	"github.com/odysseus0/mdcopy/internal/store"
)

// copier is the clipboard collaborator; *clipboard.Writer in production.
type copier interface {
	Copy(text string) error
}

type App struct {
	cfg       config.Config
	db        *sql.DB
	store     *store.Store
	renderer  *convert.Renderer
	loader    *source.Loader
	clipboard copier
}

// NewApp wires the collaborators. The history database is only opened when
// history is enabled.
func NewApp(cfg config.Config, dbPath string, engine convert.Engine, stdin io.Reader, clip copier) (*App, error) {
	cfg.DBPath = dbPath
	app := &App{
		cfg:       cfg,
		renderer:  convert.NewRenderer(engine),
		loader:    source.NewLoader(cfg.HTTPTimeout, cfg.UserAgent, stdin),
		clipboard: clip,
	}
	if cfg.History {
		db, err := store.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.store = store.NewStore(db)
	}
	return app, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
