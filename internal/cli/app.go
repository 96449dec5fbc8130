package cli

import (
	"fmt"
	"time"

	"github.com/user/ajar/internal/service"
	"github.com/user/ajar/internal/session"
	"github.com/user/ajar/internal/storage"
)

// now is the clock used for DO numbers and journey entries, replaced in tests.
var now = time.Now

// app is what a data command works against.
type app struct {
	store    *storage.Store
	svc      *service.Service
	sessions *session.Manager
}

// openApp loads the data source, opens the state directory and replays
// the journal.
func openApp() (*app, error) {
	snap, err := storage.LoadSnapshot(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	st, err := storage.NewStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc, err := service.New(snap, service.Options{
		Storage:     st,
		OrderPrefix: cfg.OrderPrefix,
		Locale:      cfg.LocaleTag(),
		Actor:       cfg.Actor,
		Logger:      logger,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	return &app{
		store:    st,
		svc:      svc,
		sessions: session.NewManager(cfg.StateDir),
	}, nil
}

// openSession is openApp for commands that need a logged-in user.
func openSession() (*app, *session.Session, error) {
	sessions := session.NewManager(cfg.StateDir)
	s, err := sessions.Current()
	if err != nil {
		return nil, nil, err
	}

	a, err := openApp()
	if err != nil {
		return nil, nil, err
	}
	return a, s, nil
}

// Close releases resources.
func (a *app) Close() error {
	return a.store.Close()
}
