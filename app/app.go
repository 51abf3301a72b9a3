package app

import (
	"context"
	"os"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/filecoin-project/go-clock"

	apperrors "github.com/zxnprotocol/zxn/app/errors"
	"github.com/zxnprotocol/zxn/internal/events"
	"github.com/zxnprotocol/zxn/internal/header"
	"github.com/zxnprotocol/zxn/internal/store"
	burnmintkeeper "github.com/zxnprotocol/zxn/x/burnmint/keeper"
	burnminttypes "github.com/zxnprotocol/zxn/x/burnmint/types"
	tokenkeeper "github.com/zxnprotocol/zxn/x/token/keeper"
)

// Name is the name of the engine database.
const Name = "engine"

// Token selects one of the three token ledgers.
type Token string

const (
	PrimaryToken   Token = "primary"
	SecondaryToken Token = "secondary"
	OutputToken    Token = "output"
)

// EventHandler receives the events of every committed call.
type EventHandler func(call string, evts []events.Event)

// App hosts the emission engine. Every call runs against a fresh branch of
// the store under a single lock: a successful call commits all its writes
// in one batch, a failed call leaves no trace.
type App struct {
	mu     sync.Mutex
	closed bool
	// height numbers the calls served since start.
	height int64

	cfg    Config
	logger log.Logger
	clock  clock.Clock
	db     dbm.DB
	store  *store.Store

	headerService *header.Service
	eventHandler  EventHandler
	policy        burnminttypes.ConversionPolicy

	// keepers
	PrimaryKeeper   *tokenkeeper.Keeper
	SecondaryKeeper *tokenkeeper.Keeper
	OutputKeeper    *tokenkeeper.Keeper
	BurnMintKeeper  *burnmintkeeper.Keeper
}

// Option configures an App.
type Option func(*App)

// WithClock replaces the wall clock.
func WithClock(clk clock.Clock) Option {
	return func(app *App) { app.clock = clk }
}

// WithLogger replaces the logger built from the config.
func WithLogger(logger log.Logger) Option {
	return func(app *App) { app.logger = logger }
}

// WithDB uses db instead of opening the configured database. The app takes
// ownership of db.
func WithDB(db dbm.DB) Option {
	return func(app *App) { app.db = db }
}

// WithConversionPolicy replaces the default secondary conversion policy.
func WithConversionPolicy(policy burnminttypes.ConversionPolicy) Option {
	return func(app *App) { app.policy = policy }
}

// WithEventHandler registers a handler for the events of committed calls.
func WithEventHandler(handler EventHandler) Option {
	return func(app *App) { app.eventHandler = handler }
}

// New opens the engine database and wires the keepers. On first start the
// genesis state is applied, with the engine section of cfg overriding the
// schedule. On restart genesis may be nil and the stored state is used.
func New(cfg Config, genesis *GenesisState, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, clock: clock.New()}
	for _, opt := range opts {
		opt(app)
	}

	if app.logger == nil {
		logger, err := NewLogger(cfg.Log, os.Stderr)
		if err != nil {
			return nil, errorsmod.Wrapf(apperrors.ErrInvalidConfig, "log.level: %v", err)
		}
		app.logger = logger
	}
	if app.db == nil {
		db, err := dbm.NewDB(Name, dbm.BackendType(cfg.DB.Backend), cfg.DBDir())
		if err != nil {
			return nil, err
		}
		app.db = db
	}

	app.store = store.New(app.db)
	app.headerService = header.NewService(app.clock, cfg.ChainID)

	eventService := events.Service{}
	app.PrimaryKeeper = tokenkeeper.NewKeeper(app.store.Service(string(PrimaryToken)), eventService)
	app.SecondaryKeeper = tokenkeeper.NewKeeper(app.store.Service(string(SecondaryToken)), eventService)
	app.OutputKeeper = tokenkeeper.NewKeeper(app.store.Service(string(OutputToken)), eventService)
	app.BurnMintKeeper = burnmintkeeper.NewKeeper(
		app.store.Service(burnminttypes.ModuleName),
		app.headerService,
		eventService,
		app.PrimaryKeeper,
		app.SecondaryKeeper,
		app.OutputKeeper,
		app.policy,
	)

	if err := app.initialize(genesis); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	return app, nil
}

// initialize applies genesis unless the store already holds a schedule.
func (app *App) initialize(genesis *GenesisState) error {
	initialized, err := query(app, func(ctx context.Context) (bool, error) {
		return app.BurnMintKeeper.IsInitialized(ctx)
	})
	if err != nil {
		return err
	}
	if initialized {
		if genesis != nil {
			app.logger.Debug("engine already initialized, ignoring genesis")
		}
		return nil
	}

	if genesis == nil {
		return errorsmod.Wrap(apperrors.ErrInvalidGenesis, "genesis required on first start")
	}
	gs := *genesis
	if app.cfg.Engine.CycleLengthSeconds > 0 {
		gs.BurnMint.Params.CycleLengthSeconds = app.cfg.Engine.CycleLengthSeconds
	}
	origin, err := app.cfg.Engine.ParseOrigin()
	if err != nil {
		return err
	}
	if !origin.IsZero() {
		gs.BurnMint.CycleOrigin = origin
	}
	if err := gs.Validate(); err != nil {
		return err
	}

	return app.execute("init_genesis", func(ctx context.Context) error {
		if err := app.PrimaryKeeper.InitGenesis(ctx, &gs.Primary); err != nil {
			return err
		}
		if err := app.SecondaryKeeper.InitGenesis(ctx, &gs.Secondary); err != nil {
			return err
		}
		if err := app.OutputKeeper.InitGenesis(ctx, &gs.Output); err != nil {
			return err
		}
		if err := app.BurnMintKeeper.InitGenesis(ctx, &gs.BurnMint); err != nil {
			return err
		}
		app.logger.Info("engine initialized", "chain_id", app.cfg.ChainID, "max_active_cycles", gs.BurnMint.Params.MaxActiveCycles)
		return nil
	})
}

// Logger returns the host logger.
func (app *App) Logger() log.Logger {
	return app.logger
}

// Config returns the host configuration.
func (app *App) Config() Config {
	return app.cfg
}

// DB returns the engine database.
func (app *App) DB() dbm.DB {
	return app.db
}

// Close flushes and closes the engine database. Calls after Close fail with
// ErrClosed.
func (app *App) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return nil
	}
	app.closed = true
	return app.db.Close()
}

// newContext pins the call time and carries the branch, the event buffer
// and the logger.
func (app *App) newContext(branch *store.Branch, em *events.Manager) context.Context {
	ctx := store.ContextWithBranch(context.Background(), branch)
	ctx = events.ContextWithManager(ctx, em)
	ctx = context.WithValue(ctx, log.ContextKey, app.logger)
	return app.headerService.WithHeaderInfo(ctx, app.height)
}

// execute runs fn as one atomic call.
func (app *App) execute(call string, fn func(ctx context.Context) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return apperrors.ErrClosed
	}

	app.height++
	branch := app.store.Branch()
	em := events.NewManager()
	ctx := app.newContext(branch, em)

	if err := fn(ctx); err != nil {
		branch.Discard()
		app.logger.Info(callRejectedMsg, "call", call, "err", err)
		return err
	}

	if app.cfg.CheckInvariants {
		if err := app.BurnMintKeeper.AssertInvariants(ctx); err != nil {
			branch.Discard()
			app.logger.Error("invariant broken", "call", call, "err", err)
			return err
		}
	}

	if err := branch.Write(); err != nil {
		return err
	}
	writes := branch.Written()

	evts := em.Events()
	app.logger.Debug("call committed", "call", call, "height", app.height, "writes", writes, "events", len(evts))
	if app.eventHandler != nil {
		app.eventHandler(call, evts)
	}
	return nil
}

// query runs fn against a branch that is always discarded.
func query[T any](app *App, fn func(ctx context.Context) (T, error)) (T, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	var zero T
	if app.closed {
		return zero, apperrors.ErrClosed
	}

	branch := app.store.Branch()
	defer branch.Discard()
	return fn(app.newContext(branch, events.NewManager()))
}

// executeWithResult runs fn as one atomic call and returns its result.
func executeWithResult[T any](app *App, call string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := app.execute(call, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	return result, err
}

// BlockedAccounts returns the accounts whose tokens only the engine itself
// may move or approve.
func (app *App) BlockedAccounts() map[string]bool {
	return map[string]bool{
		burnminttypes.ModuleAccount: true,
	}
}

func (app *App) checkNotBlocked(account string) error {
	if app.BlockedAccounts()[account] {
		return errorsmod.Wrapf(apperrors.ErrBlockedAccount, "%s is held by the engine", account)
	}
	return nil
}

func (app *App) tokenKeeper(token Token) (*tokenkeeper.Keeper, error) {
	switch token {
	case PrimaryToken:
		return app.PrimaryKeeper, nil
	case SecondaryToken:
		return app.SecondaryKeeper, nil
	case OutputToken:
		return app.OutputKeeper, nil
	default:
		return nil, errorsmod.Wrapf(apperrors.ErrUnknownToken, "%q", token)
	}
}

// zeroIfNil keeps failed calls from leaking nil amounts.
func zeroIfNil(v math.Int) math.Int {
	if v.IsNil() {
		return math.ZeroInt()
	}
	return v
}
