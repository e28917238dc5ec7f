package client

import (
	"context"
)

// App wires the full client stack for one remote API: durable token store,
// credential-injecting HTTP client, auth bindings, session manager, route
// guard, and the data services the pages consume.
type App struct {
	Tokens    *BunTokenStore
	Client    *Client
	Auth      *AuthService
	Sessions  *SessionManager
	Guard     *Guard
	Reports   *ReportService
	Events    *EventService
	Districts *DistrictService
	Account   *AccountService
	Operator  *OperatorService
	Files     *FileService
}

// AppOption customizes App construction.
type AppOption func(*appOptions)

type appOptions struct {
	logger Logger
	sink   SessionSink
}

// WithAppLogger sets the logger propagated to every component.
func WithAppLogger(logger Logger) AppOption {
	return func(o *appOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAppSessionSink forwards session events to the given sink.
func WithAppSessionSink(sink SessionSink) AppOption {
	return func(o *appOptions) {
		o.sink = sink
	}
}

// NewApp assembles the client stack from configuration. Call Bootstrap on
// the session manager before serving navigation, and Close when done.
func NewApp(ctx context.Context, cfg Config, opts ...AppOption) (*App, error) {
	options := &appOptions{logger: defLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	tokens, err := NewBunTokenStore(ctx, cfg.GetTokenDBPath())
	if err != nil {
		return nil, err
	}

	httpClient, err := NewClient(
		cfg.GetBaseURL(),
		tokens,
		WithTimeout(cfg.GetTimeout()),
		WithClientLogger(options.logger),
	)
	if err != nil {
		_ = tokens.Close()
		return nil, err
	}

	auth := NewAuthService(httpClient).
		WithLogger(options.logger).
		WithPhoneRegion(cfg.GetPhoneRegion())

	sessions := NewSessionManager(
		auth,
		tokens,
		WithSessionLogger(options.logger),
		WithSessionSink(options.sink),
	)

	return &App{
		Tokens:    tokens,
		Client:    httpClient,
		Auth:      auth,
		Sessions:  sessions,
		Guard:     NewGuard(DefaultRoutes()),
		Reports:   NewReportService(httpClient).WithLogger(options.logger),
		Events:    NewEventService(httpClient).WithLogger(options.logger),
		Districts: NewDistrictService(httpClient).WithLogger(options.logger),
		Account:   NewAccountService(httpClient),
		Operator:  NewOperatorService(httpClient).WithLogger(options.logger),
		Files:     NewFileService(httpClient),
	}, nil
}

// Close releases the token store's database handle.
func (a *App) Close() error {
	return a.Tokens.Close()
}
