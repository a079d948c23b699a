package deso

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

type Method string

const (
	MethodSign    Method = "sign"
	MethodEncrypt Method = "encrypt"
	MethodDecrypt Method = "decrypt"
	MethodJWT     Method = "jwt"
	MethodDerive  Method = "derive"
	MethodLogin   Method = "login"
	MethodLogout  Method = "logout"

	methodInitialize = "initialize"
	serviceIdentity  = "identity"
	deniedError      = "denied"
)

type BridgeState string

const (
	StateIdle                        BridgeState = "idle"
	StateAwaitingCustodyContextReady BridgeState = "awaiting_custody_context_ready"
	StateAwaitingSignature           BridgeState = "awaiting_signature"
	StateSigned                      BridgeState = "signed"
	StateRejected                    BridgeState = "rejected"
	StateTimedOut                    BridgeState = "timed_out"
)

type OutboundMessage struct {
	ID      string `json:"id"`
	Service string `json:"service"`
	Method  Method `json:"method,omitempty"`
	Payload any    `json:"payload"`
}

type SessionEvent struct {
	Session *Session
	Method  Method
}

type BridgeOptions struct {
	IdentityURI string
	Network     Network
	Host        HostMode
	// ApprovalTimeout bounds every wait on the custody context. Zero
	// leaves the caller's context as the only bound.
	ApprovalTimeout time.Duration
	Surface         Surface
	Popups          PopupOpener
	SessionStore    SessionStore
}

func (o *BridgeOptions) setDefaults() {
	if o.Network == "" {
		o.Network = NetworkMainNet
	}

	if o.IdentityURI == "" {
		if params, err := o.Network.Params(); err == nil {
			o.IdentityURI = params.IdentityURI
		}
	}

	if o.Host == "" {
		o.Host = HostBrowser
	}

	if o.Surface == nil {
		o.Surface = NewHTTPSurface(nil)
	}

	if o.Popups == nil {
		o.Popups = BrowserPopupOpener
	}

	if o.SessionStore == nil {
		o.SessionStore = NewInMemorySessionStore()
	}
}

// Bridge exchanges correlated requests with the custody context and owns
// the session record.
type Bridge struct {
	options *BridgeOptions
	prompts prompts
	broker  *broker
	events  PubSubQueue[SessionEvent]
	log     *zerolog.Logger

	mu         sync.Mutex
	ready      chan struct{}
	readyDone  bool
	// closed is closed when the surface ready belongs to is torn down.
	closed     chan struct{}
	session    *Session
	lastResult BridgeState
}

func NewBridge(options *BridgeOptions) (bridge *Bridge, err error) {
	if options == nil {
		options = &BridgeOptions{}
	}
	options.setDefaults()

	if err = options.Network.Validate(); err != nil {
		return
	}

	session, err := LoadSession(options.SessionStore)
	if err != nil {
		return
	}

	bridge = &Bridge{
		options:    options,
		prompts:    newPrompts(options.IdentityURI, options.Network),
		broker:     newBroker(),
		events:     NewQueue[SessionEvent](),
		log:        Log(),
		session:    session,
		lastResult: StateIdle,
	}

	return
}

func (b *Bridge) Origin() string {
	return b.prompts.uri
}

func (b *Bridge) checkHost() error {
	if b.options.Host == HostServer {
		return errors.WithStack(ErrUnsupportedInHostMode)
	}
	return nil
}

// Initialize opens the custody surface and waits for its initialize
// announcement. Concurrent and repeated calls share one surface.
func (b *Bridge) Initialize(ctx context.Context) (err error) {
	if err = b.checkHost(); err != nil {
		return
	}

	b.mu.Lock()
	if b.ready == nil {
		b.ready = make(chan struct{})
		b.closed = make(chan struct{})
		b.readyDone = false
		if err = b.options.Surface.Open(ctx, b.Origin(), b.Receive); err != nil {
			b.ready = nil
			b.closed = nil
			b.mu.Unlock()
			return
		}
		b.log.Info().Msgf("waiting for custody context at %s", b.Origin())
	}
	ready, closed := b.ready, b.closed
	b.mu.Unlock()

	var expired <-chan time.Time
	if b.options.ApprovalTimeout > 0 {
		timer := time.NewTimer(b.options.ApprovalTimeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-ready:
		return nil
	case <-closed:
		return errors.Wrap(ErrSurfaceClosed, "custody surface torn down before it announced itself")
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-expired:
		return errors.Wrap(ErrSigningTimedOut, "custody context never announced itself")
	}
}

// Receive is the single entry point for inbound custody messages. Messages
// from any origin other than the custody origin are dropped unread.
func (b *Bridge) Receive(origin string, raw []byte) {
	if origin != b.Origin() {
		b.log.Warn().Msgf("dropped custody message from unexpected origin '%s'", origin)
		return
	}

	msg := gjson.ParseBytes(raw)
	id := msg.Get("id").String()

	if msg.Get("method").String() == methodInitialize {
		b.announceReady(id)
		return
	}

	if id == "" {
		b.log.Debug().Msg("dropped custody message without id")
		return
	}

	r := response{}
	if e := msg.Get("error"); e.Exists() && e.Type != gjson.Null {
		if e.String() == deniedError {
			r.err = errors.Wrapf(ErrSigningDenied, "request %s", id)
		} else {
			r.err = errors.Wrapf(ErrSigningFailed, "request %s: %s", id, e.String())
		}
	} else {
		r.payload = json.RawMessage(msg.Get("payload").Raw)
	}

	if !b.broker.settle(origin, id, r) {
		b.log.Debug().Msgf("no pending request for custody message %s", id)
	}
}

func (b *Bridge) announceReady(id string) {
	reply := OutboundMessage{ID: id, Service: serviceIdentity, Payload: struct{}{}}
	if err := b.options.Surface.Post(context.Background(), reply, b.Origin()); err != nil {
		b.log.Error().Msgf("unable to answer custody initialize: %v", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ready != nil && !b.readyDone {
		close(b.ready)
		b.readyDone = true
		b.log.Info().Msg("custody context ready")
	}
}

// Reinitialize replaces the custody surface with a fresh one. Requests
// waiting on the old surface fail with ErrSurfaceClosed.
func (b *Bridge) Reinitialize(ctx context.Context) (err error) {
	if err = b.checkHost(); err != nil {
		return
	}
	if err = b.teardown(); err != nil {
		b.log.Warn().Msgf("closing previous custody surface: %v", err)
	}
	return b.Initialize(ctx)
}

// Close tears down the custody surface for good.
func (b *Bridge) Close() (err error) {
	err = b.teardown()
	b.events.Close()
	return
}

// teardown releases everything waiting on the current surface: readiness
// waiters and pending requests both fail with ErrSurfaceClosed.
func (b *Bridge) teardown() error {
	b.mu.Lock()
	if b.closed != nil {
		close(b.closed)
	}
	b.ready = nil
	b.closed = nil
	b.readyDone = false
	b.broker.failAll(errors.WithStack(ErrSurfaceClosed))
	b.mu.Unlock()

	return b.options.Surface.Close()
}

func (b *Bridge) State() BridgeState {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.ready == nil:
		return StateIdle
	case !b.readyDone:
		return StateAwaitingCustodyContextReady
	case b.broker.len() > 0:
		return StateAwaitingSignature
	}
	return b.lastResult
}

func (b *Bridge) Session() *Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil
	}
	session := *b.session
	return &session
}

func (b *Bridge) OnSessionChange(callback func(event SessionEvent)) (cleanup func()) {
	return b.events.On(callback)
}

// request sends one correlated message. With a session it goes to the
// hidden surface; otherwise, or for methods that always need the user,
// popupURL is opened instead.
func (b *Bridge) request(ctx context.Context, method Method, payload any, silent bool, popupURL func(id string) string) (out json.RawMessage, err error) {
	if err = b.Initialize(ctx); err != nil {
		return
	}

	pending, err := b.openPending(method)
	if err != nil {
		return
	}
	id := pending.id

	var popup Popup
	if silent {
		msg := OutboundMessage{ID: id, Service: serviceIdentity, Method: method, Payload: payload}
		if err = b.options.Surface.Post(ctx, msg, b.Origin()); err != nil {
			b.broker.take(id)
			err = errors.Wrapf(err, "unable to send %s request", method)
			return
		}
	} else {
		if popup, err = b.options.Popups.OpenPopup(popupURL(id)); err != nil {
			b.broker.take(id)
			err = errors.Wrapf(err, "unable to open %s prompt", method)
			return
		}
	}

	b.log.Debug().Msgf("sent %s request %s (silent: %t)", method, id, silent)

	out, err = b.broker.wait(ctx, pending, b.options.ApprovalTimeout)

	if popup != nil {
		if closeErr := popup.Close(); closeErr != nil {
			b.log.Debug().Msgf("closing %s prompt: %v", method, closeErr)
		}
	}

	b.recordResult(err)
	return
}

// openPending registers a request against the live surface. Holding mu
// orders it against teardown, so a surface torn down since Initialize
// returned fails the request at once.
func (b *Bridge) openPending(method Method) (pending *pendingRequest, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready == nil || !b.readyDone {
		err = errors.Wrapf(ErrSurfaceClosed, "%s request", method)
		return
	}
	pending = b.broker.open(uuid.NewString(), method, b.Origin())
	return
}

func (b *Bridge) recordResult(err error) {
	result := StateSigned
	switch {
	case errors.Is(err, ErrSigningTimedOut), errors.Is(err, context.DeadlineExceeded):
		result = StateTimedOut
	case err != nil:
		result = StateRejected
	}

	b.mu.Lock()
	b.lastResult = result
	b.mu.Unlock()
}

// Sign asks the custody context to sign an unsigned transaction and
// returns the signed transaction hex.
func (b *Bridge) Sign(ctx context.Context, txHex string) (signedHex string, err error) {
	if err = b.checkHost(); err != nil {
		return
	}

	session := b.Session()
	payload := map[string]string{"transactionHex": txHex}
	if session != nil {
		payload["publicKey"] = session.PublicKey
		payload["sessionToken"] = session.SessionToken
	}

	out, err := b.request(ctx, MethodSign, payload, session != nil, func(id string) string {
		return b.prompts.approve(txHex, id)
	})
	if err != nil {
		return
	}

	signedHex = gjson.GetBytes(out, "signedTransactionHex").String()
	if signedHex == "" {
		err = errors.Wrap(ErrSigningFailed, "custody response has no signedTransactionHex")
	}
	return
}

// Decrypt passes ciphertext to the custody context. Without a session the
// user is asked to log in first.
func (b *Bridge) Decrypt(ctx context.Context, payload any) (out json.RawMessage, err error) {
	session, err := b.sessionOrLogin(ctx)
	if err != nil {
		return
	}
	return b.request(ctx, MethodDecrypt, map[string]any{
		"publicKey":         session.PublicKey,
		"sessionToken":      session.SessionToken,
		"encryptedMessages": payload,
	}, true, nil)
}

type EncryptRequest struct {
	RecipientPublicKeyBase58Check string `json:"recipientPublicKey"`
	Message                       string `json:"message"`
}

// Encrypt has the custody context encrypt a message for a recipient with
// the session user's key and returns the ciphertext hex.
func (b *Bridge) Encrypt(ctx context.Context, req *EncryptRequest) (encryptedHex string, err error) {
	if req == nil || req.RecipientPublicKeyBase58Check == "" {
		err = missingField("RecipientPublicKeyBase58Check")
		return
	}
	session, err := b.sessionOrLogin(ctx)
	if err != nil {
		return
	}
	out, err := b.request(ctx, MethodEncrypt, map[string]string{
		"publicKey":          session.PublicKey,
		"sessionToken":       session.SessionToken,
		"recipientPublicKey": req.RecipientPublicKeyBase58Check,
		"message":            req.Message,
	}, true, nil)
	if err != nil {
		return
	}
	encryptedHex = gjson.GetBytes(out, "encryptedMessage").String()
	if encryptedHex == "" {
		err = errors.Wrap(ErrSigningFailed, "custody response has no encryptedMessage")
	}
	return
}

// JWT returns a token proving the session user's identity. Without a
// session the user is asked to log in first.
func (b *Bridge) JWT(ctx context.Context) (token string, err error) {
	session, err := b.sessionOrLogin(ctx)
	if err != nil {
		return
	}
	out, err := b.request(ctx, MethodJWT, map[string]string{
		"publicKey":    session.PublicKey,
		"sessionToken": session.SessionToken,
	}, true, nil)
	if err != nil {
		return
	}
	token = gjson.GetBytes(out, "jwt").String()
	if token == "" {
		err = errors.Wrap(ErrSigningFailed, "custody response has no jwt")
	}
	return
}

// Derive prompts the user to authorize a derived key and returns what the
// custody context reports about it.
func (b *Bridge) Derive(ctx context.Context, params DeriveParams) (out json.RawMessage, err error) {
	if err = b.checkHost(); err != nil {
		return
	}
	if params.PublicKey == "" {
		if session := b.Session(); session != nil {
			params.PublicKey = session.PublicKey
		}
	}
	return b.request(ctx, MethodDerive, nil, false, func(id string) string {
		return b.prompts.derive(params, id)
	})
}

// Login prompts the user and stores the resulting session.
func (b *Bridge) Login(ctx context.Context, accessLevel int) (session *Session, err error) {
	if err = b.checkHost(); err != nil {
		return
	}
	if accessLevel == 0 {
		accessLevel = DefaultAccessLevel
	}

	out, err := b.request(ctx, MethodLogin, nil, false, func(id string) string {
		return b.prompts.login(accessLevel, id)
	})
	if err != nil {
		return
	}

	session = &Session{
		PublicKey:    gjson.GetBytes(out, "publicKeyAdded").String(),
		SessionToken: gjson.GetBytes(out, "sessionToken").String(),
		Network:      b.options.Network,
	}
	if session.PublicKey == "" {
		session = nil
		err = errors.Wrap(ErrSigningFailed, "login response has no publicKeyAdded")
		return
	}
	if _, _, err = DecodePublicKey(session.PublicKey); err != nil {
		session = nil
		err = errors.Wrap(ErrSigningFailed, err.Error())
		return
	}

	if err = SaveSession(b.options.SessionStore, session, b.Origin()); err != nil {
		session = nil
		return
	}

	b.setSession(session, MethodLogin)
	b.log.Info().Msgf("logged in as %s", session.PublicKey)

	return
}

// Logout prompts the user to log out and clears the session.
func (b *Bridge) Logout(ctx context.Context) (err error) {
	session, err := b.requireSession()
	if err != nil {
		return
	}

	_, err = b.request(ctx, MethodLogout, nil, false, func(id string) string {
		return b.prompts.logout(session.PublicKey, id)
	})
	if err != nil {
		return
	}

	if err = ClearSession(b.options.SessionStore); err != nil {
		return
	}

	b.setSession(nil, MethodLogout)
	b.log.Info().Msgf("logged out %s", session.PublicKey)

	return
}

func (b *Bridge) requireSession() (session *Session, err error) {
	if err = b.checkHost(); err != nil {
		return
	}
	if session = b.Session(); session == nil {
		err = errors.WithStack(ErrNotLoggedIn)
	}
	return
}

func (b *Bridge) sessionOrLogin(ctx context.Context) (session *Session, err error) {
	if err = b.checkHost(); err != nil {
		return
	}
	if session = b.Session(); session != nil {
		return
	}
	return b.Login(ctx, 0)
}

func (b *Bridge) setSession(session *Session, method Method) {
	b.mu.Lock()
	b.session = session
	b.mu.Unlock()

	var event SessionEvent
	event.Method = method
	if session != nil {
		copied := *session
		event.Session = &copied
	}
	b.events.Broadcast(event)
}
