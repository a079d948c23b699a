package deso

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type HTTPSurfaceOptions struct {
	// HostPort the callback listener binds to.
	HostPort    string
	PostTimeout time.Duration
}

func (o *HTTPSurfaceOptions) setDefaults() {
	if o.HostPort == "" {
		o.HostPort = defaultConfig.CallbackHostPort
	}

	if o.PostTimeout == 0 {
		o.PostTimeout = 30 * time.Second
	}
}

// HTTPSurface reaches the custody context over HTTP. Outbound messages are
// posted to <origin>/embed/message; the custody context answers on a local
// callback listener at POST /message.
type HTTPSurface struct {
	options  *HTTPSurfaceOptions
	mu       sync.Mutex
	app      *fiber.App
	listener net.Listener
	log      *zerolog.Logger
}

var _ Surface = &HTTPSurface{}

func NewHTTPSurface(options *HTTPSurfaceOptions) *HTTPSurface {
	if options == nil {
		options = &HTTPSurfaceOptions{}
	}
	options.setDefaults()

	return &HTTPSurface{
		options: options,
		log:     Log(),
	}
}

// Open starts the callback listener and loads the custody embed page,
// telling it where to answer. An already open surface is torn down first.
func (s *HTTPSurface) Open(ctx context.Context, origin string, receive Receiver) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.app != nil {
		s.shutdown()
	}

	listener, err := net.Listen("tcp", s.options.HostPort)
	if err != nil {
		err = errors.Wrapf(err, "unable to listen on %s", s.options.HostPort)
		return
	}

	app := s.newApp(receive)
	go func() {
		if serveErr := app.Listener(listener); serveErr != nil {
			s.log.Error().Msgf("custody callback listener stopped: %v", serveErr)
		}
	}()

	s.app = app
	s.listener = listener

	callback := fmt.Sprintf("http://%s/message", listener.Addr().String())
	s.log.Info().Msgf("custody callback listening on %s", callback)

	embed := fmt.Sprintf("%s/embed?v=2&callback=%s", strings.TrimSuffix(origin, "/"), url.QueryEscape(callback))
	if err = s.send(ctx, fiber.MethodGet, embed, nil); err != nil {
		s.shutdown()
		err = errors.Wrap(err, "unable to load custody embed")
	}

	return
}

func (s *HTTPSurface) newApp(receive Receiver) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Post("/message", func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.SendStatus(fiber.StatusForbidden)
		}
		receive(origin, bytes.Clone(c.Body()))
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func (s *HTTPSurface) Post(ctx context.Context, message any, targetOrigin string) (err error) {
	raw, err := json.Marshal(message)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	return s.send(ctx, fiber.MethodPost, strings.TrimSuffix(targetOrigin, "/")+"/embed/message", raw)
}

func (s *HTTPSurface) send(ctx context.Context, method, target string, body []byte) (err error) {
	if err = ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	timeout := s.options.PostTimeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}

	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(target)
	if body != nil {
		agent.ContentType(fiber.MIMEApplicationJSON)
		agent.Body(body)
	}
	agent.Timeout(timeout)

	if err = agent.Parse(); err != nil {
		return errors.WithStack(err)
	}

	code, rsp, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Wrapf(errs[0], "%s %s", method, target)
	}
	if code < 200 || code > 299 {
		return errors.Errorf("%s %s responded %d: %s", method, target, code, string(rsp))
	}
	return
}

func (s *HTTPSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shutdown()
}

func (s *HTTPSurface) shutdown() (err error) {
	if s.app == nil {
		return
	}
	err = errors.WithStack(s.app.Shutdown())
	s.app = nil
	s.listener = nil
	return
}
