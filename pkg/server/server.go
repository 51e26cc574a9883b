// Package server exposes the controller over HTTP: the single page, a JSON
// endpoint per user event and a server-sent event stream of view models.
package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/nguyenvanduocit/tradutor/pkg/controller"
	"github.com/nguyenvanduocit/tradutor/pkg/session"
	"github.com/nguyenvanduocit/tradutor/pkg/view"
)

const keepAliveInterval = 15 * time.Second

type InputRequest struct {
	Text string `json:"text"`
}

type APIKeyRequest struct {
	Key string `json:"key"`
}

type TabRequest struct {
	Index int `json:"index"`
}

type LanguagesRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type FontSizeRequest struct {
	Size int `json:"size"`
}

type FileRequest struct {
	Name string `json:"name"`
}

// New builds the fiber application serving ctrl.
func New(ctrl *controller.Controller) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/html; charset=utf-8")
		return view.RenderPage(c, view.NewModel(ctrl.Store().State()))
	})

	api := app.Group("/api")

	api.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(view.NewModel(ctrl.Store().State()))
	})

	api.Get("/events", func(c *fiber.Ctx) error {
		return streamEvents(c, ctrl.Store())
	})

	api.Post("/input", func(c *fiber.Ctx) error {
		var req InputRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		return reply(c, ctrl.OnInputChanged(req.Text))
	})

	api.Post("/send", func(c *fiber.Ctx) error {
		return reply(c, ctrl.OnSend())
	})

	api.Post("/api-key", func(c *fiber.Ctx) error {
		var req APIKeyRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		return reply(c, ctrl.OnSaveAPIKey(req.Key))
	})

	api.Post("/tab", func(c *fiber.Ctx) error {
		var req TabRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		st, err := ctrl.OnTabChanged(req.Index)
		if err != nil {
			return badRequest(c, err)
		}
		return reply(c, st)
	})

	api.Post("/languages", func(c *fiber.Ctx) error {
		var req LanguagesRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		st, err := ctrl.OnLanguagesChanged(req.Source, req.Target)
		if err != nil {
			return badRequest(c, err)
		}
		return reply(c, st)
	})

	api.Post("/theme", func(c *fiber.Ctx) error {
		return reply(c, ctrl.OnThemeToggle())
	})

	api.Post("/font-size", func(c *fiber.Ctx) error {
		var req FontSizeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		return reply(c, ctrl.OnFontSizeChanged(req.Size))
	})

	api.Post("/file", func(c *fiber.Ctx) error {
		var req FileRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		st, err := ctrl.OnFilePicked(req.Name)
		if err != nil {
			return badRequest(c, err)
		}
		return reply(c, st)
	})

	api.Post("/voice", func(c *fiber.Ctx) error {
		return reply(c, ctrl.OnVoiceStart())
	})

	return app
}

func reply(c *fiber.Ctx, st session.State) error {
	return c.JSON(view.NewModel(st))
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// streamEvents writes a view model every time the store changes until the
// client goes away.
func streamEvents(c *fiber.Ctx, store *session.Store) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	updates, unsubscribe := store.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case st, ok := <-updates:
				if !ok {
					return
				}
				data, err := json.Marshal(view.NewModel(st))
				if err != nil {
					slog.Error("encode event", "error", err)
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", data)
			case <-ticker.C:
				fmt.Fprint(w, ": keep-alive\n\n")
			}

			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}
