// Package mcp exposes the spyglass desktop primitives as MCP tools over
// stdio, so a planning model can inspect and rearrange the screen.
package mcp

import (
	"context"
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/halvard/spyglass/internal/config"
	"github.com/halvard/spyglass/internal/detect"
	"github.com/halvard/spyglass/internal/geometry"
	"github.com/halvard/spyglass/internal/logging"
	"github.com/halvard/spyglass/internal/overlay"
	"github.com/halvard/spyglass/internal/resolve"
)

const (
	ServerName    = "spyglass"
	ServerVersion = "0.1.0"
)

// Desktop is the windowing backend the server drives. *x11.Connection
// satisfies it; tests substitute a fake.
type Desktop interface {
	Screens() ([]resolve.ScreenDescriptor, error)
	Snapshot() (resolve.Snapshot, error)
	ApplyFrame(id resolve.WindowID, frame geometry.Rect) error
	Activate(id resolve.WindowID) error
}

// Annotator renders annotation overlays. *overlay.Renderer satisfies it. A
// nil annotator disables show_overlay with a runtime error instead of a
// missing tool, so planners get a diagnosable failure.
type Annotator interface {
	Render(annotations []overlay.Annotation, panel overlay.Spec, viewSize geometry.Size) error
	HideAll()
}

// Server is the MCP server for spyglass desktop control.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	desktop   Desktop
	annotator Annotator
	registry  *detect.Registry
	logger    *logging.Logger
}

// NewServer creates an MCP server over the given desktop backend.
func NewServer(cfg *config.Config, desktop Desktop, annotator Annotator) *Server {
	logCfg := cfg.GetLoggingConfig()
	logger, err := logging.New(logging.Config{
		Enabled:   logCfg.Enabled,
		Level:     logging.ParseLevel(logCfg.Level),
		FilePath:  logCfg.File,
		MaxSizeMB: logCfg.MaxSizeMB,
		MaxFiles:  logCfg.MaxFiles,
	})
	if err != nil {
		log.Printf("Warning: failed to initialize action logger: %v", err)
		logger = nil
	}

	extra := make([]detect.Convention, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		extra = append(extra, detect.Convention{Match: m.Match, GridBase: m.GridBase})
	}

	s := &Server{
		config:    cfg,
		desktop:   desktop,
		annotator: annotator,
		registry:  detect.NewRegistry(extra...),
		logger:    logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases server resources.
func (s *Server) Close() error {
	if s == nil || s.logger == nil {
		return nil
	}
	return s.logger.Close()
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the top-level windows on the desktop with their application, title, pixel bounds, and minimized/active state. Optionally filter to one application.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_screens",
		Description: "List the connected screens with their index, pixel frame, visible frame (excluding panels and docks), scale factor, and which one is primary.",
	}, s.handleListScreens)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise and focus a window. Target it by window_id, app and/or title, or frontmost. Returns the resolved window so ambiguous targets are visible.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move and/or resize a window. Target it like focus_window. Give either a preset (maximize, center, left-half, right-half, top-half, bottom-half) or explicit x/y/width/height in pixels; omitted fields keep their current value. An optional screen index or screen_relation (next, previous, same, primary) picks the destination screen; when moving screens without explicit coordinates the window keeps its relative position.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "convert_box",
		Description: "Convert a detection model's raw [x1,y1,x2,y2] bounding box into pixel coordinates of the screenshot it was detected on, and return the center point for clicking. Models with a normalized-grid convention (e.g. the -vl family's 0-1000 grid) are rescaled; pixel-space models pass through unchanged.",
	}, s.handleConvertBox)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "show_overlay",
		Description: "Highlight element boxes on screen with labeled outlines, optionally with a keycap or breadcrumb panel in the corner, for a fixed duration. Boxes from a grid-convention model are converted to pixels first when model and image dimensions are given.",
	}, s.handleShowOverlay)
}
