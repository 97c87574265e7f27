package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/config"
	"github.com/mmynk/friendsplit/internal/view"
	"github.com/mmynk/friendsplit/pkg/logging"
)

// sessionFlags are shared by every command that starts a session.
type sessionFlags struct {
	envFile string
	style   string
	width   int
}

func (f *sessionFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.envFile, "env-file", ".env", "Optional dotenv file loaded before the environment")
	fs.StringVar(&f.style, "style", "auto", "glamour style: auto, dark, light, notty")
	fs.IntVar(&f.width, "width", 80, "Word wrap width")
}

// setup loads the config and builds the splitter and the markdown renderer.
func (f *sessionFlags) setup(log io.Writer) (*billsplit.Splitter, *glamour.TermRenderer, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return nil, nil, err
	}
	logging.SetupWriter(log, cfg.SlogLevel())

	styleOpt := glamour.WithAutoStyle()
	if f.style != "auto" {
		styleOpt = glamour.WithStandardStyle(f.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(f.width))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return billsplit.New(cfg.SplitterOptions()...), r, nil
}

// render writes the view of s through the glamour renderer.
func render(w io.Writer, r *glamour.TermRenderer, s billsplit.State, currency string) error {
	out, err := r.Render(view.Markdown(view.Build(s, currency)))
	if err != nil {
		return fmt.Errorf("failed to render view: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
