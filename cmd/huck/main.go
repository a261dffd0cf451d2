package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	huckleberry "github.com/pearigee/huckleberry"
)

const (
	appName         = "huck"
	configFile      = ".huckleberry.yaml"
	defaultHistory  = ".huckleberry_history"
	defaultPrompt   = "huck> "
	defaultContinue = "....> "
)

var banner = fmt.Sprintf("Huckleberry %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", huckleberry.Version)

// config is the optional ~/.huckleberry.yaml file. Every field has a
// default; a missing file is not an error, a malformed one is a warning.
type config struct {
	Prompt      string `yaml:"prompt"`
	ContPrompt  string `yaml:"continuation_prompt"`
	HistoryFile string `yaml:"history_file"`
	Color       *bool  `yaml:"color"`
}

func loadConfig() config {
	cfg := config{}
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg.withDefaults()
	}
	data, err := os.ReadFile(filepath.Join(home, configFile))
	if err != nil {
		return cfg.withDefaults()
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: ignoring malformed %s: %v\n", appName, configFile, err)
		cfg = config{}
	}
	return cfg.withDefaults()
}

func (c config) withDefaults() config {
	if c.Prompt == "" {
		c.Prompt = defaultPrompt
	}
	if c.ContPrompt == "" {
		c.ContPrompt = defaultContinue
	}
	if c.HistoryFile == "" {
		home, _ := os.UserHomeDir()
		c.HistoryFile = filepath.Join(home, defaultHistory)
	}
	return c
}

// colorEnabled honors an explicit config setting, otherwise colors only
// when stderr is a terminal.
func colorEnabled(cfg config) bool {
	if cfg.Color != nil {
		return *cfg.Color
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var useColor bool

func red(s string) string {
	if !useColor {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := loadConfig()
	useColor = colorEnabled(cfg)

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(cfg))
	case "version":
		fmt.Println(huckleberry.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Huckleberry %s (built %s)

Usage:
  %s run <file.huck>    Run a script.
  %s repl               Start the REPL.
  %s version            Print the compiled version

`, huckleberry.Version, huckleberry.BuildDate, appName, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.huck>\n", appName)
		return 2
	}

	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := huckleberry.NewRuntime()
	if _, err := ip.EvalPersistentSource(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, red(huckleberry.WrapErrorWithName(err, file, string(src)).Error()))
		return 1
	}
	return 0
}

func cmdRepl(cfg config) int {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(cfg.HistoryFile); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(cfg.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := huckleberry.NewRuntime()

	for {
		code, ok := readByParseProbe(ln, cfg.Prompt, cfg.ContPrompt)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if strings.ToLower(trimmed) == ":quit" {
				return 0
			}
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		v, err := ip.EvalPersistentSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(huckleberry.WrapErrorWithName(err, "<repl>", code).Error()))
			continue
		}
		fmt.Println(huckleberry.FormatValue(v))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe keeps prompting while the accumulated input still parses
// as incomplete, so brackets and strings can span lines.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C aborts the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := huckleberry.ParseSource(src); perr != nil && huckleberry.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
