// Command lolcat concatenates files (or standard input) to standard
// output, painting the stream in a continuously shifting rainbow.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sparques/lolcat"
)

const version = "1.0.0"

const helpText = `Usage: lolcat [OPTION]... [FILE]...

Concatenate FILE(s), or standard input, to standard output.
With no FILE, or when FILE is -, read standard input.

  -p, --spread=<f>      Rainbow spread (default: 3.0)
  -F, --freq=<f>        Rainbow frequency (default: 0.1)
  -S, --seed=<i>        Rainbow seed, 0 = random (default: 0)
  -a, --animate         Enable psychedelics
  -d, --duration=<f>    Animation duration (default: 12)
  -s, --speed=<f>       Animation speed (default: 20.0)
  -i, --invert          Invert fg and bg
  -t, --truecolor       24-bit (truecolor)
  -f, --force           Force color even when stdout is not a tty
  -D, --debug           Print internal diagnostics
  -v, --version         Print version and exit
  -h, --help            Show this message

Examples:
  lolcat f - g      Output f's contents, then stdin, then g's contents.
  lolcat            Copy standard input to standard output.
  fortune | lolcat  Display a rainbow cookie.

Report bugs at <https://github.com/sparques/lolcat/issues>
`

func main() {
	ignoreSigpipe()
	os.Exit(run(os.Args[1:]))
}

// ignoreSigpipe keeps the runtime from dying on SIGPIPE when stdout is a
// pipe whose reader went away. The runtime only re-raises the signal for
// writes to fds 1 and 2; with it ignored, those writes return EPIPE and
// flow through pipeErr so the run can end cleanly with exit code 0.
func ignoreSigpipe() {
	signal.Ignore(syscall.SIGPIPE)
}

// options mirrors the flag surface before it is folded into a validated
// lolcat.Config.
type options struct {
	spread    float64
	freq      float64
	seed      uint64
	animate   bool
	duration  float64
	speed     float64
	invert    bool
	truecolor bool
	force     bool
	debug     bool
	version   bool
}

// config folds the parsed flags into a validated Config.
func (o *options) config() (lolcat.Config, error) {
	frames, err := durationFrames(o.duration)
	if err != nil {
		return lolcat.Config{}, err
	}
	cfg := lolcat.Config{
		Spread:    o.spread,
		Freq:      o.freq,
		Seed:      o.seed,
		Animate:   o.animate,
		Duration:  frames,
		Speed:     o.speed,
		Invert:    o.invert,
		TrueColor: o.truecolor,
		Force:     o.force,
		Debug:     o.debug,
	}
	return cfg, cfg.Validate()
}

// durationFrames converts the float --duration flag to a whole frame
// count, rounding and never going below one frame.
func durationFrames(v float64) (int, error) {
	if v < 0.1 {
		return 0, errors.New("--duration must be >= 0.1")
	}
	frames := int(v + 0.5)
	if frames < 1 {
		frames = 1
	}
	return frames, nil
}

func newRootCmd(opts *options, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lolcat [OPTION]... [FILE]...",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, files []string) error {
			if opts.version {
				fmt.Printf("lolcat %s\n", version)
				return nil
			}
			if !opts.debug && os.Getenv("LOLCAT_DEBUG") != "" {
				opts.debug = true
			}
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			lolcat.SetDebug(cfg.Debug)
			*code = executeFn(cfg, files)
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetHelpFunc(func(*cobra.Command, []string) {
		printHelp()
	})

	f := cmd.Flags()
	f.Float64VarP(&opts.spread, "spread", "p", 3.0, "rainbow spread")
	f.Float64VarP(&opts.freq, "freq", "F", 0.1, "rainbow frequency")
	f.Uint64VarP(&opts.seed, "seed", "S", 0, "rainbow seed, 0 = random")
	f.BoolVarP(&opts.animate, "animate", "a", false, "enable psychedelics")
	f.Float64VarP(&opts.duration, "duration", "d", 12, "animation duration")
	f.Float64VarP(&opts.speed, "speed", "s", 20.0, "animation speed")
	f.BoolVarP(&opts.invert, "invert", "i", false, "invert fg and bg")
	f.BoolVarP(&opts.truecolor, "truecolor", "t", false, "24-bit (truecolor)")
	f.BoolVarP(&opts.force, "force", "f", false, "force color even when stdout is not a tty")
	f.BoolVarP(&opts.debug, "debug", "D", false, "print internal diagnostics")
	f.BoolVarP(&opts.version, "version", "v", false, "print version and exit")
	return cmd
}

func run(args []string) int {
	opts := &options{}
	code := 0
	cmd := newRootCmd(opts, &code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lolcat: %v\n", err)
		return 1
	}
	return code
}

// executeFn is swapped out by tests that only exercise flag parsing.
var executeFn = execute

// execute renders every source in order through one Printer, so the
// rainbow (and any open escape sequence state) flows across them.
func execute(cfg lolcat.Config, files []string) int {
	stdout := os.Stdout
	useColor := cfg.Force || isatty.IsTerminal(stdout.Fd()) || isatty.IsCygwinTerminal(stdout.Fd())
	var out io.Writer = stdout
	mode := lolcat.Ansi256
	if useColor {
		out = colorable.NewColorable(stdout)
		mode = cfg.Mode(os.Getenv("COLORTERM"))
	}
	p := lolcat.NewPrinter(cfg, useColor, mode, cfg.InitialOffset(), out)

	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, path := range files {
		lolcat.Log.Debug("processing source", "path", path)
		var err error
		if path == "-" {
			err = p.Render(os.Stdin)
		} else {
			err = renderFile(p, path)
		}
		switch {
		case err == nil:
		case errors.Is(err, lolcat.ErrBrokenPipe):
			// Downstream went away; the expected end of a pipeline.
			return 0
		case errors.Is(err, errReported):
			finalize(p)
			return 1
		default:
			finalize(p)
			fmt.Fprintf(os.Stderr, "lolcat: %v\n", err)
			return 1
		}
	}

	if err := p.Finalize(); err != nil {
		if errors.Is(err, lolcat.ErrBrokenPipe) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "lolcat: %v\n", err)
		return 1
	}
	return 0
}

// errReported marks a failure whose message already went to stderr.
var errReported = errors.New("reported")

func renderFile(p *lolcat.Printer, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(path, err))
		return errReported
	}
	defer fh.Close()
	if fi, serr := fh.Stat(); serr == nil && fi.IsDir() {
		fmt.Fprintln(os.Stderr, describeError(path, syscall.EISDIR))
		return errReported
	}
	return p.Render(fh)
}

// finalize is the best-effort cleanup on error paths; a cleanup failure
// never overrides the error that got us here.
func finalize(p *lolcat.Printer) {
	if err := p.Finalize(); err != nil && !errors.Is(err, lolcat.ErrBrokenPipe) {
		lolcat.Log.Warn("finalize failed", "err", err)
	}
}

// describeError keeps the traditional cat-style phrasing for the common
// open failures.
func describeError(path string, err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("lolcat: %s: No such file or directory", path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("lolcat: %s: Permission denied", path)
	case errors.Is(err, syscall.EISDIR):
		return fmt.Sprintf("lolcat: %s: Is a directory", path)
	case errors.Is(err, syscall.ENOTTY):
		return fmt.Sprintf("lolcat: %s: Inappropriate ioctl for device", path)
	case errors.Is(err, syscall.ENXIO):
		return fmt.Sprintf("lolcat: %s: Is not a regular file", path)
	}
	return fmt.Sprintf("lolcat: %s: %v", path, err)
}

// printHelp renders the usage text through the printer itself, forced
// into color with a wider, faster rainbow.
func printHelp() {
	cfg := lolcat.ConfigDefault
	cfg.Force = true
	cfg.Animate = false
	cfg.Spread = 8.0
	cfg.Freq = 0.3
	out := colorable.NewColorable(os.Stdout)
	p := lolcat.NewPrinter(cfg, true, cfg.Mode(os.Getenv("COLORTERM")), lolcat.RandomOffset(8192), out)
	if err := p.PrintText(helpText); err != nil && !errors.Is(err, lolcat.ErrBrokenPipe) {
		fmt.Fprintf(os.Stderr, "lolcat: failed to render help: %v\n", err)
	}
	finalize(p)
}
