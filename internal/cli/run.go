package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/textbuf/textbuf/internal/bufpool"
	"github.com/textbuf/textbuf/pkg/buffer"
	"github.com/textbuf/textbuf/pkg/tempfiles"
)

// runOptions are the effective settings after merging the config file and
// the command line.
type runOptions struct {
	strategy  string
	trim      bool
	threshold int64
	tempDir   string
}

// runStats describes what the buffering run did.
type runStats struct {
	Strategy     string `json:"strategy"`
	Units        int64  `json:"units"`
	TrimmedUnits int64  `json:"trimmedUnits"`
	FastString   bool   `json:"fastString"`
	Spilled      bool   `json:"spilled"`
}

// resolveOptions merges the loaded config file with the command-line flags;
// flags win.
func resolveOptions() runOptions {
	opt := runOptions{
		strategy:  "auto",
		trim:      trim,
		threshold: buffer.DefaultSpillThreshold,
		tempDir:   tempDir,
	}
	if c := GetConfig(); c != nil {
		opt.strategy = c.Strategy
		if c.SpillThreshold > 0 {
			opt.threshold = c.SpillThreshold
		}
		if opt.tempDir == "" {
			opt.tempDir = c.TempDir
		}
	}
	if strategy != "" {
		opt.strategy = strategy
	}
	if threshold > 0 {
		opt.threshold = threshold
	}
	return opt
}

// newWriter builds the writer for the selected strategy.
func newWriter(opt runOptions, pool *bufpool.Pool) (buffer.Writer, error) {
	switch opt.strategy {
	case "array":
		return buffer.NewArrayWriter(pool), nil
	case "segmented":
		return buffer.NewSegmentedWriter(), nil
	case "auto":
		provider := tempfiles.NewDirProvider(opt.tempDir)
		return buffer.NewAutoWriter(buffer.NewArrayWriter(pool), provider,
			buffer.WithThreshold(opt.threshold), buffer.WithPool(pool)), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", opt.strategy)
	}
}

// fill streams everything from in to w in pooled blocks. Reads may end
// between the bytes of a rune; the partial tail is held back so the writer
// only ever sees whole runes.
func fill(w buffer.Writer, in io.Reader, pool *bufpool.Pool) error {
	block := pool.Get()
	defer pool.Put(block)
	carry := 0
	for {
		n, rerr := in.Read(block[carry:])
		n += carry
		carry = 0
		if n > 0 {
			emit := n
			if rerr == nil {
				ls := n - 1
				for ls > 0 && !utf8.RuneStart(block[ls]) {
					ls--
				}
				if !utf8.FullRune(block[ls:n]) {
					emit = ls
				}
			}
			if emit > 0 {
				if _, err := w.WriteString(string(block[:emit])); err != nil {
					return err
				}
			}
			carry = copy(block, block[emit:n])
		}
		if rerr == io.EOF {
			if carry > 0 {
				if _, err := w.WriteString(string(block[:carry])); err != nil {
					return err
				}
			}
			return nil
		}
		if rerr != nil {
			return errors.Wrap(rerr, "reading input")
		}
	}
}

// process buffers everything from in through the selected strategy and
// streams the result to out.
func process(in io.Reader, out buffer.Sink, opt runOptions) (runStats, error) {
	st := runStats{Strategy: opt.strategy}
	pool := bufpool.New()

	w, err := newWriter(opt, pool)
	if err != nil {
		return st, err
	}
	if err := fill(w, in, pool); err != nil {
		return st, err
	}
	if err := w.Close(); err != nil {
		return st, err
	}
	res, err := w.Result()
	if err != nil {
		return st, err
	}
	st.Units = res.Len()
	st.TrimmedUnits = st.Units
	if aw, ok := w.(*buffer.AutoWriter); ok {
		st.Spilled = aw.Spilled()
	}

	if opt.trim {
		res, err = res.Trim()
		if err != nil {
			return st, err
		}
		st.TrimmedUnits = res.Len()
	}
	st.FastString = res.IsFastString()

	if err := res.CopyTo(out); err != nil {
		return st, err
	}
	return st, nil
}

// runBuffer buffers the named files, or standard input when none are
// given, and writes the buffered result to standard output.
func runBuffer(cmd *cobra.Command, args []string) error {
	opt := resolveOptions()

	var in io.Reader
	if len(args) == 0 {
		in = os.Stdin
	} else {
		readers := make([]io.Reader, 0, len(args))
		for _, name := range args {
			f, err := os.Open(name)
			if err != nil {
				return errors.Wrap(err, "opening input file")
			}
			defer f.Close()
			readers = append(readers, f)
		}
		in = io.MultiReader(readers...)
	}

	out := bufio.NewWriter(os.Stdout)
	st, err := process(in, out, opt)
	if err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return errors.Wrap(err, "writing output")
	}

	if stats {
		printStats(st)
	}
	return nil
}

// printStats reports the run to stderr so it never mixes with the buffered
// content on stdout.
func printStats(st runStats) {
	if jsonOutput {
		printJSON(st)
		return
	}
	okLabel.Fprintf(os.Stderr, "strategy:  %s\n", st.Strategy)
	fmt.Fprintf(os.Stderr, "units:     %d\n", st.Units)
	if st.TrimmedUnits != st.Units {
		fmt.Fprintf(os.Stderr, "trimmed:   %d\n", st.TrimmedUnits)
	}
	fmt.Fprintf(os.Stderr, "fast text: %v\n", st.FastString)
	if st.Strategy == "auto" {
		fmt.Fprintf(os.Stderr, "spilled:   %v\n", st.Spilled)
	}
}
