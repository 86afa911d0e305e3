// Package convert glues the conversion core to the command line interface.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"h2t/config"
	"h2t/convert/typst"
	"h2t/state"
)

// Run implements the convert command. It reads HTML from a named file or
// standard input and writes Typst markup to a named file or standard output.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	src, dst := cmd.Args().Get(0), cmd.Args().Get(1)

	env.Overwrite = env.Cfg.Document.Overwrite || cmd.Bool("overwrite")

	cp := cmd.String("encoding")
	if len(cp) == 0 {
		cp = env.Cfg.Document.Encoding
	}
	if len(cp) > 0 {
		env.Encoding, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.Encoding = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.Encoding)
			log.Debug("Forcing input character set", zap.String("charset", n))
		}
	}

	log.Info("Processing starting",
		zap.String("source", displayName(src, "STDIN")), zap.String("destination", displayName(dst, "STDOUT")))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

func displayName(path, def string) string {
	if len(path) == 0 || path == "-" {
		return def
	}
	return path
}

// process handles the core conversion independently of CLI framework.
func process(ctx context.Context, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	defer func(start time.Time) {
		// conversion core is not supposed to panic on any input, but if it
		// ever does we want a proper error and a stack in the log
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		}
	}(time.Now())

	var in io.Reader = os.Stdin
	if len(src) != 0 && src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("unable to open input: %w", err)
		}
		defer f.Close()
		env.Rpt.Store("source"+filepath.Ext(src), src)
		in = f
	}

	res, err := typst.NewConverter(log).ConvertReader(in, env.Encoding)
	if err != nil {
		return fmt.Errorf("unable to convert (%s): %w", displayName(src, "STDIN"), err)
	}
	out := []byte(res + "\n")
	env.Rpt.StoreData("result.typ", out)

	if len(dst) == 0 {
		_, err = os.Stdout.Write(out)
		return err
	}

	name := outputName(src, dst)
	if err := writeOutput(name, out, env.Overwrite, log); err != nil {
		return err
	}

	// status goes to stderr, stdout stays reserved for conversion results
	fmt.Fprintf(os.Stderr, "Converted %s to %s\n", displayName(src, "STDIN"), name)
	return nil
}

// outputName derives the destination file name when dst points at an existing
// directory, otherwise dst is taken verbatim.
func outputName(src, dst string) string {
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		base := "output"
		if len(src) != 0 && src != "-" {
			base = config.CleanFileName(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)))
		}
		return filepath.Join(dst, base+".typ")
	}
	return dst
}

// writeOutput stores converted markup honoring the overwrite guard.
func writeOutput(name string, data []byte, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}
