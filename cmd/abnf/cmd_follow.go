package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/abnf/stream"
)

func newFollowCmd() *cobra.Command {
	var fromStart bool
	var verbosity int

	cmd := &cobra.Command{
		Use:           "follow <file>",
		Short:         "Tail a growing file, printing each line as it completes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			return followFile(args[0], fromStart, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&fromStart, "from-start", false, "read existing content before following")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	return cmd
}

func followFile(path string, fromStart bool, out io.Writer) error {
	log := commonlog.GetLogger("abnf.follow")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if !fromStart {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			return fmt.Errorf("seek to end: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch file: %w", err)
	}

	p := stream.New(nextLine)
	chunk := make([]byte, 4096)

	drain := func() error {
		for {
			n, err := f.Read(chunk)
			if n > 0 {
				p.Push(chunk[:n])
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
		}
	}

	emit := func() error {
		for {
			res := p.Poll()
			switch {
			case res.IsComplete():
				fmt.Fprintln(out, res.Value())
			case res.IsSuspended():
				if n := p.Buffered(); n > 0 {
					log.Debugf("waiting for more input, %d bytes buffered", n)
				}
				return nil
			default:
				return fmt.Errorf("at byte %d: %w", p.Pos(), res.Err())
			}
		}
	}

	if err := drain(); err != nil {
		return err
	}
	if err := emit(); err != nil {
		return err
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) {
				if err := drain(); err != nil {
					return err
				}
				if err := emit(); err != nil {
					return err
				}
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				log.Info("file removed, stopping")
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}
