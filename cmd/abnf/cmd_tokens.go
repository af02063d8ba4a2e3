package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/abnf/stream"
)

func newTokensCmd() *cobra.Command {
	var chunkSize int
	var verbosity int

	cmd := &cobra.Command{
		Use:           "tokens [file]",
		Short:         "Incrementally split input into whitespace-separated tokens",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)

			var in io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				in = f
			}

			return streamTokens(in, os.Stdout, chunkSize)
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk", 4096, "read size in bytes")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	return cmd
}

// streamTokens reads input chunk by chunk and prints each token as soon
// as it can be completed. A token pending at the end of input is
// terminated by feeding one final separator.
func streamTokens(in io.Reader, out io.Writer, chunkSize int) error {
	log := commonlog.GetLogger("abnf.tokens")

	p := stream.New(nextToken)
	chunk := make([]byte, chunkSize)
	eof := false
	flushed := false

	for {
		res := p.Poll()
		switch {
		case res.IsComplete():
			fmt.Fprintln(out, res.Value())
			continue
		case res.IsFailed():
			return fmt.Errorf("at byte %d: %w", p.Pos(), res.Err())
		}

		if eof {
			if flushed || p.Buffered() == 0 {
				return nil
			}
			log.Debugf("end of input with %d bytes buffered, flushing", p.Buffered())
			p.Push([]byte("\n"))
			flushed = true
			continue
		}

		n, err := in.Read(chunk)
		if n > 0 {
			p.Push(chunk[:n])
			log.Debugf("fed %d bytes, %d buffered", n, p.Buffered())
		}
		switch {
		case err == io.EOF:
			eof = true
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}
	}
}
