package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli"
)

var errUsage = errors.New("missing arguments")

func withSession(fn func(ctx context.Context, s *session, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.closer()

		return fn(ctx, s, c)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func documentID(c *cli.Context) (int, error) {
	raw := c.Args().Get(1)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid document id %q", raw)
	}
	return id, nil
}

var list = withSession(func(ctx context.Context, s *session, c *cli.Context) error {
	cabinet := c.Args().First()
	if cabinet == "" {
		return fmt.Errorf("%w: %s", errUsage, c.Command.ArgsUsage)
	}

	docs, err := s.client.DocumentsList(ctx, cabinet)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, docs)
})

var search = withSession(func(ctx context.Context, s *session, c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("%w: %s", errUsage, c.Command.ArgsUsage)
	}

	docs, err := s.client.DocumentsListWithFilter(ctx, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, docs)
})

var download = withSession(func(ctx context.Context, s *session, c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("%w: %s", errUsage, c.Command.ArgsUsage)
	}
	id, err := documentID(c)
	if err != nil {
		return err
	}

	name, err := s.client.DownloadDocument(ctx, c.Args().First(), id, docuwareStoragePath(downloadDir)...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, name)
	return err
})

var update = withSession(func(ctx context.Context, s *session, c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("%w: %s", errUsage, c.Command.ArgsUsage)
	}
	id, err := documentID(c)
	if err != nil {
		return err
	}

	fields, err := parseFields(c.StringSlice("field"))
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: at least one --field", errUsage)
	}

	ok, err := s.client.UpdateIndexValues(ctx, c.Args().First(), id, fields)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, strconv.FormatBool(ok))
	return err
})

var logout = withSession(func(ctx context.Context, s *session, c *cli.Context) error {
	ok, err := s.client.Logout(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, strconv.FormatBool(ok))
	return err
})
