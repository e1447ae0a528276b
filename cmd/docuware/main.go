package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

var version = "dev"

const description = `Talks to a DocuWare Platform endpoint with a cached session cookie.

Credentials come from DOCUWARE_URL_ROOT, DOCUWARE_USER and DOCUWARE_PASSWORD
(a .env file in the working directory is honoured) or from the global flags.
Set REDIS_URL to share the session with other processes.`

// Execute runs the CLI with args, writing command output to out.
func Execute(args []string, out io.Writer) error {
	app := cli.App{
		Name:        "docuware",
		HelpName:    "docuware",
		Usage:       "list, download and index DocuWare documents",
		Version:     version,
		UsageText:   "docuware [global options] <command> [arguments...]",
		Description: description,
		Writer:      out,
		Flags:       globalFlags,
		Commands: []cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "list the documents of a file cabinet",
				ArgsUsage: "<file-cabinet-id>",
				Action:    list,
			},
			{
				Name:      "search",
				Aliases:   []string{"s"},
				Usage:     "list documents matching a query",
				ArgsUsage: "<file-cabinet-id> <query>",
				Action:    search,
			},
			{
				Name:      "download",
				Aliases:   []string{"d"},
				Usage:     "download a document as {id}-{YYYYMMDD}.pdf",
				ArgsUsage: "<file-cabinet-id> <document-id>",
				Flags:     downloadFlags,
				Action:    download,
			},
			{
				Name:      "update",
				Aliases:   []string{"u"},
				Usage:     "update index values of a document",
				ArgsUsage: "<file-cabinet-id> <document-id>",
				Flags:     updateFlags,
				Action:    update,
			},
			{
				Name:   "logout",
				Usage:  "end the cached session",
				Action: logout,
			},
		},
	}
	return app.Run(args)
}

func main() {
	if err := Execute(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "docuware: %s\n", err.Error())
		os.Exit(1)
	}
}
