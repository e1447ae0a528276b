package main

import "github.com/urfave/cli"

var (
	urlRoot     string
	user        string
	password    string
	storagePath string
	redisURL    string
	s3Bucket    string
	s3Region    string
	jsonLogs    bool
	debug       bool

	downloadDir string
)

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "url",
		Usage:       "platform root, e.g. https://example.docuware.cloud/DocuWare/Platform",
		Destination: &urlRoot,
	},
	cli.StringFlag{
		Name:        "user, u",
		Usage:       "user name",
		Destination: &user,
	},
	cli.StringFlag{
		Name:        "password, p",
		Usage:       "password",
		Destination: &password,
	},
	cli.StringFlag{
		Name:        "storage-path",
		Usage:       "default download directory",
		Destination: &storagePath,
	},
	cli.StringFlag{
		Name:        "redis-url",
		Usage:       "share the session cookie through Redis",
		EnvVar:      "REDIS_URL",
		Destination: &redisURL,
	},
	cli.StringFlag{
		Name:        "s3-bucket",
		Usage:       "store downloads in this S3 bucket instead of the local disk",
		EnvVar:      "DOCUWARE_S3_BUCKET",
		Destination: &s3Bucket,
	},
	cli.StringFlag{
		Name:        "s3-region",
		Usage:       "region of the S3 bucket",
		EnvVar:      "DOCUWARE_S3_REGION",
		Destination: &s3Region,
	},
	cli.BoolFlag{
		Name:        "json",
		Usage:       "log as JSON",
		Destination: &jsonLogs,
	},
	cli.BoolFlag{
		Name:        "debug",
		Usage:       "log every request",
		Destination: &debug,
	},
}

var downloadFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "dir, d",
		Usage:       "directory to write into (default: --storage-path)",
		Destination: &downloadDir,
	},
}

var updateFlags = []cli.Flag{
	cli.StringSliceFlag{
		Name:  "field, f",
		Usage: "NAME=VALUE[:TYPE], repeatable; TYPE defaults to String",
	},
}
