package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/docuware"
)

// parseFields turns NAME=VALUE[:TYPE] arguments into fields. Int and Decimal
// values are sent as JSON numbers, everything else as strings.
func parseFields(args []string) ([]docuware.Field, error) {
	fields := make([]docuware.Field, 0, len(args))
	for _, arg := range args {
		name, rest, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q: want NAME=VALUE[:TYPE]", arg)
		}

		value, typ := rest, "String"
		if i := strings.LastIndex(rest, ":"); i >= 0 && isFieldType(rest[i+1:]) {
			value, typ = rest[:i], rest[i+1:]
		}

		var item any = value
		switch typ {
		case "Int":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid field %q: %w", arg, err)
			}
			item = n
		case "Decimal":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid field %q: %w", arg, err)
			}
			item = f
		}

		fields = append(fields, docuware.NewField(name, item, typ))
	}
	return fields, nil
}

func isFieldType(s string) bool {
	switch s {
	case "String", "Int", "Decimal", "Date", "DateTime", "Keywords", "Memo":
		return true
	}
	return false
}

func docuwareStoragePath(dir string) []docuware.DownloadOption {
	if dir == "" {
		return nil
	}
	return []docuware.DownloadOption{docuware.WithStoragePath(dir)}
}
