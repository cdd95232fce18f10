package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// docTypeLabel renders a document type slug like "service_invoice" as
// "Service Invoice" for table output.
func docTypeLabel(docType string) string {
	out := make([]byte, len(docType))
	for i := 0; i < len(docType); i++ {
		if docType[i] == '_' {
			out[i] = ' '
		} else {
			out[i] = docType[i]
		}
	}
	return titleCaser.String(string(out))
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
