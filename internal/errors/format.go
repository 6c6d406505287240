package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles each part of a rendered error.
type palette struct {
	label, category, message func(a ...interface{}) string
	usage, usageText         func(a ...interface{}) string
	fix, bullet              func(a ...interface{}) string
}

var (
	colorPalette = palette{
		label:     color.New(color.FgRed, color.Bold).SprintFunc(),
		category:  color.New(color.FgYellow).SprintFunc(),
		message:   color.New(color.FgRed).SprintFunc(),
		usage:     color.New(color.FgCyan, color.Bold).SprintFunc(),
		usageText: color.New(color.FgCyan).SprintFunc(),
		fix:       color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:    color.New(color.FgGreen).SprintFunc(),
	}
	plainPalette = palette{
		label:     fmt.Sprint,
		category:  fmt.Sprint,
		message:   fmt.Sprint,
		usage:     fmt.Sprint,
		usageText: fmt.Sprint,
		fix:       fmt.Sprint,
		bullet:    fmt.Sprint,
	}
)

// FormatError renders err for the terminal with colors.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, colorPalette)
}

// FormatErrorPlain renders err without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, plainPalette)
}

// render writes the headline, then the usage line and the remediation steps
// when present, separated by blank lines:
//
//	Error [Configuration Error]: Repo not specified.
//
//	Usage: relnotes <owner/repo> [flags]
//
//	To fix this:
//	  - Pass the repository as the first argument
func render(err *CLIError, p palette) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usage("Usage: "), p.usageText(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("-"), step)
		}
	}

	return sb.String()
}

func paletteFor(useColors bool) palette {
	if useColors {
		return colorPalette
	}
	return plainPalette
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError, useColors bool) {
	if err == nil {
		return
	}
	fmt.Fprint(w, render(err, paletteFor(useColors)))
}

// PrintAny prints err to w, treating non-CLIError values as runtime errors.
func PrintAny(w io.Writer, err error, useColors bool) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = NewRuntimeError(err.Error())
		cliErr.Err = err
	}
	FprintError(w, cliErr, useColors)
}
