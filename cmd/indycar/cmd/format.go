package cmd

import (
	"strconv"
	"time"

	"github.com/TMCabrera/indycargo/lib/sessions"
)

func strOrDash(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func lapOrDash(v *time.Duration) string {
	if v == nil {
		return "-"
	}
	return sessions.FormatLapTime(*v)
}
