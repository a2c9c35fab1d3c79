package api

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"schedule-console/internal/parse"
)

//go:embed templates/*.html static/*
var assets embed.FS

var templateFuncs = template.FuncMap{
	"dayLabel": parse.DayLabel,
	"weekend":  parse.Weekend,
	"fte": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"elapsed": func(d time.Duration) string {
		if d < time.Second {
			return fmt.Sprintf("%dms", d.Milliseconds())
		}
		return d.Round(100 * time.Millisecond).String()
	},
	"clock": func(t time.Time) string {
		return t.Local().Format("15:04:05")
	},
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html")
}

func staticFS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
