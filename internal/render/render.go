package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatMJS  Format = "mjs"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat case-folds raw into a known Format ("yml" is accepted).
func ParseFormat(raw string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatMJS, FormatJSON, FormatYAML:
		return f, true
	case "yml":
		return FormatYAML, true
	case "":
		return FormatMJS, true
	default:
		return "", false
	}
}

// DefaultFilename returns the conventional file name for format.
func DefaultFilename(f Format) string {
	switch f {
	case FormatJSON:
		return "starlight.config.json"
	case FormatYAML:
		return "starlight.config.yaml"
	default:
		return "astro.config.mjs"
	}
}

// Render encodes cfg in the requested format. Output is deterministic.
func Render(cfg AstroConfig, f Format) ([]byte, error) {
	switch f {
	case FormatMJS:
		return renderModule(cfg)
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryRender, "encode json").Build()
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryRender, "encode yaml").Build()
		}
		return data, nil
	default:
		return nil, ferrors.ValidationError("unsupported output format").
			WithContext("format", string(f)).
			Build()
	}
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// jsString quotes s as a JavaScript string literal. JSON string syntax is a
// subset of JS string syntax.
func jsString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func jsKey(s string) (string, error) {
	if identRe.MatchString(s) {
		return s, nil
	}
	return jsString(s)
}

func jsValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var moduleTemplate = template.Must(template.New("astro.config.mjs").Funcs(template.FuncMap{
	"js":         jsString,
	"jskey":      jsKey,
	"jsvalue":    jsValue,
	"sortedKeys": sortedKeys,
}).Parse(`// @ts-check
import { defineConfig } from "astro/config";
import starlight from "@astrojs/starlight";
{{- with .Adapter}}
import {{.Import}} from {{js .Module}};
{{- end}}

// https://astro.build/config
export default defineConfig({
{{- with .Adapter}}
	adapter: {{.Import}}({{if .Options}}{{jsvalue .Options}}{{end}}),
{{- end}}
	integrations: [
		starlight({
			title: {{js .Starlight.Title}},
			social: {
{{- range $k := sortedKeys .Starlight.Social}}
				{{jskey $k}}: {{js (index $.Starlight.Social $k)}},
{{- end}}
			},
{{- with .Starlight.EditLink}}
			editLink: {
				baseUrl: {{js .BaseURL}},
			},
{{- end}}
			sidebar: [
{{- range .Starlight.Sidebar}}
				{
					label: {{js .Label}},
					autogenerate: { directory: {{js .Autogenerate.Directory}} },
				},
{{- end}}
			],
		}),
	],
});
`))

func renderModule(cfg AstroConfig) ([]byte, error) {
	if cfg.Adapter != nil && !identRe.MatchString(cfg.Adapter.Import) {
		return nil, ferrors.RenderError("adapter import name is not a valid identifier").
			WithContext("import", cfg.Adapter.Import).
			Build()
	}
	var buf bytes.Buffer
	if err := moduleTemplate.Execute(&buf, cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, fmt.Sprintf("execute %s template", moduleTemplate.Name())).Build()
	}
	return buf.Bytes(), nil
}
