package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

// Expand executes value as a template with the following functions available:
//
//	{{ env "VAR" }}        value of an environment variable
//	{{ exec "cmd args" }}  trimmed stdout of a command (a " | " runs it through sh)
//	{{ file "path" }}      trimmed contents of a file
func Expand(value string) (string, error) {
	tmpl, err := template.New("expand_variables").
		Funcs(template.FuncMap{
			"env": func(envvar string) string {
				return os.Getenv(envvar)
			},
			"exec": func(line string) (string, error) {
				if strings.Contains(line, " | ") {
					out, err := exec.Command("sh", "-c", line).Output()
					return strings.TrimSpace(string(out)), err
				}

				l := strings.Fields(line)
				if len(l) < 1 {
					return "", errors.New("no command provided")
				}

				out, err := exec.Command(l[0], l[1:]...).Output()
				return strings.TrimSpace(string(out)), err
			},
			"file": func(path string) (string, error) {
				b, err := os.ReadFile(path)
				return strings.TrimSpace(string(b)), err
			},
		}).
		Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, nil)
	if err != nil {
		return "", err
	}

	return out.String(), nil
}
