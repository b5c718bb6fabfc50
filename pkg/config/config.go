// Package config loads YAML configuration files that may refer to the environment.
package config

import (
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v2"
)

// Defaulter is implemented by configurations that fill in unset fields after loading.
type Defaulter interface {
	SetDefaults()
}

// FromFile reads the file at filePath and decodes it into cfg with FromBytes.
func FromFile(filePath string, cfg interface{}) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return FromBytes(filePath, content, cfg)
}

// FromBytes renders content as a text/template over the environment (`{{ .HOME }}`), expands
// $VAR references, and decodes the result strictly: unknown keys are errors.
func FromBytes(name string, content []byte, cfg interface{}) error {
	t, err := template.New(name).Option("missingkey=zero").Parse(string(content))
	if err != nil {
		return err
	}
	strWriter := &strings.Builder{}
	if err := t.Execute(strWriter, environ()); err != nil {
		return err
	}

	if err := yaml.UnmarshalStrict([]byte(os.ExpandEnv(strWriter.String())), cfg); err != nil {
		return err
	}
	if d, ok := cfg.(Defaulter); ok {
		d.SetDefaults()
	}
	return nil
}

func environ() map[string]string {
	envMap := make(map[string]string)
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		envMap[pair[0]] = pair[1]
	}
	return envMap
}
