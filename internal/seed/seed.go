// Package seed loads templates and records from a JSON or YAML seed file.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"idcard/internal/attr"
	"idcard/internal/errors"
	"idcard/internal/model"
	"idcard/internal/service"
)

// File is the seed document.
type File struct {
	Templates []TemplateSeed `json:"templates"`
	Records   []RecordSeed   `json:"records"`
}

// TemplateSeed is upserted by name.
type TemplateSeed struct {
	Name         string              `json:"name"`
	Thumbnail    *string             `json:"thumbnail"`
	TemplateData *model.TemplateData `json:"templateData"`
}

// RecordSeed is created as a new record. TemplateName is used to find the
// template when TemplateID is empty.
type RecordSeed struct {
	Data         attr.Bag `json:"data"`
	TemplateID   string   `json:"templateId"`
	TemplateName string   `json:"templateName"`
}

// Result counts what Apply did.
type Result struct {
	Templates int
	Records   int
	Skipped   int
}

// Load reads a seed file from a local path or an http(s) URL. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func Load(ctx context.Context, source string) (*File, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		b, err := fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		body = b
	} else {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		body = b
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return DecodeYAML(body)
	default:
		return DecodeJSON(body)
	}
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build seed request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read seed response: %w", err)
	}
	return body, nil
}

// DecodeJSON parses a JSON seed document.
func DecodeJSON(body []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("parse seed json: %w", err)
	}
	return &f, nil
}

// DecodeYAML parses a YAML seed document. It goes through JSON so both
// formats share one set of field names.
func DecodeYAML(body []byte) (*File, error) {
	var doc any
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	return DecodeJSON(raw)
}

// Apply upserts every template, then creates every record. Seeds rejected as
// invalid are logged and skipped; any other failure stops the run.
func Apply(ctx context.Context, templates service.TemplateService, records service.RecordService, log *logrus.Logger, f *File) (Result, error) {
	var res Result
	ids := make(map[string]string, len(f.Templates))

	for _, ts := range f.Templates {
		name := ts.Name
		tpl, err := templates.UpsertTemplate(ctx, service.TemplateInput{
			Name:         &name,
			Thumbnail:    ts.Thumbnail,
			TemplateData: ts.TemplateData,
		})
		if err != nil {
			if errors.KindOf(err) == errors.KindValidation {
				log.WithError(err).WithField("template", ts.Name).Warn("skipping invalid template")
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("upsert template %q: %w", ts.Name, err)
		}
		ids[tpl.Name] = tpl.ID.String()
		res.Templates++
	}

	for i, rs := range f.Records {
		templateID := rs.TemplateID
		if templateID == "" && rs.TemplateName != "" {
			id, err := resolveName(ctx, templates, ids, rs.TemplateName)
			if err != nil {
				return res, err
			}
			templateID = id
		}

		in := service.RecordInput{Data: rs.Data, TemplateID: &templateID}
		if rs.TemplateName != "" {
			name := rs.TemplateName
			in.TemplateName = &name
		}
		if _, err := records.CreateRecord(ctx, in); err != nil {
			if errors.KindOf(err) == errors.KindValidation {
				log.WithError(err).WithField("record", i).Warn("skipping invalid record")
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("create record %d: %w", i, err)
		}
		res.Records++
	}
	return res, nil
}

// resolveName finds the id of the template called name, preferring the
// templates upserted by this run. An unknown name resolves to "".
func resolveName(ctx context.Context, templates service.TemplateService, seeded map[string]string, name string) (string, error) {
	if id, ok := seeded[name]; ok {
		return id, nil
	}
	tpl, err := templates.GetTemplateByName(ctx, name)
	switch {
	case err == nil && strings.EqualFold(tpl.Name, name):
		return tpl.ID.String(), nil
	case err == nil || errors.KindOf(err) == errors.KindNotFound:
		return "", nil
	default:
		return "", fmt.Errorf("resolve template %q: %w", name, err)
	}
}
