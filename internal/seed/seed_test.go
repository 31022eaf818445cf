package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcard/internal/db/dbtest"
	"idcard/internal/logger"
	"idcard/internal/repository"
	"idcard/internal/service"
)

const seedJSON = `{
  "templates": [
    {"name": "Staff", "templateData": {"canvas": {"width": 340, "height": 210}, "elements": [{"id": "title", "type": "text"}]}},
    {"name": "Broken", "templateData": {"canvas": {"width": 340}}}
  ],
  "records": [
    {"data": {"name": "Alice", "age": 30}, "templateName": "Staff"},
    {"data": {"name": "Bob"}, "templateName": "Missing"},
    {"templateName": "Staff"}
  ]
}`

const seedYAML = `
templates:
  - name: Staff
    templateData:
      canvas: {width: 340, height: 210}
      elements:
        - {id: title, type: text}
  - name: Broken
    templateData:
      canvas: {width: 340}
records:
  - data: {name: Alice, age: 30}
    templateName: Staff
  - data: {name: Bob}
    templateName: Missing
  - templateName: Staff
`

func TestDecodeYAMLMatchesJSON(t *testing.T) {
	fromJSON, err := DecodeJSON([]byte(seedJSON))
	require.NoError(t, err)
	fromYAML, err := DecodeYAML([]byte(seedYAML))
	require.NoError(t, err)

	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Errorf("yaml seed differs from json seed (-json +yaml):\n%s", diff)
	}
	assert.Len(t, fromJSON.Templates, 2)
	assert.Len(t, fromJSON.Records, 3)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "seed.json")
	yamlPath := filepath.Join(dir, "seed.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(seedJSON), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte(seedYAML), 0o600))

	ctx := context.Background()
	f, err := Load(ctx, jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "Staff", f.Templates[0].Name)

	f, err = Load(ctx, yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Staff", f.Templates[0].Name)

	_, err = Load(ctx, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/seed.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(seedJSON))
	}))
	defer srv.Close()

	f, err := Load(context.Background(), srv.URL+"/seed.json")
	require.NoError(t, err)
	assert.Len(t, f.Records, 3)

	_, err = Load(context.Background(), srv.URL+"/other.json")
	assert.ErrorContains(t, err, "status code: 404")
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	log := logger.Discard()
	templateRepo := repository.NewTemplateRepository(gdb)
	templates := service.NewTemplateService(templateRepo, nil, log)
	records := service.NewRecordService(
		repository.NewRecordRepository(gdb),
		service.NewResolver(templateRepo, templates, log),
		log,
	)

	f, err := DecodeJSON([]byte(seedJSON))
	require.NoError(t, err)

	res, err := Apply(ctx, templates, records, log, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Templates: 1, Records: 1, Skipped: 3}, res)

	found, err := records.SearchRecordsByName(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.NotNil(t, found[0].Template)
	assert.Equal(t, "Staff", found[0].Template.Name)
	assert.Equal(t, "Staff", found[0].TemplateName)

	res, err = Apply(ctx, templates, records, log, f)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Templates)

	summaries, err := templates.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}
