package repolist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/m-mizutani/coresync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/m-mizutani/coresync/schema/config.schema.json"

type rawRepo struct {
	User    string `json:"user" toml:"user"`
	Owner   string `json:"owner" toml:"owner"`
	Project string `json:"project" toml:"project"`
}

type rawEntry struct {
	Repo            rawRepo `json:"repo" toml:"repo"`
	Name            string  `json:"name" toml:"name"`
	AllowPrerelease bool    `json:"allowPrerelease" toml:"allowPrerelease"`
}

type tomlFile struct {
	Repos []rawEntry `toml:"repos"`
}

// Load reads the repository list at path. Files ending in ".toml" are read
// as TOML with a [[repos]] table array, anything else as a JSON array.
func Load(path string) ([]*model.RepoEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", path),
		)
	}

	var raws []rawEntry
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		raws, err = parseTOML(data)
	} else {
		raws, err = parseJSON(data)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "invalid config file",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", path),
		)
	}

	entries := make([]*model.RepoEntry, 0, len(raws))
	for i, raw := range raws {
		entry, err := raw.toEntry()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid config entry",
				goerr.T(types.ErrTagConfig),
				goerr.V("path", path),
				goerr.V("index", i),
			)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseJSON(data []byte) ([]rawEntry, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse JSON")
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var raws []rawEntry
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, goerr.Wrap(err, "failed to decode JSON entries")
	}
	return raws, nil
}

func parseTOML(data []byte) ([]rawEntry, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML")
	}
	if err := validate(doc["repos"]); err != nil {
		return nil, err
	}

	var file tomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to decode TOML entries")
	}
	return file.Repos, nil
}

func validate(doc any) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return goerr.Wrap(err, "failed to parse embedded schema")
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return goerr.Wrap(err, "failed to add schema resource")
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return goerr.Wrap(err, "failed to compile schema")
	}

	if err := schema.Validate(doc); err != nil {
		return goerr.Wrap(err, "config does not match schema")
	}
	return nil
}

func (r rawEntry) toEntry() (*model.RepoEntry, error) {
	owner := r.Repo.Owner
	if owner == "" {
		owner = r.Repo.User
	}

	if r.Name != "" && !isSinglePathElement(r.Name) {
		return nil, goerr.New("name must be a single directory name", goerr.V("name", r.Name))
	}

	return &model.RepoEntry{
		Owner:           owner,
		Project:         r.Repo.Project,
		DisplayName:     r.Name,
		AllowPrerelease: r.AllowPrerelease,
	}, nil
}

func isSinglePathElement(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
