package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

//go:embed catalog.schema.json
var schemaJSON []byte

// SupportedMajor is the content format major version this build reads.
const SupportedMajor = "v1"

const schemaURL = "schema://catalog.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

type document struct {
	Version string    `yaml:"version"`
	Units   []unitDoc `yaml:"units"`
}

type unitDoc struct {
	ID      int         `yaml:"id"`
	Name    string      `yaml:"name"`
	Info    string      `yaml:"info"`
	Lessons []lessonDoc `yaml:"lessons"`
	Drills  []drillDoc  `yaml:"drills"`
}

type lessonDoc struct {
	ID    int       `yaml:"id"`
	Name  string    `yaml:"name"`
	Info  string    `yaml:"info"`
	Cards []cardDoc `yaml:"cards"`
}

type drillDoc struct {
	lessonDoc `yaml:",inline"`
	TimeLimit int `yaml:"time_limit"`
}

type cardDoc struct {
	Pitches []int  `yaml:"pitches"`
	Degrees []int  `yaml:"degrees"`
	Clef    string `yaml:"clef"`
	Hand    string `yaml:"hand"`
	Ref     []int  `yaml:"ref"`
}

// Default loads the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Load(defaultCatalog)
}

// LoadFile loads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Load(data)
}

// Load parses, validates and resolves a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if !semver.IsValid(doc.Version) {
		return nil, fmt.Errorf("catalog version %q is not a semantic version", doc.Version)
	}
	if major := semver.Major(doc.Version); major != SupportedMajor {
		return nil, fmt.Errorf("catalog version %s unsupported (want %s.x.x)", doc.Version, SupportedMajor)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, err
	}
	return build(&doc), nil
}

func validateSchema(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	// Round trip through JSON so the validator sees plain JSON values.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert catalog: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(asJSON, &parsed); err != nil {
		return fmt.Errorf("convert catalog: %w", err)
	}

	schema, err := catalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// build assumes doc passed validateDocument.
func build(doc *document) *Catalog {
	c := &Catalog{version: doc.Version}
	nextCard := 0

	resolve := func(cards []cardDoc) []Flashcard {
		out := make([]Flashcard, 0, len(cards))
		for _, cd := range cards {
			if cd.Ref != nil {
				out = append(out, c.lessons[cd.Ref[0]].Cards[cd.Ref[1]])
				continue
			}
			clef, _ := ParseClef(cd.Clef)
			hand, _ := ParseHand(cd.Hand)
			out = append(out, Flashcard{
				ID:      nextCard,
				Pitches: cd.Pitches,
				Degrees: cd.Degrees,
				Clef:    clef,
				Hand:    hand,
			})
			nextCard++
		}
		return out
	}

	for _, ud := range doc.Units {
		u := Unit{ID: ud.ID, Name: ud.Name, Info: ud.Info}
		for _, ld := range ud.Lessons {
			c.lessons = append(c.lessons, &Lesson{
				ID:    ld.ID,
				Name:  ld.Name,
				Info:  ld.Info,
				Cards: resolve(ld.Cards),
			})
			u.Lessons = append(u.Lessons, ld.ID)
		}
		for _, dd := range ud.Drills {
			c.drills = append(c.drills, &Drill{
				Lesson: Lesson{
					ID:    dd.ID,
					Name:  dd.Name,
					Info:  dd.Info,
					Cards: resolve(dd.Cards),
				},
				TimeLimit: time.Duration(dd.TimeLimit) * time.Second,
			})
			u.Drills = append(u.Drills, dd.ID)
		}
		c.units = append(c.units, u)
	}
	return c
}
